package attributedstring

import "github.com/go-drift/richtext/pkg/mapbuffer"

// Binary keys of the attributed-string buffer. The values are those of
// React Native's AS_KEY_*, SH_KEY_*, SA_KEY_* and FR_KEY_* constants.
const (
	KeyHash           mapbuffer.Key = 0
	KeyString         mapbuffer.Key = 1
	KeyShards         mapbuffer.Key = 2
	KeyCacheID        mapbuffer.Key = 3
	KeyBaseAttributes mapbuffer.Key = 4
)

// Binary keys of a shard buffer.
const (
	KeyShardFragments  mapbuffer.Key = 0
	KeyShardAttributes mapbuffer.Key = 1
)

// Binary keys of a shard-attributes buffer.
const (
	KeyShardBackgroundColor mapbuffer.Key = 0
)

// Binary keys of a fragment buffer.
const (
	KeyFragmentString         mapbuffer.Key = 0
	KeyFragmentReactTag       mapbuffer.Key = 1
	KeyFragmentIsAttachment   mapbuffer.Key = 2
	KeyFragmentWidth          mapbuffer.Key = 3
	KeyFragmentHeight         mapbuffer.Key = 4
	KeyFragmentTextAttributes mapbuffer.Key = 5
)

// Keys of the map representation.
const (
	keyShards          = "shards"
	keyFragments       = "fragments"
	keyAttributes      = "attributes"
	keyString          = "string"
	keyReactTag        = "reactTag"
	keyIsAttachment    = "isAttachment"
	keyWidth           = "width"
	keyHeight          = "height"
	keyBackgroundColor = "backgroundColor"
)
