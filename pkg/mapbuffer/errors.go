package mapbuffer

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound is matched by every KeyError via errors.Is.
var ErrKeyNotFound = errors.New("mapbuffer: key not found")

// KeyError reports a lookup of an absent key.
type KeyError struct {
	Key Key
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("mapbuffer: key %d not found", e.Key)
}

// Is reports whether target is ErrKeyNotFound.
func (e *KeyError) Is(target error) bool {
	return target == ErrKeyNotFound
}

// TypeError reports a key read with the wrong accessor.
type TypeError struct {
	Key  Key
	Want Type
	Got  Type
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("mapbuffer: key %d holds %s, not %s", e.Key, e.Got, e.Want)
}

// CorruptError reports structurally invalid buffer bytes.
type CorruptError struct {
	Reason string
}

func (e *CorruptError) Error() string {
	return "mapbuffer: corrupt buffer: " + e.Reason
}
