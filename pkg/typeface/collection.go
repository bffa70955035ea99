package typeface

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

// Collection is a [Source] of registered faces grouped by family.
// Family names are matched case-insensitively. It is safe for concurrent use.
type Collection struct {
	mu       sync.RWMutex
	families map[string]*family
	aliases  map[string]string
	assets   fs.FS
	probed   map[string]bool
}

type family struct {
	name    string
	members []member
}

type member struct {
	weight Weight
	italic bool
	face   Face
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{
		families: make(map[string]*family),
		aliases:  make(map[string]string),
		probed:   make(map[string]bool),
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds face as the weight/italic member of familyName, replacing an
// existing member with the same weight and slant.
func (c *Collection) Register(familyName string, weight Weight, italic bool, face Face) error {
	if normalize(familyName) == "" {
		return fmt.Errorf("typeface: family name required")
	}
	if face == nil {
		return fmt.Errorf("typeface: nil face for %q", familyName)
	}
	if !weight.valid() {
		return fmt.Errorf("typeface: invalid weight %d for %q", int(weight), familyName)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.register(familyName, weight, italic, face)
	return nil
}

func (c *Collection) register(familyName string, weight Weight, italic bool, face Face) {
	key := normalize(familyName)
	fam := c.families[key]
	if fam == nil {
		fam = &family{name: strings.TrimSpace(familyName)}
		c.families[key] = fam
	}
	for i, m := range fam.members {
		if m.weight == weight && m.italic == italic {
			fam.members[i].face = face
			return
		}
	}
	fam.members = append(fam.members, member{weight: weight, italic: italic, face: face})
}

// RegisterFont parses TrueType or OpenType data and registers it.
func (c *Collection) RegisterFont(familyName string, weight Weight, italic bool, data []byte) error {
	face, err := ParseFace(data)
	if err != nil {
		return fmt.Errorf("typeface: parse %q: %w", familyName, err)
	}
	return c.Register(familyName, weight, italic, face)
}

// Alias makes alias resolve to target.
func (c *Collection) Alias(alias, target string) {
	c.mu.Lock()
	c.aliases[normalize(alias)] = normalize(target)
	c.mu.Unlock()
}

// SetAssets installs a file system searched for families that are not
// registered. Files are looked up as fonts/<family>[_bold|_italic|_bold_italic]
// with a .ttf or .otf extension.
func (c *Collection) SetAssets(fsys fs.FS) {
	c.mu.Lock()
	c.assets = fsys
	c.probed = make(map[string]bool)
	c.mu.Unlock()
}

// Merge registers every family and alias of other into c.
func (c *Collection) Merge(other *Collection) {
	if other == nil || other == c {
		return
	}
	other.mu.RLock()
	defer other.mu.RUnlock()
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, fam := range other.families {
		for _, m := range fam.members {
			c.register(fam.name, m.weight, m.italic, m.face)
		}
	}
	for alias, target := range other.aliases {
		c.aliases[alias] = target
	}
}

// Families returns the registered family names, sorted.
func (c *Collection) Families() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.families))
	for _, fam := range c.families {
		names = append(names, fam.name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether familyName resolves to a registered family.
func (c *Collection) Has(familyName string) bool {
	_, ok := c.resolve(familyName)
	return ok
}

// Match implements [Source].
func (c *Collection) Match(familyName string, weight Weight, italic bool) (Typeface, bool) {
	key, ok := c.resolve(familyName)
	if !ok {
		return Typeface{}, false
	}
	if !weight.valid() {
		weight = WeightNormal
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	fam := c.families[key]
	if fam == nil || len(fam.members) == 0 {
		return Typeface{}, false
	}
	m := closest(fam.members, weight, italic)
	return Typeface{Family: fam.name, Weight: m.weight, Italic: m.italic, Face: m.face}, true
}

// resolve maps familyName through the aliases to a registered family key,
// probing the asset file system once per unknown family.
func (c *Collection) resolve(familyName string) (string, bool) {
	key := normalize(familyName)
	if key == "" {
		return "", false
	}
	c.mu.RLock()
	if target, ok := c.aliases[key]; ok {
		key = target
	}
	_, found := c.families[key]
	assets := c.assets
	probed := c.probed[key]
	c.mu.RUnlock()
	if found {
		return key, true
	}
	if assets == nil || probed {
		return "", false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, found := c.families[key]; !found && !c.probed[key] {
		c.probed[key] = true
		c.loadAssets(assets, strings.TrimSpace(familyName))
	}
	_, found = c.families[key]
	return key, found
}

var assetVariants = []struct {
	suffix string
	weight Weight
	italic bool
}{
	{"", WeightNormal, false},
	{"_bold", WeightBold, false},
	{"_italic", WeightNormal, true},
	{"_bold_italic", WeightBold, true},
}

var assetExtensions = []string{".ttf", ".otf"}

// loadAssets registers the asset files found for familyName. Unreadable or
// unparsable files are skipped. Callers hold c.mu.
func (c *Collection) loadAssets(fsys fs.FS, familyName string) {
	for _, v := range assetVariants {
		for _, ext := range assetExtensions {
			data, err := fs.ReadFile(fsys, path.Join("fonts", familyName+v.suffix+ext))
			if err != nil {
				continue
			}
			face, err := ParseFace(data)
			if err != nil {
				continue
			}
			c.register(familyName, v.weight, v.italic, face)
			break
		}
	}
}

// closest picks the member nearest to weight, preferring the requested slant
// and falling back to the other one. Weight distance follows the CSS font
// matching rules: for 400-500 try up to 500, then lighter, then heavier;
// below 400 prefer lighter; above 500 prefer heavier.
func closest(members []member, weight Weight, italic bool) member {
	candidates := make([]member, 0, len(members))
	for _, m := range members {
		if m.italic == italic {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		candidates = members
	}
	best := candidates[0]
	bestRank := weightRank(weight, best.weight)
	for _, m := range candidates[1:] {
		if r := weightRank(weight, m.weight); r < bestRank {
			best, bestRank = m, r
		}
	}
	return best
}

// weightRank orders candidate weights for a desired weight; lower is better.
func weightRank(desired, candidate Weight) int {
	d, w := int(desired), int(candidate)
	if d == w {
		return 0
	}
	const far = 1000
	switch {
	case d >= 400 && d <= 500:
		switch {
		case w > d && w <= 500:
			return w - d
		case w < d:
			return far + (d - w)
		default:
			return 2*far + (w - d)
		}
	case d < 400:
		if w < d {
			return d - w
		}
		return far + (w - d)
	default:
		if w > d {
			return w - d
		}
		return far + (d - w)
	}
}
