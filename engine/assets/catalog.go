package assets

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
)

var ErrUnknownAsset = errors.New("unknown asset")

const (
	Chair = "chair"
	Table = "table"
)

// Entry resolves a product identifier to its files. Model is the binary glTF
// used in the 3D view; QuickLook is the platform AR asset shown on devices
// without hit-testing.
type Entry struct {
	ID        string `yaml:"id"`
	Model     string `yaml:"model"`
	QuickLook string `yaml:"quick_look"`
	// Fallback marks products that are replaced by a procedural model when
	// Model cannot be loaded.
	Fallback bool `yaml:"fallback"`
}

type Catalog struct {
	Dir     string
	entries map[string]Entry
}

func NewCatalog(dir string, entries ...Entry) *Catalog {
	c := &Catalog{
		Dir:     dir,
		entries: make(map[string]Entry, len(entries)),
	}
	for _, e := range entries {
		c.entries[e.ID] = e
	}
	return c
}

// DefaultCatalog lists the two products shipped with the demo.
func DefaultCatalog(dir string) *Catalog {
	return NewCatalog(dir,
		Entry{ID: Chair, Model: "chair.glb", QuickLook: "chair.usdz"},
		Entry{ID: Table, Model: "table.glb", QuickLook: "table.usdz", Fallback: true},
	)
}

func (c *Catalog) Resolve(id string) (Entry, error) {
	e, ok := c.entries[id]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownAsset, id)
	}
	return e, nil
}

// ModelPath is the on-disk location of the entry's glTF file.
func (c *Catalog) ModelPath(e Entry) string {
	if filepath.IsAbs(e.Model) {
		return e.Model
	}
	return filepath.Join(c.Dir, e.Model)
}

// QuickLookPath is the on-disk location of the entry's platform AR asset.
func (c *Catalog) QuickLookPath(e Entry) string {
	if e.QuickLook == "" || filepath.IsAbs(e.QuickLook) {
		return e.QuickLook
	}
	return filepath.Join(c.Dir, e.QuickLook)
}

// Entries returns the catalog sorted by id.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
