package coerce

import (
	"sort"

	"golang.org/x/image/colornames"
)

// NameTable maps lowercase X11 color names to colors. A table is built once
// and never mutated, so one value may be shared by any number of goroutines.
type NameTable struct {
	colors map[string]Color
}

// NewNameTable builds the table from the X11/SVG named colors published in
// golang.org/x/image/colornames, plus "transparent" (all channels zero).
func NewNameTable() *NameTable {
	t := &NameTable{colors: make(map[string]Color, len(colornames.Map)+1)}
	for name, c := range colornames.Map {
		t.colors[name] = FromBytes(c.R, c.G, c.B, c.A)
	}
	t.colors["transparent"] = Color{}
	return t
}

// Lookup returns the color registered under name. name must already be
// lowercase.
func (t *NameTable) Lookup(name string) (Color, bool) {
	c, ok := t.colors[name]
	return c, ok
}

// Names returns every registered name in sorted order.
func (t *NameTable) Names() []string {
	names := make([]string, 0, len(t.colors))
	for n := range t.colors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len is the number of registered names.
func (t *NameTable) Len() int { return len(t.colors) }
