// Package catalog holds the ordered list of recognized integration names and
// the fixed color palette assigned to them. The catalog is the single source
// of truth for form choices, chart ordering and color assignment.
package catalog

// Brand palette, applied to integrations by their catalog index.
const (
	colorGreen    = "#2FFF61"
	colorBlue     = "#14E8FF"
	colorYellow   = "#ECFF31"
	colorLavender = "#AB6BFF"
	colorOrange   = "#FFA424"
)

var palette = []string{colorGreen, colorBlue, colorYellow, colorLavender, colorOrange}

// Entry pairs an integration name with its assigned display color.
type Entry struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Catalog is an ordered, immutable set of integration names with per-name
// colors assigned by index modulo the palette size.
type Catalog struct {
	names  []string
	colors map[string]string
}

// New builds a catalog from an ordered list of integration names.
func New(names []string) *Catalog {
	c := &Catalog{
		names:  make([]string, len(names)),
		colors: make(map[string]string, len(names)),
	}
	copy(c.names, names)
	for i, name := range names {
		c.colors[name] = palette[i%len(palette)]
	}
	return c
}

// Names returns the integration names in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// ColorFor returns the color assigned to an integration. Names outside the
// catalog get the first palette color, matching how unknown names render.
func (c *Catalog) ColorFor(name string) string {
	if color, ok := c.colors[name]; ok {
		return color
	}
	return palette[0]
}

// Entries returns name/color pairs in catalog order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, Entry{Name: name, Color: c.colors[name]})
	}
	return out
}
