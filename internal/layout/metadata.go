// Package layout describes the slide layouts a deck can use and the rules
// attached to them: which layouts must appear, which must never appear, and
// how placeholder text is cased and clipped.
package layout

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

//go:embed default_layouts.json
var defaultLayouts []byte

// ErrNoLayouts is returned when a metadata document declares no layouts.
var ErrNoLayouts = errors.New("layout: metadata declares no layouts")

// Placeholder is a text slot on a layout.
type Placeholder struct {
	ID                 int    `json:"id"`
	ContentDescription string `json:"content_description"`
	MaxChars           int    `json:"maxchars,omitempty"`
}

// Layout is a named slide layout.
type Layout struct {
	Name         string        `json:"layout_name"`
	Description  string        `json:"layout_description"`
	Placeholders []Placeholder `json:"placeholders"`
}

// Placeholder returns the placeholder with the given id.
func (l *Layout) Placeholder(id int) (Placeholder, bool) {
	for _, ph := range l.Placeholders {
		if ph.ID == id {
			return ph, true
		}
	}
	return Placeholder{}, false
}

// Metadata is the parsed layout document plus lookups derived from it.
// It is read-only after Parse and safe for concurrent use.
type Metadata struct {
	Layouts []Layout `json:"layouts"`

	byName   map[string]*Layout
	mustHave []string
	ignored  []string
}

// Default returns the embedded layout document.
func Default() *Metadata {
	m, err := Parse(defaultLayouts)
	if err != nil {
		panic(fmt.Sprintf("layout: embedded metadata: %v", err))
	}
	return m
}

// Load reads a layout document from path.
func Load(path string) (*Metadata, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("layout: read metadata: %w", err)
	}
	return Parse(data)
}

// Parse decodes a layout document and precomputes name lookups and the
// must-have and ignored sets.
func Parse(data []byte) (*Metadata, error) {
	m := &Metadata{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("layout: decode metadata: %w", err)
	}
	if len(m.Layouts) == 0 {
		return nil, ErrNoLayouts
	}

	m.byName = make(map[string]*Layout, len(m.Layouts))
	for i := range m.Layouts {
		l := &m.Layouts[i]
		m.byName[normalize(l.Name)] = l

		desc := strings.ToLower(l.Description)
		if strings.Contains(desc, "must have") {
			m.mustHave = append(m.mustHave, l.Name)
		}
		if strings.Contains(desc, "ignore") {
			m.ignored = append(m.ignored, l.Name)
		}
	}
	return m, nil
}

// Lookup returns the layout whose trimmed, case-insensitive name equals name.
func (m *Metadata) Lookup(name string) (*Layout, bool) {
	l, ok := m.byName[normalize(name)]
	return l, ok
}

// Find resolves a layout name the way the deck builder does: exact match,
// then the first layout whose name contains name, then the first layout.
func (m *Metadata) Find(name string) *Layout {
	if l, ok := m.Lookup(name); ok {
		return l
	}
	target := normalize(name)
	if target != "" {
		for i := range m.Layouts {
			if strings.Contains(normalize(m.Layouts[i].Name), target) {
				return &m.Layouts[i]
			}
		}
	}
	return &m.Layouts[0]
}

// Last returns the last declared layout, used for the closing slide.
func (m *Metadata) Last() *Layout {
	return &m.Layouts[len(m.Layouts)-1]
}

// MustHave returns the names of layouts every deck must contain.
func (m *Metadata) MustHave() []string {
	return append([]string(nil), m.mustHave...)
}

// Ignored returns the names of layouts a deck must never use.
func (m *Metadata) Ignored() []string {
	return append([]string(nil), m.ignored...)
}

// JSON returns the public part of the document, as sent to a planner.
func (m *Metadata) JSON() ([]byte, error) {
	return json.Marshal(m)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
