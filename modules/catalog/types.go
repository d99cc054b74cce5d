package catalog

import (
	"strings"

	"github.com/example/rentlink/domain/property"
	"golang.org/x/text/cases"
)

// Filter selects listings by type and free text. Type is a property.Type
// value or property.AllTypes; the empty string also matches every type.
type Filter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return (f.Type == "" || f.Type == property.AllTypes) && f.Text == ""
}

type matcher struct {
	fold cases.Caser
}

func newMatcher() *matcher {
	return &matcher{fold: cases.Fold()}
}

// match applies the type test and the case-insensitive substring test on
// title or location.
func (m *matcher) match(p property.Property, f Filter) bool {
	if f.Type != "" && f.Type != property.AllTypes && string(p.Type) != f.Type {
		return false
	}
	if f.Text == "" {
		return true
	}
	needle := m.fold.String(f.Text)
	return strings.Contains(m.fold.String(p.Title), needle) ||
		strings.Contains(m.fold.String(p.Location), needle)
}
