// Package catalog owns the listing collection, its filters and the saved-id set.
package catalog

import (
	"fmt"

	"github.com/example/rentlink/domain/property"
)

// Catalog keeps listings most-recent-first. The saved set is a list of ids,
// not copies, so deleting a listing leaves a dangling id that simply fails to
// resolve.
type Catalog struct {
	items   []property.Property
	saved   map[string]struct{}
	order   []string
	matcher *matcher
}

// New creates a catalog holding seed in the given order.
func New(seed []property.Property) *Catalog {
	c := &Catalog{
		saved:   make(map[string]struct{}),
		matcher: newMatcher(),
	}
	for _, p := range seed {
		c.items = append(c.items, p.Clone())
	}
	return c
}

// Add validates p and puts it at the front of the catalog.
func (c *Catalog) Add(p property.Property) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if c.index(p.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
	}
	c.items = append([]property.Property{p.Clone()}, c.items...)
	return nil
}

// Remove deletes the listing with id. It reports whether anything was removed.
func (c *Catalog) Remove(id string) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true
}

// Get resolves id. A missing listing is reported as not found, never as an error.
func (c *Catalog) Get(id string) (property.Property, bool) {
	i := c.index(id)
	if i < 0 {
		return property.Property{}, false
	}
	return c.items[i].Clone(), true
}

// All returns every listing in catalog order.
func (c *Catalog) All() []property.Property {
	return c.Filter(Filter{})
}

// Len returns the number of listings.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Filter returns the ordered subsequence of listings matching f.
func (c *Catalog) Filter(f Filter) []property.Property {
	out := make([]property.Property, 0, len(c.items))
	for _, p := range c.items {
		if c.matcher.match(p, f) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// OwnedBy returns the listings of ownerID in catalog order.
func (c *Catalog) OwnedBy(ownerID string) []property.Property {
	var out []property.Property
	for _, p := range c.items {
		if p.OwnerID == ownerID {
			out = append(out, p.Clone())
		}
	}
	return out
}

// RecordView increments the view counter of id and returns the new count.
func (c *Catalog) RecordView(id string) (int, bool) {
	i := c.index(id)
	if i < 0 {
		return 0, false
	}
	c.items[i].Views++
	return c.items[i].Views, true
}

// ToggleSaved flips the saved membership of id and returns the new state.
// The id does not have to resolve to a listing.
func (c *Catalog) ToggleSaved(id string) bool {
	if _, ok := c.saved[id]; ok {
		delete(c.saved, id)
		for i, s := range c.order {
			if s == id {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
		return false
	}
	c.saved[id] = struct{}{}
	c.order = append(c.order, id)
	return true
}

// IsSaved reports whether id is in the saved set.
func (c *Catalog) IsSaved(id string) bool {
	_, ok := c.saved[id]
	return ok
}

// SavedIDs returns the saved set in the order ids were saved, dangling ids included.
func (c *Catalog) SavedIDs() []string {
	return append([]string(nil), c.order...)
}

// Saved resolves the saved set to listings, skipping ids that no longer resolve.
func (c *Catalog) Saved() []property.Property {
	var out []property.Property
	for _, id := range c.order {
		if p, ok := c.Get(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// ResetSaved empties the saved set.
func (c *Catalog) ResetSaved() {
	c.saved = make(map[string]struct{})
	c.order = nil
}

func (c *Catalog) index(id string) int {
	for i, p := range c.items {
		if p.ID == id {
			return i
		}
	}
	return -1
}
