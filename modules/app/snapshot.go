package app

import (
	"github.com/example/rentlink/domain/property"
	"github.com/example/rentlink/domain/view"
)

// Snapshot copies the current state. The returned value shares nothing with
// the engine.
func (e *Engine) Snapshot() Snapshot {
	cur := e.nav.Current()
	s := Snapshot{
		Version:     e.version,
		View:        cur,
		BottomNav:   e.nav.BottomNavVisible(),
		ActiveTab:   view.ActiveTab(cur),
		Role:        e.role,
		User:        e.user,
		Filter:      e.filter,
		Properties:  e.catalog.Filter(e.filter),
		SavedIDs:    e.catalog.SavedIDs(),
		Sessions:    e.inbox.List(),
		UnreadTotal: e.inbox.UnreadTotal(),
		Toasts:      e.toasts.List(),
		Profile:     e.profile(),
	}
	s.User.Role = e.role
	if under, ok := e.nav.Underlay(); ok {
		s.Underlay = under
	}
	if p, ok := e.catalog.Get(e.selected); ok && e.selected != "" {
		s.Selected = &p
	}
	if active, ok := e.inbox.Active(); ok {
		s.ActiveChat = &active
	}
	if d, ok := e.composer.Draft(); ok {
		s.Draft = &d
	}
	return s
}

func (e *Engine) profile() Profile {
	mine := e.catalog.OwnedBy(e.user.ID)
	saved := e.catalog.Saved()
	views := 0
	for _, p := range mine {
		views += p.Views
	}
	return Profile{
		MyListings:    nonNil(mine),
		SavedListings: nonNil(saved),
		ListingCount:  len(mine),
		SavedCount:    len(saved),
		TotalViews:    views,
		PaymentsTitle: PaymentsTitle(e.role),
	}
}

func nonNil(ps []property.Property) []property.Property {
	if ps == nil {
		return []property.Property{}
	}
	return ps
}
