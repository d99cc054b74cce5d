package app

import (
	"github.com/example/rentlink/domain/chat"
	"github.com/example/rentlink/domain/property"
	domaintoast "github.com/example/rentlink/domain/toast"
	"github.com/example/rentlink/domain/user"
	"github.com/example/rentlink/domain/view"
	"github.com/example/rentlink/modules/catalog"
	"github.com/example/rentlink/modules/composer"
)

// Code classifies why an intent was not accepted.
type Code string

const (
	CodeValidation Code = "validation"
	CodeRejected   Code = "rejected"
	CodeNotFound   Code = "not_found"
	CodeBusy       Code = "busy"
	CodeStale      Code = "stale"
	CodeForbidden  Code = "forbidden"
)

// Outcome reports what an intent did. Refused intents are not errors: the
// engine stays interactive and usually queues an error toast explaining why.
type Outcome struct {
	Accepted bool               `json:"accepted"`
	Code     Code               `json:"code,omitempty"`
	Reason   string             `json:"reason,omitempty"`
	Toast    *domaintoast.Toast `json:"toast,omitempty"`
	Saved    *bool              `json:"saved,omitempty"`
	Label    string             `json:"label,omitempty"`

	generation *composer.Request
}

// Generation returns the description request to hand to the provider, if the
// intent started one.
func (o Outcome) Generation() (composer.Request, bool) {
	if o.generation == nil {
		return composer.Request{}, false
	}
	return *o.generation, true
}

// Profile is what the profile screen renders.
type Profile struct {
	MyListings    []property.Property `json:"myListings"`
	SavedListings []property.Property `json:"savedListings"`
	ListingCount  int                 `json:"listingCount"`
	SavedCount    int                 `json:"savedCount"`
	TotalViews    int                 `json:"totalViews"`
	PaymentsTitle string              `json:"paymentsTitle"`
}

// Snapshot is a read-only copy of everything the display surface renders.
type Snapshot struct {
	Version     uint64              `json:"version"`
	View        view.State          `json:"view"`
	Underlay    view.State          `json:"underlay,omitempty"`
	BottomNav   bool                `json:"bottomNav"`
	ActiveTab   view.Tab            `json:"activeTab,omitempty"`
	Role        user.Role           `json:"role"`
	User        user.User           `json:"user"`
	Filter      catalog.Filter      `json:"filter"`
	Properties  []property.Property `json:"properties"`
	SavedIDs    []string            `json:"savedIds"`
	Selected    *property.Property  `json:"selected,omitempty"`
	Sessions    []chat.Session      `json:"sessions"`
	ActiveChat  *chat.Session       `json:"activeChat,omitempty"`
	UnreadTotal int                 `json:"unreadTotal"`
	Toasts      []domaintoast.Toast `json:"toasts"`
	Draft       *composer.Draft     `json:"draft,omitempty"`
	Profile     Profile             `json:"profile"`
}

// PaymentsTitle returns the payments screen heading for role.
func PaymentsTitle(role user.Role) string {
	if role == user.Owner {
		return "Payouts & Earnings"
	}
	return "Payments & Cards"
}
