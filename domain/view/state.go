package view

// State identifies the top-level screen being displayed.
type State string

const (
	Splash     State = "SPLASH"
	Onboarding State = "ONBOARDING"
	Auth       State = "AUTH"
	Home       State = "HOME"
	Details    State = "DETAILS"
	PostAd     State = "POST_AD"
	Chat       State = "CHAT"
	ChatDetail State = "CHAT_DETAIL"
	Profile    State = "PROFILE"
	Settings   State = "SETTINGS"
	Payments   State = "PAYMENTS"
	Support    State = "SUPPORT"
)

// All lists every state.
var All = []State{Splash, Onboarding, Auth, Home, Details, PostAd, Chat, ChatDetail, Profile, Settings, Payments, Support}

// Valid reports whether s is a known state.
func (s State) Valid() bool {
	for _, v := range All {
		if v == s {
			return true
		}
	}
	return false
}

// IsOverlay reports whether s is drawn on top of another screen.
func (s State) IsOverlay() bool {
	return s == ChatDetail
}

// ShowsBottomNav reports whether the bottom navigation bar is rendered in s.
func (s State) ShowsBottomNav() bool {
	switch s {
	case Splash, Onboarding, Auth:
		return false
	}
	return true
}

// Tab is an entry of the bottom navigation bar.
type Tab string

const (
	TabExplore Tab = "explore"
	TabPost    Tab = "post"
	TabChat    Tab = "chat"
	TabProfile Tab = "profile"
)

// Tabs lists the bottom navigation entries in display order.
var Tabs = []Tab{TabExplore, TabPost, TabChat, TabProfile}

// Target returns the screen a tab opens.
func (t Tab) Target() (State, bool) {
	switch t {
	case TabExplore:
		return Home, true
	case TabPost:
		return PostAd, true
	case TabChat:
		return Chat, true
	case TabProfile:
		return Profile, true
	}
	return "", false
}

// ActiveTab returns the tab highlighted while s is shown, or "" when none is.
func ActiveTab(s State) Tab {
	switch s {
	case Home:
		return TabExplore
	case PostAd:
		return TabPost
	case Chat, ChatDetail:
		return TabChat
	case Profile:
		return TabProfile
	}
	return ""
}
