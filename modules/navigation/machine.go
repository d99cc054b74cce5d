// Package navigation is the screen state machine. It decides which view is
// current and keeps the screen under the chat overlay and the screen the
// post-ad form was opened from.
package navigation

import (
	"github.com/example/rentlink/domain/view"
)

// Machine holds the current screen. The zero value is not usable; call New.
type Machine struct {
	current  view.State
	underlay view.State
	origin   view.State
}

// New starts on the splash screen.
func New() *Machine {
	return &Machine{current: view.Splash}
}

// Current returns the screen being shown.
func (m *Machine) Current() view.State {
	return m.current
}

// Underlay returns the screen drawn beneath the chat overlay.
func (m *Machine) Underlay() (view.State, bool) {
	if !m.current.IsOverlay() {
		return "", false
	}
	return m.underlay, true
}

// Origin returns the screen the post-ad form returns to on back.
func (m *Machine) Origin() (view.State, bool) {
	if m.current != view.PostAd {
		return "", false
	}
	return m.origin, true
}

// BottomNavVisible reports whether the bottom navigation is rendered.
func (m *Machine) BottomNavVisible() bool {
	return m.current.ShowsBottomNav()
}

// Fire applies in. A refused event leaves the state unchanged and returns a
// *RejectedError.
func (m *Machine) Fire(in Input) (Transition, error) {
	to, err := m.next(in)
	if err != nil {
		return Transition{From: m.current, To: m.current}, err
	}
	tr := Transition{From: m.current, To: to}
	m.enter(to)
	return tr, nil
}

// Can reports whether in would be accepted.
func (m *Machine) Can(in Input) bool {
	_, err := m.next(in)
	return err == nil
}

func (m *Machine) next(in Input) (view.State, error) {
	cur := m.current
	reject := func(reason string) (view.State, error) {
		return "", &RejectedError{From: cur, Event: in.Event, Reason: reason}
	}

	switch in.Event {
	case SplashElapsed:
		if cur == view.Splash {
			return view.Onboarding, nil
		}
	case GetStarted:
		if cur == view.Onboarding {
			return view.Auth, nil
		}
	case SignIn, GoogleSignIn:
		if cur == view.Auth {
			return view.Home, nil
		}
	case OpenDetails:
		if cur == view.Home || cur == view.Profile {
			if !in.HasSelection {
				return reject("no property selected")
			}
			return view.Details, nil
		}
	case OpenPostAd:
		if cur == view.Home || cur == view.Profile {
			return view.PostAd, nil
		}
	case Published:
		if cur == view.PostAd {
			return view.Profile, nil
		}
	case OpenChatDetail:
		if cur == view.Details || cur == view.Chat {
			return view.ChatDetail, nil
		}
	case OpenSettings, OpenPayments, OpenSupport:
		if cur == view.Profile {
			return leafFor(in.Event), nil
		}
	case Logout:
		if cur == view.Profile {
			return view.Auth, nil
		}
	case Back:
		return m.back(reject)
	case SelectTab:
		if !cur.ShowsBottomNav() {
			return reject("bottom navigation hidden")
		}
		to, ok := in.Tab.Target()
		if !ok {
			return reject("unknown tab " + string(in.Tab))
		}
		return to, nil
	default:
		return reject("unknown event")
	}
	return reject("")
}

func (m *Machine) back(reject func(string) (view.State, error)) (view.State, error) {
	switch m.current {
	case view.Details:
		return view.Home, nil
	case view.PostAd:
		return m.origin, nil
	case view.ChatDetail:
		return view.Chat, nil
	case view.Settings, view.Payments, view.Support:
		return view.Profile, nil
	}
	return reject("no previous screen")
}

func (m *Machine) enter(to view.State) {
	from := m.current
	switch {
	case to == view.ChatDetail && from != view.ChatDetail:
		m.underlay = from
	case to == view.PostAd && from != view.PostAd:
		m.origin = from
		if from.IsOverlay() {
			m.origin = view.Chat
		}
	}
	if to != view.ChatDetail {
		m.underlay = ""
	}
	if to != view.PostAd {
		m.origin = ""
	}
	m.current = to
}

func leafFor(ev Event) view.State {
	switch ev {
	case OpenSettings:
		return view.Settings
	case OpenPayments:
		return view.Payments
	}
	return view.Support
}
