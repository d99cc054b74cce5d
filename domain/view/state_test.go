package view

import "testing"

func TestState_ShowsBottomNav(t *testing.T) {
	hidden := map[State]bool{Splash: true, Onboarding: true, Auth: true}
	for _, s := range All {
		if got, want := s.ShowsBottomNav(), !hidden[s]; got != want {
			t.Errorf("%s.ShowsBottomNav() = %v, want %v", s, got, want)
		}
	}
}

func TestTab_Target(t *testing.T) {
	tests := []struct {
		tab  Tab
		want State
	}{
		{TabExplore, Home},
		{TabPost, PostAd},
		{TabChat, Chat},
		{TabProfile, Profile},
	}
	for _, tt := range tests {
		t.Run(string(tt.tab), func(t *testing.T) {
			got, ok := tt.tab.Target()
			if !ok || got != tt.want {
				t.Errorf("Target() = %v, %v, want %v", got, ok, tt.want)
			}
			if ActiveTab(got) != tt.tab {
				t.Errorf("ActiveTab(%s) = %q, want %q", got, ActiveTab(got), tt.tab)
			}
		})
	}

	if _, ok := Tab("settings").Target(); ok {
		t.Error("unknown tab should not resolve")
	}
}

func TestState_Valid(t *testing.T) {
	if State("NOWHERE").Valid() {
		t.Error("unknown state reported valid")
	}
	if !ChatDetail.IsOverlay() || Chat.IsOverlay() {
		t.Error("only CHAT_DETAIL is an overlay")
	}
}
