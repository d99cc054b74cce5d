package app

import (
	"fmt"

	"github.com/example/rentlink/domain/user"
	"github.com/example/rentlink/domain/view"
	"github.com/example/rentlink/modules/catalog"
	"github.com/example/rentlink/modules/composer"
)

// Intent names accepted by Apply.
const (
	IntentGetStarted          = "get_started"
	IntentSignIn              = "sign_in"
	IntentSignInWithGoogle    = "sign_in_google"
	IntentLogout              = "logout"
	IntentSelectTab           = "select_tab"
	IntentBack                = "back"
	IntentOpenProperty        = "open_property"
	IntentOpenPostAd          = "open_post_ad"
	IntentOpenSettings        = "open_settings"
	IntentOpenPayments        = "open_payments"
	IntentOpenSupport         = "open_support"
	IntentSetFilter           = "set_filter"
	IntentToggleSaved         = "toggle_saved"
	IntentDeleteListing       = "delete_listing"
	IntentEditListing         = "edit_listing"
	IntentSwitchRole          = "switch_role"
	IntentSetDraftField       = "set_draft_field"
	IntentAdvanceDraft        = "advance_draft"
	IntentPublishDraft        = "publish_draft"
	IntentGenerateDescription = "generate_description"
	IntentOpenChat            = "open_chat"
	IntentChatNow             = "chat_now"
	IntentSendMessage         = "send_message"
	IntentSaveSettings        = "save_settings"
	IntentWithdraw            = "withdraw"
	IntentContactSupport      = "contact_support"
	IntentDismissToast        = "dismiss_toast"
)

// IntentRequest is the wire form of an intent. Only the fields the named
// intent uses are read.
type IntentRequest struct {
	Name       string          `json:"name"`
	PropertyID string          `json:"propertyId,omitempty"`
	SessionID  string          `json:"sessionId,omitempty"`
	Tab        string          `json:"tab,omitempty"`
	Field      string          `json:"field,omitempty"`
	Value      string          `json:"value,omitempty"`
	Text       string          `json:"text,omitempty"`
	Role       string          `json:"role,omitempty"`
	Filter     *catalog.Filter `json:"filter,omitempty"`
	ToastID    int64           `json:"toastId,omitempty"`
}

// Apply dispatches req to the matching Engine method.
func Apply(e *Engine, req IntentRequest) (Outcome, error) {
	switch req.Name {
	case IntentGetStarted:
		return e.GetStarted(), nil
	case IntentSignIn:
		return e.SignIn(), nil
	case IntentSignInWithGoogle:
		return e.SignInWithGoogle(), nil
	case IntentLogout:
		return e.Logout(), nil
	case IntentSelectTab:
		return e.SelectTab(view.Tab(req.Tab)), nil
	case IntentBack:
		return e.Back(), nil
	case IntentOpenProperty:
		return e.OpenProperty(req.PropertyID), nil
	case IntentOpenPostAd:
		return e.OpenPostAd(), nil
	case IntentOpenSettings:
		return e.OpenSettings(), nil
	case IntentOpenPayments:
		return e.OpenPayments(), nil
	case IntentOpenSupport:
		return e.OpenSupport(), nil
	case IntentSetFilter:
		var f catalog.Filter
		if req.Filter != nil {
			f = *req.Filter
		}
		return e.SetFilter(f), nil
	case IntentToggleSaved:
		return e.ToggleSaved(req.PropertyID), nil
	case IntentDeleteListing:
		return e.DeleteListing(req.PropertyID), nil
	case IntentEditListing:
		return e.EditListing(req.PropertyID), nil
	case IntentSwitchRole:
		role := user.Role(req.Role)
		if role == "" {
			role = e.role.Toggle()
		}
		return e.SwitchRole(role), nil
	case IntentSetDraftField:
		return e.SetDraftField(composer.Field(req.Field), req.Value), nil
	case IntentAdvanceDraft:
		return e.AdvanceDraft(), nil
	case IntentPublishDraft:
		return e.PublishDraft(), nil
	case IntentGenerateDescription:
		return e.GenerateDescription(), nil
	case IntentOpenChat:
		return e.OpenChat(req.SessionID), nil
	case IntentChatNow:
		return e.ChatNow(), nil
	case IntentSendMessage:
		return e.SendMessage(req.Text), nil
	case IntentSaveSettings:
		return e.SaveSettings(), nil
	case IntentWithdraw:
		return e.Withdraw(), nil
	case IntentContactSupport:
		return e.ContactSupport(), nil
	case IntentDismissToast:
		return e.DismissToast(req.ToastID), nil
	}
	return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownIntent, req.Name)
}
