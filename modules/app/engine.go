package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-monolith/mono/pkg/types"

	"github.com/example/rentlink/domain/chat"
	"github.com/example/rentlink/domain/property"
	domaintoast "github.com/example/rentlink/domain/toast"
	"github.com/example/rentlink/domain/user"
	"github.com/example/rentlink/domain/view"
	"github.com/example/rentlink/events"
	"github.com/example/rentlink/modules/assistant"
	"github.com/example/rentlink/modules/catalog"
	"github.com/example/rentlink/modules/composer"
	"github.com/example/rentlink/modules/inbox"
	"github.com/example/rentlink/modules/navigation"
	"github.com/example/rentlink/modules/schedule"
	"github.com/example/rentlink/modules/toast"
)

// SplashDelay is how long the splash screen shows before onboarding.
const SplashDelay = 2500 * time.Millisecond

const splashTask = "splash"

// Options configures an Engine.
type Options struct {
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
	// Properties is the bootstrap catalog. Nil loads the embedded seed.
	Properties []property.Property
	// Sessions is the bootstrap inbox. Nil loads the seed relative to Now.
	Sessions []chat.Session
	// ResetOnLogout also clears role, selection, filter and open chat on logout.
	ResetOnLogout bool
	// RequireTitle refuses to publish untitled drafts.
	RequireTitle bool
	// NewID generates listing and draft ids. Defaults to nanoid.
	NewID func() string
}

// Engine is the single owner of application state. It is not safe for
// concurrent use: Runtime serializes every call onto one goroutine.
type Engine struct {
	now    func() time.Time
	opts   Options
	logger types.Logger

	sched    *schedule.Queue
	nav      *navigation.Machine
	toasts   *toast.Manager
	catalog  *catalog.Catalog
	composer *composer.Composer
	inbox    *inbox.Inbox

	user     user.User
	role     user.Role
	selected string
	filter   catalog.Filter

	version uint64
	outbox  []any
	closed  bool
}

// NewEngine builds the engine on the splash screen and arms the splash timer.
func NewEngine(opts Options, logger types.Logger) (*Engine, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	now := opts.Now()

	props := opts.Properties
	if props == nil {
		seed, err := property.Seed()
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		props = seed
	}
	sessions := opts.Sessions
	if sessions == nil {
		sessions = chat.Seed(now)
	}

	me := user.Current
	comp, err := composer.New(composer.Options{
		OwnerID:      me.ID,
		OwnerName:    "You",
		RequireTitle: opts.RequireTitle,
		NewID:        opts.NewID,
	})
	if err != nil {
		return nil, err
	}

	sched := schedule.New()
	e := &Engine{
		now:      opts.Now,
		opts:     opts,
		logger:   logger,
		sched:    sched,
		nav:      navigation.New(),
		toasts:   toast.NewManager(sched),
		catalog:  catalog.New(props),
		composer: comp,
		inbox:    inbox.New(sessions),
		user:     me,
		role:     me.Role,
	}
	sched.Schedule(splashTask, now.Add(SplashDelay), func(time.Time) {
		if _, err := e.navigate(navigation.Input{Event: navigation.SplashElapsed}); err != nil {
			e.logger.Warn("Splash timer fired outside splash", "error", err)
		}
	})
	e.logger.Info("Engine started", "properties", len(props), "sessions", len(sessions))
	return e, nil
}

// Advance runs timers due at now: the splash hand-off and toast expiry.
func (e *Engine) Advance(now time.Time) int {
	if e.closed {
		return 0
	}
	n := e.sched.Advance(now)
	if n > 0 {
		e.touch()
	}
	return n
}

// NextDeadline returns when the next timer is due.
func (e *Engine) NextDeadline() (time.Time, bool) {
	return e.sched.Next()
}

// Close cancels every pending timer so nothing fires into a torn-down engine.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.toasts.Clear()
	e.sched.Clear()
	e.logger.Info("Engine closed")
}

// Closed reports whether Close has been called.
func (e *Engine) Closed() bool {
	return e.closed
}

// Version increases after every intent and every timer that ran.
func (e *Engine) Version() uint64 {
	return e.version
}

// DrainEvents returns and clears the domain events recorded since the last call.
func (e *Engine) DrainEvents() []any {
	out := e.outbox
	e.outbox = nil
	return out
}

// --- onboarding and session ---

// GetStarted leaves onboarding for the sign-in screen.
func (e *Engine) GetStarted() Outcome {
	defer e.touch()
	return e.fire(navigation.Input{Event: navigation.GetStarted})
}

// SignIn completes the mocked sign-in.
func (e *Engine) SignIn() Outcome {
	defer e.touch()
	out := e.fire(navigation.Input{Event: navigation.SignIn})
	if out.Accepted {
		out.Toast = e.pushToast(MsgWelcomeBack, domaintoast.Success)
	}
	return out
}

// SignInWithGoogle completes the mocked Google sign-in.
func (e *Engine) SignInWithGoogle() Outcome {
	defer e.touch()
	out := e.fire(navigation.Input{Event: navigation.GoogleSignIn})
	if out.Accepted {
		out.Toast = e.pushToast(MsgGoogleLogin, domaintoast.Info)
	}
	return out
}

// Logout returns to the sign-in screen. Role and selection survive unless
// the engine was configured with ResetOnLogout.
func (e *Engine) Logout() Outcome {
	defer e.touch()
	out := e.fire(navigation.Input{Event: navigation.Logout})
	if !out.Accepted {
		return out
	}
	if e.opts.ResetOnLogout {
		e.setRole(e.user.Role)
		e.selected = ""
		e.filter = catalog.Filter{}
	}
	out.Toast = e.pushToast(MsgLoggedOut, domaintoast.Info)
	return out
}

// --- navigation ---

// SelectTab follows a bottom-navigation entry.
func (e *Engine) SelectTab(tab view.Tab) Outcome {
	defer e.touch()
	return e.fire(navigation.Input{Event: navigation.SelectTab, Tab: tab})
}

// Back follows the contextual back action. On the second step of the post-ad
// form it returns to the first step instead of leaving the screen.
func (e *Engine) Back() Outcome {
	defer e.touch()
	if e.nav.Current() == view.PostAd && e.composer.Back() {
		return Outcome{Accepted: true}
	}
	return e.fire(navigation.Input{Event: navigation.Back})
}

// OpenProperty selects a listing and shows its details.
func (e *Engine) OpenProperty(id string) Outcome {
	defer e.touch()
	if _, ok := e.catalog.Get(id); !ok {
		return refuse(CodeNotFound, fmt.Sprintf("property %s not found", id))
	}
	in := navigation.Input{Event: navigation.OpenDetails, HasSelection: true}
	if !e.nav.Can(in) {
		return e.fire(in)
	}
	e.selected = id
	e.catalog.RecordView(id)
	return e.fire(in)
}

// OpenPostAd opens the listing form with a fresh draft.
func (e *Engine) OpenPostAd() Outcome {
	defer e.touch()
	return e.fire(navigation.Input{Event: navigation.OpenPostAd})
}

// OpenSettings, OpenPayments and OpenSupport open the profile leaf screens.
func (e *Engine) OpenSettings() Outcome {
	defer e.touch()
	return e.fire(navigation.Input{Event: navigation.OpenSettings})
}

func (e *Engine) OpenPayments() Outcome {
	defer e.touch()
	return e.fire(navigation.Input{Event: navigation.OpenPayments})
}

func (e *Engine) OpenSupport() Outcome {
	defer e.touch()
	return e.fire(navigation.Input{Event: navigation.OpenSupport})
}

// --- catalog ---

// SetFilter replaces the home screen filter.
func (e *Engine) SetFilter(f catalog.Filter) Outcome {
	defer e.touch()
	if f.Type != "" && f.Type != property.AllTypes && !property.Type(f.Type).Valid() {
		return refuse(CodeValidation, fmt.Sprintf("unknown property type %q", f.Type))
	}
	e.filter = f
	return Outcome{Accepted: true}
}

// ToggleSaved flips the saved state of a listing and confirms with a toast.
func (e *Engine) ToggleSaved(id string) Outcome {
	defer e.touch()
	saved := e.catalog.ToggleSaved(id)
	out := Outcome{Accepted: true, Saved: &saved}
	if saved {
		out.Toast = e.pushToast(MsgSaved, domaintoast.Success)
	} else {
		out.Toast = e.pushToast(MsgUnsaved, domaintoast.Info)
	}
	e.record(events.SavedToggledEvent{PropertyID: id, Saved: saved, Timestamp: e.now()})
	return out
}

// DeleteListing removes one of the user's own listings.
func (e *Engine) DeleteListing(id string) Outcome {
	defer e.touch()
	p, ok := e.catalog.Get(id)
	if !ok {
		return refuse(CodeNotFound, fmt.Sprintf("property %s not found", id))
	}
	if p.OwnerID != e.user.ID {
		return refuse(CodeForbidden, "only the owner can delete a listing")
	}
	e.catalog.Remove(id)
	out := Outcome{Accepted: true}
	out.Toast = e.pushToast(MsgListingDeleted, domaintoast.Success)
	e.record(events.ListingDeletedEvent{PropertyID: id, Timestamp: e.now()})
	e.logger.Info("Listing deleted", "id", id)
	return out
}

// EditListing is not implemented beyond its acknowledgement.
func (e *Engine) EditListing(id string) Outcome {
	defer e.touch()
	if _, ok := e.catalog.Get(id); !ok {
		return refuse(CodeNotFound, fmt.Sprintf("property %s not found", id))
	}
	return Outcome{Accepted: true, Toast: e.pushToast(MsgEditListing, domaintoast.Info)}
}

// SwitchRole sets the role. It never changes the current screen.
func (e *Engine) SwitchRole(role user.Role) Outcome {
	defer e.touch()
	if !role.Valid() {
		return refuse(CodeValidation, fmt.Sprintf("unknown role %q", role))
	}
	e.setRole(role)
	return Outcome{Accepted: true}
}

// --- composer ---

// SetDraftField updates a field of the draft being composed.
func (e *Engine) SetDraftField(field composer.Field, value string) Outcome {
	defer e.touch()
	if err := e.composer.Set(field, value); err != nil {
		return composerRefusal(err)
	}
	return Outcome{Accepted: true}
}

// AdvanceDraft moves the form to its second step.
func (e *Engine) AdvanceDraft() Outcome {
	defer e.touch()
	if err := e.composer.Advance(); err != nil {
		return e.composerComplaint(err)
	}
	return Outcome{Accepted: true}
}

// PublishDraft turns the draft into a listing at the front of the catalog,
// switches the user to Owner and shows the profile.
func (e *Engine) PublishDraft() Outcome {
	defer e.touch()
	if e.nav.Current() != view.PostAd {
		return refuse(CodeRejected, "not composing a listing")
	}
	p, err := e.composer.Publish(e.now())
	if err != nil {
		return e.composerComplaint(err)
	}
	if err := e.catalog.Add(p); err != nil {
		e.logger.Error("Failed to add published listing", "id", p.ID, "error", err)
		return e.complain(CodeValidation, composer.MsgPublishIncomplete)
	}
	out := Outcome{Accepted: true}
	out.Toast = e.pushToast(MsgPublished, domaintoast.Success)
	e.setRole(user.Owner)
	if _, err := e.navigate(navigation.Input{Event: navigation.Published}); err != nil {
		e.logger.Error("Publish navigation failed", "error", err)
	}
	e.record(events.ListingPublishedEvent{
		PropertyID: p.ID,
		Title:      p.Title,
		OwnerID:    p.OwnerID,
		Price:      p.Price,
		Timestamp:  e.now(),
	})
	e.logger.Info("Listing published", "id", p.ID, "title", p.Title)
	return out
}

// GenerateDescription enters the generating state. The returned outcome
// carries the request the caller must send to the provider; the result comes
// back through CompleteGeneration.
func (e *Engine) GenerateDescription() Outcome {
	defer e.touch()
	req, err := e.composer.BeginGenerate()
	if err != nil {
		return e.composerComplaint(err)
	}
	return Outcome{Accepted: true, generation: &req}
}

// CompleteGeneration applies a provider result to the draft it was requested
// for. Results for a discarded draft are dropped silently.
func (e *Engine) CompleteGeneration(draftID, text string, genErr error) Outcome {
	defer e.touch()
	err := e.composer.CompleteGenerate(draftID, text, genErr)
	switch {
	case errors.Is(err, composer.ErrStaleDraft):
		e.logger.Debug("Dropped generation result for discarded draft", "draft", draftID)
		return refuse(CodeStale, err.Error())
	case err != nil:
		msg := MsgDescriptionFailed
		if errors.Is(err, assistant.ErrUnavailable) {
			msg = MsgAIUnavailable
		}
		e.record(events.DescriptionGeneratedEvent{DraftID: draftID, Error: err.Error(), Timestamp: e.now()})
		e.logger.Warn("Description generation failed", "draft", draftID, "error", err)
		return e.complain(CodeValidation, msg)
	}
	e.record(events.DescriptionGeneratedEvent{DraftID: draftID, Success: true, Timestamp: e.now()})
	return Outcome{Accepted: true, Toast: e.pushToast(MsgDescriptionReady, domaintoast.Success)}
}

// --- chat ---

// OpenChat opens a conversation from the chat list.
func (e *Engine) OpenChat(sessionID string) Outcome {
	defer e.touch()
	in := navigation.Input{Event: navigation.OpenChatDetail}
	if e.nav.Current() != view.Chat {
		return e.fire(in)
	}
	if _, err := e.inbox.Open(sessionID); err != nil {
		return refuse(CodeNotFound, err.Error())
	}
	return e.fire(in)
}

// ChatNow starts or resumes the conversation about the selected listing.
func (e *Engine) ChatNow() Outcome {
	defer e.touch()
	in := navigation.Input{Event: navigation.OpenChatDetail}
	if e.nav.Current() != view.Details {
		return e.fire(in)
	}
	p, ok := e.catalog.Get(e.selected)
	if !ok {
		return refuse(CodeNotFound, "selected property no longer exists")
	}
	s, _ := e.inbox.StartFromProperty(p, e.now())
	if _, err := e.inbox.Open(s.ID); err != nil {
		return refuse(CodeNotFound, err.Error())
	}
	return e.fire(in)
}

// SendMessage appends text to the open conversation.
func (e *Engine) SendMessage(text string) Outcome {
	defer e.touch()
	active, ok := e.inbox.Active()
	if !ok || e.nav.Current() != view.ChatDetail {
		return refuse(CodeRejected, "no conversation open")
	}
	msg, err := e.inbox.Send(active.ID, text, e.now())
	if err != nil {
		return refuse(CodeValidation, err.Error())
	}
	e.record(events.ChatMessageSentEvent{
		SessionID: active.ID,
		MessageID: msg.ID,
		Text:      msg.Text,
		Timestamp: time.UnixMilli(msg.Timestamp),
	})
	return Outcome{Accepted: true, Toast: e.pushToast(MsgMessageSent, domaintoast.Success)}
}

// --- profile leaves ---

// SaveSettings acknowledges the settings form.
func (e *Engine) SaveSettings() Outcome {
	return e.acknowledge(view.Settings, MsgSettingsSaved, domaintoast.Success)
}

// Withdraw acknowledges a payout request.
func (e *Engine) Withdraw() Outcome {
	return e.acknowledge(view.Payments, MsgWithdrawal, domaintoast.Success)
}

// ContactSupport acknowledges the support chat button.
func (e *Engine) ContactSupport() Outcome {
	return e.acknowledge(view.Support, MsgSupportChat, domaintoast.Info)
}

// DismissToast removes a toast early. Unknown ids are ignored.
func (e *Engine) DismissToast(id int64) Outcome {
	defer e.touch()
	e.toasts.Dismiss(id)
	return Outcome{Accepted: true}
}

// --- helpers ---

func (e *Engine) acknowledge(on view.State, msg string, kind domaintoast.Kind) Outcome {
	defer e.touch()
	if e.nav.Current() != on {
		return refuse(CodeRejected, fmt.Sprintf("only available on %s", on))
	}
	return Outcome{Accepted: true, Toast: e.pushToast(msg, kind)}
}

// fire fires a navigation event and converts a refusal into an outcome.
func (e *Engine) fire(in navigation.Input) Outcome {
	if _, err := e.navigate(in); err != nil {
		return refuse(CodeRejected, err.Error())
	}
	return Outcome{Accepted: true}
}

func (e *Engine) navigate(in navigation.Input) (navigation.Transition, error) {
	tr, err := e.nav.Fire(in)
	if err != nil {
		return tr, err
	}
	if !tr.Changed() {
		return tr, nil
	}
	if tr.From == view.Splash {
		e.sched.Cancel(splashTask)
	}
	if tr.From == view.PostAd {
		e.composer.Discard()
	}
	if tr.To == view.PostAd {
		e.composer.Open()
	}
	if tr.From == view.ChatDetail {
		e.inbox.Close()
	}
	under, _ := e.nav.Underlay()
	e.record(events.ViewChangedEvent{
		From:      string(tr.From),
		To:        string(tr.To),
		Underlay:  string(under),
		Timestamp: e.now(),
	})
	e.logger.Debug("View changed", "from", tr.From, "to", tr.To)
	return tr, nil
}

func (e *Engine) setRole(role user.Role) {
	if e.role == role {
		return
	}
	e.role = role
	e.record(events.RoleChangedEvent{Role: string(role), Timestamp: e.now()})
}

func (e *Engine) pushToast(msg string, kind domaintoast.Kind) *domaintoast.Toast {
	now := e.now()
	id := e.toasts.Push(now, msg, kind)
	t := domaintoast.Toast{ID: id, Message: msg, Kind: kind}
	e.record(events.ToastPushedEvent{ID: id, Message: msg, Kind: string(kind), Timestamp: now})
	return &t
}

// complain refuses an intent with an error toast.
func (e *Engine) complain(code Code, msg string) Outcome {
	return Outcome{Code: code, Reason: msg, Toast: e.pushToast(msg, domaintoast.Error)}
}

func (e *Engine) composerComplaint(err error) Outcome {
	if ve, ok := composer.AsValidation(err); ok {
		return e.complain(CodeValidation, ve.Message)
	}
	return composerRefusal(err)
}

func composerRefusal(err error) Outcome {
	switch {
	case errors.Is(err, composer.ErrGenerationInFlight):
		return refuse(CodeBusy, err.Error())
	case errors.Is(err, composer.ErrNoDraft):
		return refuse(CodeRejected, err.Error())
	}
	return refuse(CodeValidation, err.Error())
}

func refuse(code Code, reason string) Outcome {
	return Outcome{Code: code, Reason: reason}
}

func (e *Engine) record(ev any) {
	e.outbox = append(e.outbox, ev)
}

func (e *Engine) touch() {
	e.version++
}
