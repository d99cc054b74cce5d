package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/rentlink/domain/view"
	"github.com/example/rentlink/modules/assistant"
	"github.com/example/rentlink/modules/composer"
)

type fakeDescriber struct {
	text  string
	err   error
	block chan struct{}
	calls atomic.Int32
}

func (f *fakeDescriber) GenerateDescription(ctx context.Context, _ assistant.DescriptionInput) (string, error) {
	f.calls.Add(1)
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

type stubInterpreter struct {
	label string
	err   error
}

func (s stubInterpreter) InterpretSearch(context.Context, string) (string, error) {
	return s.label, s.err
}

func startRuntime(t *testing.T, ropts RuntimeOptions) *Runtime {
	t.Helper()
	e, clk := newTestEngine(t)
	ropts.Logger = &mockLogger{}
	rt := NewRuntime(e, ropts)
	rt.Start()
	t.Cleanup(func() {
		_ = rt.Stop(context.Background())
	})

	_, snap, err := rt.Do(context.Background(), func(e *Engine) Outcome {
		e.Advance(clk.Add(SplashDelay))
		e.GetStarted()
		return e.SignIn()
	})
	require.NoError(t, err)
	require.Equal(t, view.Home, snap.View)
	return rt
}

func TestRuntime_NotStarted(t *testing.T) {
	e, _ := newTestEngine(t)
	rt := NewRuntime(e, RuntimeOptions{Logger: &mockLogger{}})

	_, err := rt.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrNotStarted)
	assert.NoError(t, rt.Stop(context.Background()))
}

func TestRuntime_Dispatch(t *testing.T) {
	rt := startRuntime(t, RuntimeOptions{})
	ctx := context.Background()

	out, snap, err := rt.Dispatch(ctx, IntentRequest{Name: IntentSelectTab, Tab: string(view.TabChat)})
	require.NoError(t, err)
	assert.True(t, out.Accepted)
	assert.Equal(t, view.Chat, snap.View)

	_, _, err = rt.Dispatch(ctx, IntentRequest{Name: "teleport"})
	assert.ErrorIs(t, err, ErrUnknownIntent)
}

func TestRuntime_GenerationRoundTrip(t *testing.T) {
	rt := startRuntime(t, RuntimeOptions{Describer: &fakeDescriber{text: "Bright and airy."}})
	ctx := context.Background()

	_, _, err := rt.Dispatch(ctx, IntentRequest{Name: IntentOpenPostAd})
	require.NoError(t, err)
	_, _, err = rt.Dispatch(ctx, IntentRequest{Name: IntentSetDraftField, Field: string(composer.FieldLocation), Value: "Harbor"})
	require.NoError(t, err)

	out, snap, err := rt.Dispatch(ctx, IntentRequest{Name: IntentGenerateDescription})
	require.NoError(t, err)
	require.True(t, out.Accepted)
	require.NotNil(t, snap.Draft)

	require.Eventually(t, func() bool {
		snap, err := rt.Snapshot(ctx)
		return err == nil && snap.Draft != nil && snap.Draft.Description == "Bright and airy."
	}, time.Second, 10*time.Millisecond)

	snap, err = rt.Snapshot(ctx)
	require.NoError(t, err)
	assert.False(t, snap.Draft.Generating)
}

func TestRuntime_GenerateWithoutTypeSkipsProvider(t *testing.T) {
	describer := &fakeDescriber{text: "unused"}
	rt := startRuntime(t, RuntimeOptions{Describer: describer})
	ctx := context.Background()

	for _, req := range []IntentRequest{
		{Name: IntentOpenPostAd},
		{Name: IntentSetDraftField, Field: string(composer.FieldLocation), Value: "Harbor"},
		{Name: IntentSetDraftField, Field: string(composer.FieldType), Value: ""},
	} {
		_, _, err := rt.Dispatch(ctx, req)
		require.NoError(t, err)
	}

	out, snap, err := rt.Dispatch(ctx, IntentRequest{Name: IntentGenerateDescription})
	require.NoError(t, err)
	assert.Equal(t, CodeValidation, out.Code)
	assert.False(t, snap.Draft.Generating)
	assert.Equal(t, int32(0), describer.calls.Load())
}

func TestRuntime_StopCancelsGeneration(t *testing.T) {
	block := make(chan struct{})
	e, clk := newTestEngine(t)
	rt := NewRuntime(e, RuntimeOptions{Describer: &fakeDescriber{block: block}, Logger: &mockLogger{}})
	rt.Start()
	ctx := context.Background()

	_, _, err := rt.Do(ctx, func(e *Engine) Outcome {
		e.Advance(clk.Add(SplashDelay))
		e.GetStarted()
		e.SignIn()
		e.OpenPostAd()
		e.SetDraftField(composer.FieldLocation, "Harbor")
		return e.GenerateDescription()
	})
	require.NoError(t, err)

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, rt.Stop(stopCtx))
	assert.True(t, e.Closed())

	_, err = rt.Snapshot(ctx)
	assert.ErrorIs(t, err, ErrStopped)
}

func TestRuntime_Observers(t *testing.T) {
	e, clk := newTestEngine(t)
	rt := NewRuntime(e, RuntimeOptions{Logger: &mockLogger{}})

	var mu sync.Mutex
	var views []view.State
	var eventCount int
	rt.Observe(func(snap Snapshot, evs []any) {
		mu.Lock()
		defer mu.Unlock()
		views = append(views, snap.View)
		eventCount += len(evs)
	})
	rt.Start()
	defer rt.Stop(context.Background())

	ctx := context.Background()
	_, _, err := rt.Do(ctx, func(e *Engine) Outcome {
		e.Advance(clk.Add(SplashDelay))
		return e.GetStarted()
	})
	require.NoError(t, err)

	_, err = rt.Snapshot(ctx)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []view.State{view.Auth}, views, "read-only calls do not notify")
	assert.Equal(t, 2, eventCount)
}

func TestRuntime_InterpretSearch(t *testing.T) {
	rt := startRuntime(t, RuntimeOptions{Interpreter: stubInterpreter{label: "2BR near the park"}})
	assert.Equal(t, "2BR near the park", rt.InterpretSearch(context.Background(), "two bedrooms by the park"))

	rt = startRuntime(t, RuntimeOptions{Interpreter: stubInterpreter{err: errors.New("down")}})
	assert.Empty(t, rt.InterpretSearch(context.Background(), "anything"))

	rt = startRuntime(t, RuntimeOptions{})
	assert.Empty(t, rt.InterpretSearch(context.Background(), "anything"), "unavailable interpreter yields no label")
}

func TestApply_UnknownIntent(t *testing.T) {
	e, _ := newTestEngine(t)
	_, err := Apply(e, IntentRequest{Name: "fly"})
	assert.ErrorIs(t, err, ErrUnknownIntent)
}

func TestApply_SwitchRoleToggles(t *testing.T) {
	e, _ := signedIn(t)
	out, err := Apply(e, IntentRequest{Name: IntentSwitchRole})
	require.NoError(t, err)
	assert.True(t, out.Accepted)
	assert.Equal(t, "OWNER", string(e.Snapshot().Role))

	out, err = Apply(e, IntentRequest{Name: IntentSwitchRole})
	require.NoError(t, err)
	assert.True(t, out.Accepted)
	assert.Equal(t, "RENTER", string(e.Snapshot().Role))
}
