package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"

	"github.com/example/rentlink/events"
)

// Module hosts the engine runtime and exposes it through request-reply
// services and events.
type Module struct {
	runtime  *Runtime
	eventBus mono.EventBus
	logger   types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.EventBusAwareModule   = (*Module)(nil)
	_ mono.EventEmitterModule    = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule builds the engine and its runtime. Timers start running on Start.
func NewModule(opts Options, ropts RuntimeOptions, logger types.Logger) (*Module, error) {
	logger = logger.WithModule("app")
	engine, err := NewEngine(opts, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	ropts.Logger = logger
	m := &Module{
		runtime: NewRuntime(engine, ropts),
		logger:  logger,
	}
	m.runtime.Observe(m.publish)
	return m, nil
}

// Name returns the module name.
func (m *Module) Name() string {
	return "app"
}

// Runtime returns the engine runtime for in-process callers.
func (m *Module) Runtime() *Runtime {
	return m.runtime
}

// SetEventBus receives the EventBus from the framework.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module can emit.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.ViewChangedV1.ToBase(),
		events.ToastPushedV1.ToBase(),
		events.ListingPublishedV1.ToBase(),
		events.ListingDeletedV1.ToBase(),
		events.SavedToggledV1.ToBase(),
		events.DescriptionGeneratedV1.ToBase(),
		events.ChatMessageSentV1.ToBase(),
		events.RoleChangedV1.ToBase(),
		events.StateChangedV1.ToBase(),
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container,
		ServiceSnapshot,
		json.Unmarshal,
		json.Marshal,
		m.handleSnapshot,
	); err != nil {
		return fmt.Errorf("failed to register snapshot service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		ServiceIntent,
		json.Unmarshal,
		json.Marshal,
		m.handleIntent,
	); err != nil {
		return fmt.Errorf("failed to register intent service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		ServiceInterpretSearch,
		json.Unmarshal,
		json.Marshal,
		m.handleInterpret,
	); err != nil {
		return fmt.Errorf("failed to register interpret-search service: %w", err)
	}

	m.logger.Info("Registered app services")
	return nil
}

func (m *Module) handleSnapshot(ctx context.Context, _ SnapshotRequest, _ *mono.Msg) (SnapshotResponse, error) {
	snap, err := m.runtime.Snapshot(ctx)
	if err != nil {
		return SnapshotResponse{}, err
	}
	return SnapshotResponse{Snapshot: snap}, nil
}

func (m *Module) handleIntent(ctx context.Context, req IntentRequest, _ *mono.Msg) (IntentResponse, error) {
	out, snap, err := m.runtime.Dispatch(ctx, req)
	if errors.Is(err, ErrUnknownIntent) {
		return IntentResponse{Outcome: out, Snapshot: snap, Unknown: true}, nil
	}
	if err != nil {
		return IntentResponse{}, err
	}
	return IntentResponse{Outcome: out, Snapshot: snap}, nil
}

func (m *Module) handleInterpret(ctx context.Context, req InterpretRequest, _ *mono.Msg) (InterpretResponse, error) {
	return InterpretResponse{Label: m.runtime.InterpretSearch(ctx, req.Query)}, nil
}

// Start launches the engine goroutine and its timers.
func (m *Module) Start(_ context.Context) error {
	m.runtime.Start()
	m.logger.Info("App module started")
	return nil
}

// Stop cancels timers and outstanding provider calls.
func (m *Module) Stop(ctx context.Context) error {
	if err := m.runtime.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop app runtime: %w", err)
	}
	m.logger.Info("App module stopped")
	return nil
}

// Health reports the engine's liveness and current screen.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	snap, err := m.runtime.Snapshot(ctx)
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: err.Error(),
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"view":       string(snap.View),
			"version":    snap.Version,
			"properties": len(snap.Properties),
			"toasts":     len(snap.Toasts),
		},
	}
}

// publish forwards engine events and the new snapshot to the event bus.
func (m *Module) publish(snap Snapshot, evs []any) {
	if m.eventBus == nil {
		return
	}
	for _, ev := range evs {
		if err := m.publishEvent(ev); err != nil {
			m.logger.Warn("Failed to publish event", "type", fmt.Sprintf("%T", ev), "error", err)
		}
	}

	data, err := json.Marshal(snap)
	if err != nil {
		m.logger.Error("Failed to encode snapshot", "error", err)
		return
	}
	state := events.StateChangedEvent{
		Version:  snap.Version,
		View:     string(snap.View),
		Snapshot: data,
	}
	if err := events.StateChangedV1.Publish(m.eventBus, state, nil); err != nil {
		m.logger.Warn("Failed to publish StateChanged event", "error", err)
	}
}

func (m *Module) publishEvent(ev any) error {
	switch e := ev.(type) {
	case events.ViewChangedEvent:
		return events.ViewChangedV1.Publish(m.eventBus, e, nil)
	case events.ToastPushedEvent:
		return events.ToastPushedV1.Publish(m.eventBus, e, nil)
	case events.ListingPublishedEvent:
		return events.ListingPublishedV1.Publish(m.eventBus, e, nil)
	case events.ListingDeletedEvent:
		return events.ListingDeletedV1.Publish(m.eventBus, e, nil)
	case events.SavedToggledEvent:
		return events.SavedToggledV1.Publish(m.eventBus, e, nil)
	case events.DescriptionGeneratedEvent:
		return events.DescriptionGeneratedV1.Publish(m.eventBus, e, nil)
	case events.ChatMessageSentEvent:
		return events.ChatMessageSentV1.Publish(m.eventBus, e, nil)
	case events.RoleChangedEvent:
		return events.RoleChangedV1.Publish(m.eventBus, e, nil)
	}
	return fmt.Errorf("unhandled event %T", ev)
}
