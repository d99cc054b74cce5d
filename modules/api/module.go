package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"

	"github.com/example/rentlink/events"
	"github.com/example/rentlink/modules/app"
)

// Options configures the HTTP surface.
type Options struct {
	Addr         string
	AllowOrigins string
}

// Module is the HTTP and websocket display surface.
type Module struct {
	opts      Options
	fiberApp  *fiber.App
	appPort   app.AppPort
	hub       *Hub
	cancelHub context.CancelFunc
	logger    types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.DependentModule       = (*Module)(nil)
	_ mono.EventConsumerModule   = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new api module.
func NewModule(opts Options, logger types.Logger) *Module {
	if opts.Addr == "" {
		opts.Addr = ":3000"
	}
	logger = logger.WithModule("api")
	return &Module{
		opts:   opts,
		hub:    NewHub(logger),
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *Module) Dependencies() []string {
	return []string{"app"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "app":
		m.appPort = app.NewAppAdapter(container)
	}
}

// RegisterEventConsumers subscribes the stream to state changes.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(
		registry, events.StateChangedV1, m.handleStateChanged, m,
	); err != nil {
		return fmt.Errorf("failed to register StateChanged consumer: %w", err)
	}
	return nil
}

func (m *Module) handleStateChanged(_ context.Context, ev events.StateChangedEvent, _ *mono.Msg) error {
	m.hub.Broadcast(stateFrame(ev))
	return nil
}

// stateFrame wraps the already encoded snapshot for the stream and adds the
// derived fields the HTTP response carries.
func stateFrame(ev events.StateChangedEvent) WSMessage {
	var snap app.Snapshot
	if err := json.Unmarshal(ev.Snapshot, &snap); err != nil {
		return WSMessage{Type: WSTypeState, Payload: ev.Snapshot}
	}
	frame, err := encodeFrame(WSTypeState, newStateResponse(snap))
	if err != nil {
		return WSMessage{Type: WSTypeState, Payload: ev.Snapshot}
	}
	return frame
}

// Start launches the hub and the HTTP server.
func (m *Module) Start(_ context.Context) error {
	if m.appPort == nil {
		return fmt.Errorf("app adapter dependency not set")
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelHub = cancel
	go m.hub.Run(ctx)

	m.fiberApp = newApp(NewHandlers(m.appPort, m.hub, m.logger), m.opts.AllowOrigins)

	errCh := make(chan error, 1)
	go func() {
		if err := m.fiberApp.Listen(m.opts.Addr); err != nil {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		cancel()
		m.hub.Wait()
		return fmt.Errorf("HTTP server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
	}

	m.logger.Info("HTTP server started", "addr", m.opts.Addr)
	return nil
}

// Stop shuts down the server, then closes every stream.
func (m *Module) Stop(ctx context.Context) error {
	if m.fiberApp != nil {
		if err := m.fiberApp.ShutdownWithContext(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}
	clients := m.hub.ClientCount()
	if m.cancelHub != nil {
		m.cancelHub()
		m.hub.Wait()
	}
	m.logger.Info("HTTP server stopped", "clients", clients)
	return nil
}

// Health returns the health status.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.fiberApp != nil,
		Message: "operational",
		Details: map[string]any{
			"addr":              m.opts.Addr,
			"connected_clients": m.hub.ClientCount(),
		},
	}
}
