package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AppPort is what outer surfaces need from the app module.
type AppPort interface {
	Snapshot(ctx context.Context) (Snapshot, error)
	Dispatch(ctx context.Context, req IntentRequest) (Outcome, Snapshot, error)
	InterpretSearch(ctx context.Context, query string) (string, error)
}

// AppAdapter implements AppPort using the service container.
type AppAdapter struct {
	container mono.ServiceContainer
}

// NewAppAdapter creates a new AppAdapter.
func NewAppAdapter(container mono.ServiceContainer) AppPort {
	if container == nil {
		panic("app: ServiceContainer is nil")
	}
	return &AppAdapter{container: container}
}

// Snapshot returns the current state.
func (a *AppAdapter) Snapshot(ctx context.Context) (Snapshot, error) {
	req := SnapshotRequest{}
	var resp SnapshotResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceSnapshot,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return Snapshot{}, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return resp.Snapshot, nil
}

// Dispatch applies an intent.
func (a *AppAdapter) Dispatch(ctx context.Context, req IntentRequest) (Outcome, Snapshot, error) {
	var resp IntentResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceIntent,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return Outcome{}, Snapshot{}, fmt.Errorf("failed to dispatch intent: %w", err)
	}
	if resp.Unknown {
		return Outcome{}, resp.Snapshot, fmt.Errorf("%w: %q", ErrUnknownIntent, req.Name)
	}
	return resp.Outcome, resp.Snapshot, nil
}

// InterpretSearch returns the label for query, empty when unavailable.
func (a *AppAdapter) InterpretSearch(ctx context.Context, query string) (string, error) {
	req := InterpretRequest{Query: query}
	var resp InterpretResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceInterpretSearch,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return "", fmt.Errorf("failed to interpret search: %w", err)
	}
	return resp.Label, nil
}
