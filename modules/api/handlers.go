package api

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	"github.com/example/rentlink/modules/app"
)

const (
	maxQueryLength = 500
	frameTimeout   = 10 * time.Second
)

// Handlers serves the display surface.
type Handlers struct {
	port   app.AppPort
	hub    *Hub
	logger types.Logger
}

// NewHandlers creates a new handlers instance.
func NewHandlers(port app.AppPort, hub *Hub, logger types.Logger) *Handlers {
	return &Handlers{port: port, hub: hub, logger: logger}
}

// newApp builds the fiber app with every route registered.
func newApp(h *Handlers, allowOrigins string) *fiber.App {
	a := fiber.New(fiber.Config{
		AppName:               "RentLink",
		DisableStartupMessage: true,
		ErrorHandler:          h.errorHandler,
	})

	a.Use(recover.New())
	a.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} ${method} ${path} ${latency}\n",
	}))
	if allowOrigins == "" {
		allowOrigins = "*"
	}
	a.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))

	a.Get("/health", h.HealthCheck)

	a.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	a.Get("/ws", websocket.New(h.HandleWebSocket))

	api := a.Group("/api/v1")
	api.Get("/state", h.GetState)
	api.Post("/intents/:name", h.PostIntent)
	api.Post("/search/interpret", h.InterpretSearch)
	return a
}

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	snap, err := h.port.Snapshot(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{
			Status:  "unhealthy",
			Details: map[string]any{"error": err.Error()},
		})
	}
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"view":              string(snap.View),
			"version":           snap.Version,
			"connected_clients": h.hub.ClientCount(),
		},
	})
}

// GetState handles GET /api/v1/state.
func (h *Handlers) GetState(c *fiber.Ctx) error {
	snap, err := h.port.Snapshot(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(newStateResponse(snap))
}

// PostIntent handles POST /api/v1/intents/:name. The body is optional and
// carries the intent's arguments.
func (h *Handlers) PostIntent(c *fiber.Ctx) error {
	var req app.IntentRequest
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	}
	req.Name = c.Params("name")

	out, snap, err := h.port.Dispatch(c.UserContext(), req)
	if errors.Is(err, app.ErrUnknownIntent) {
		return fiber.NewError(fiber.StatusNotFound, "unknown intent: "+req.Name)
	}
	if err != nil {
		return err
	}
	return c.Status(outcomeStatus(out)).JSON(IntentResponse{
		Outcome: out,
		State:   newStateResponse(snap),
	})
}

// InterpretSearch handles POST /api/v1/search/interpret.
func (h *Handlers) InterpretSearch(c *fiber.Ctx) error {
	var req InterpretRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.Query) > maxQueryLength {
		return fiber.NewError(fiber.StatusBadRequest, "query too long")
	}
	label, err := h.port.InterpretSearch(c.UserContext(), req.Query)
	if err != nil {
		return err
	}
	return c.JSON(InterpretResponse{Label: label})
}

// HandleWebSocket streams state to a display surface and accepts intents
// from it. The current state is sent on connect; later changes arrive
// through the hub.
func (h *Handlers) HandleWebSocket(c *websocket.Conn) {
	client := NewClient(uuid.New().String(), c)
	if !h.hub.Register(client) {
		_ = c.Close()
		return
	}
	defer func() {
		h.hub.Unregister(client)
		_ = c.Close()
	}()

	h.logger.Info("WebSocket connected", "client", client.ID)

	ctx, cancel := context.WithTimeout(context.Background(), frameTimeout)
	snap, err := h.port.Snapshot(ctx)
	cancel()
	if err != nil {
		h.sendError(client, "state unavailable")
	} else {
		h.send(client, WSTypeState, newStateResponse(snap))
	}

	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("WebSocket error", "client", client.ID, "error", err)
			}
			break
		}
		h.handleFrame(client, data)
	}

	h.logger.Info("WebSocket disconnected", "client", client.ID)
}

// handleFrame processes one incoming stream message.
func (h *Handlers) handleFrame(client *Client, data []byte) {
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		h.sendError(client, "Invalid message format")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), frameTimeout)
	defer cancel()

	switch msg.Type {
	case WSTypeIntent:
		var req app.IntentRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			h.sendError(client, "Invalid intent payload")
			return
		}
		out, snap, err := h.port.Dispatch(ctx, req)
		if err != nil {
			h.sendError(client, err.Error())
			return
		}
		h.send(client, WSTypeOutcome, IntentResponse{Outcome: out, State: newStateResponse(snap)})

	case WSTypeInterpret:
		var req InterpretRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil || len(req.Query) > maxQueryLength {
			h.sendError(client, "Invalid interpret payload")
			return
		}
		label, err := h.port.InterpretSearch(ctx, req.Query)
		if err != nil {
			h.sendError(client, err.Error())
			return
		}
		h.send(client, WSTypeLabel, InterpretResponse{Label: label})

	case WSTypeState:
		snap, err := h.port.Snapshot(ctx)
		if err != nil {
			h.sendError(client, err.Error())
			return
		}
		h.send(client, WSTypeState, newStateResponse(snap))

	default:
		h.sendError(client, "Unknown message type: "+msg.Type)
	}
}

func (h *Handlers) send(client *Client, msgType string, payload any) {
	frame, err := encodeFrame(msgType, payload)
	if err != nil {
		h.logger.Error("Failed to encode frame", "type", msgType, "error", err)
		return
	}
	if err := client.SendJSON(frame); err != nil {
		h.logger.Warn("Failed to send frame", "client", client.ID, "error", err)
	}
}

func (h *Handlers) sendError(client *Client, message string) {
	if err := client.SendJSON(WSMessage{Type: WSTypeError, Error: message}); err != nil {
		h.logger.Warn("Failed to send error frame", "client", client.ID, "error", err)
	}
}

// outcomeStatus maps a refused intent to an HTTP status. Validation refusals
// are answered with 200 because the toast they carry is the response.
func outcomeStatus(out app.Outcome) int {
	if out.Accepted {
		return fiber.StatusOK
	}
	switch out.Code {
	case app.CodeNotFound:
		return fiber.StatusNotFound
	case app.CodeForbidden:
		return fiber.StatusForbidden
	case app.CodeRejected, app.CodeBusy, app.CodeStale:
		return fiber.StatusConflict
	}
	return fiber.StatusOK
}

// errorHandler handles errors globally.
func (h *Handlers) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		h.logger.Error("HTTP error", "code", code, "path", c.Path(), "error", err)
	}

	return c.Status(code).JSON(ErrorResponse{Error: message})
}
