package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"gemini-chat/internal/middleware"
	"gemini-chat/internal/models"
	"gemini-chat/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type chatService interface {
	Reply(ctx context.Context, req models.ChatRequest) (*services.Reply, error)
	Record(ctx context.Context, outcome string)
}

// Hub relays chat requests received over WebSocket connections.
// Each text frame is one {message, history} request and gets exactly one reply frame.
type Hub struct {
	mu          sync.Mutex
	connections map[*websocket.Conn]struct{}
	chat        chatService
}

func NewHub(chat chatService) *Hub {
	return &Hub{
		connections: make(map[*websocket.Conn]struct{}),
		chat:        chat,
	}
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	h.registerConnection(conn)
	defer h.unregisterConnection(conn)

	requestID := middleware.GetRequestID(r.Context())
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}

		frame := h.handleFrame(r.Context(), data)
		frame.RequestID = requestID
		if err := conn.WriteJSON(frame); err != nil {
			slog.Warn("WebSocket write failed", "error", err)
			break
		}
	}
}

func (h *Hub) handleFrame(ctx context.Context, data []byte) models.WSMessage {
	var req models.ChatRequest
	if err := json.Unmarshal(data, &req); err != nil {
		h.chat.Record(ctx, models.OutcomeServerError)
		return errorFrame(fmt.Errorf("decode frame: %w", err))
	}

	reply, err := h.chat.Reply(ctx, req)
	if err != nil {
		return errorFrame(err)
	}

	return models.WSMessage{Status: http.StatusOK, Response: reply.Text}
}

func errorFrame(err error) models.WSMessage {
	info := services.DescribeError(err)
	slog.Warn("WebSocket relay failed", "status", info.Status, "error", err)
	return models.WSMessage{
		Status:  info.Status,
		Error:   info.Message,
		Details: info.Details,
	}
}

func (h *Hub) registerConnection(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connections[conn] = struct{}{}
	slog.Debug("WebSocket connected", "total", len(h.connections))
}

func (h *Hub) unregisterConnection(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn.Close()
	delete(h.connections, conn)
	slog.Debug("WebSocket disconnected", "total", len(h.connections))
}

// Count returns the number of open connections.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.connections)
}

// CloseAll closes every open connection, used on shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.connections {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
		delete(h.connections, conn)
	}
}
