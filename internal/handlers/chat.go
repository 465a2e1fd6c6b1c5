package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"gemini-chat/internal/models"
	"gemini-chat/internal/services"
)

type chatService interface {
	Reply(ctx context.Context, req models.ChatRequest) (*services.Reply, error)
	Record(ctx context.Context, outcome string)
	Stats(ctx context.Context) (map[string]int64, error)
}

type ChatHandler struct {
	chat chatService
}

func NewChatHandler(chat chatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Relay forwards {message, history} to Gemini and returns {response}.
func (h *ChatHandler) Relay(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.chat.Record(r.Context(), models.OutcomeServerError)
		handleServiceError(w, r, fmt.Errorf("decode request body: %w", err))
		return
	}

	reply, err := h.chat.Reply(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Response: reply.Text})
}

// Stats reports relay outcome counters.
func (h *ChatHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.chat.Stats(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
