package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"gemini-chat/internal/middleware"
	"gemini-chat/internal/models"
	"gemini-chat/internal/services"
)

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(message string, details interface{}, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error:     message,
		Details:   details,
		RequestID: middleware.GetRequestID(r.Context()),
	}
}

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	info := services.DescribeError(err)

	level := slog.LevelError
	if info.Status < http.StatusInternalServerError {
		level = slog.LevelWarn
	}
	slog.Log(r.Context(), level, "relay request failed",
		"status", info.Status,
		"outcome", info.Outcome,
		"request_id", middleware.GetRequestID(r.Context()),
		"error", err,
	)

	writeJSON(w, info.Status, errorResp(info.Message, info.Details, r))
}
