// Package chatui holds the client-side chat state shared by the terminal UI
// and the one-shot CLI: the conversation, the loading flag, the relay client
// and the persisted theme preference.
package chatui

import (
	"log/slog"
	"strings"

	"gemini-chat/internal/models"
)

// Session is the in-memory conversation. It is never persisted.
type Session struct {
	turns   []models.Turn
	loading bool
}

func NewSession() *Session {
	return &Session{}
}

// Submit appends the user's turn and enters the loading state. It returns the
// request to send, whose history is the conversation before this turn.
// Blank input leaves the session untouched and returns ok=false.
func (s *Session) Submit(input string) (models.ChatRequest, bool) {
	if strings.TrimSpace(input) == "" {
		return models.ChatRequest{}, false
	}

	history := s.Turns()
	s.turns = append(s.turns, models.Turn{Role: models.RoleUser, Text: input})
	s.loading = true

	return models.ChatRequest{Message: input, History: history}, true
}

// Receive appends the bot's reply and leaves the loading state.
func (s *Session) Receive(text string) {
	s.turns = append(s.turns, models.Turn{Role: models.RoleBot, Text: text})
	s.loading = false
}

// Fail leaves the loading state without adding a bot turn.
func (s *Session) Fail(err error) {
	slog.Error("chat request failed", "error", err)
	s.loading = false
}

// Clear empties the conversation. The loading flag is left as is.
func (s *Session) Clear() {
	s.turns = nil
}

func (s *Session) Loading() bool {
	return s.loading
}

// Turns returns a copy of the conversation in order.
func (s *Session) Turns() []models.Turn {
	out := make([]models.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// LastReply returns the most recent bot turn's text.
func (s *Session) LastReply() (string, bool) {
	for i := len(s.turns) - 1; i >= 0; i-- {
		if s.turns[i].Role == models.RoleBot {
			return s.turns[i].Text, true
		}
	}
	return "", false
}
