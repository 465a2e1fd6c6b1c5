package models

// Turn roles as sent by the chat UI.
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Turn represents a single message in a conversation.
type Turn struct {
	Role string `json:"role"` // "user" or "bot"
	Text string `json:"text"`
}

// ChatRequest is the payload sent to the relay endpoint.
type ChatRequest struct {
	Message string `json:"message"`
	History []Turn `json:"history,omitempty"`
}

// ChatResponse is the relayed reply.
type ChatResponse struct {
	Response string `json:"response"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error     string      `json:"error"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}
