package models

// Relay outcomes, used as counter names.
const (
	OutcomeOK            = "ok"
	OutcomeFallback      = "fallback"
	OutcomeClientError   = "client_error"
	OutcomeProviderError = "provider_error"
	OutcomeServerError   = "server_error"
)

// Outcomes lists every relay outcome in reporting order.
var Outcomes = []string{
	OutcomeOK,
	OutcomeFallback,
	OutcomeClientError,
	OutcomeProviderError,
	OutcomeServerError,
}

// WebSocket frame sent back for every request frame.
type WSMessage struct {
	Status    int         `json:"status"`
	Response  string      `json:"response,omitempty"`
	Error     string      `json:"error,omitempty"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}
