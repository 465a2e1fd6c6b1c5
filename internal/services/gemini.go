package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"gemini-chat/internal/models"
)

// Gemini provider roles.
const (
	ProviderRoleUser  = "user"
	ProviderRoleModel = "model"
)

const apiKeyHeader = "x-goog-api-key"

// FallbackReply is returned when Gemini answers without any text.
const FallbackReply = "No response from Gemini."

// Content is one role-tagged entry of a generateContent request.
type Content struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text"`
}

type GenerateContentRequest struct {
	Contents []Content `json:"contents"`
}

// Provider issues a single generation call and returns the first text part,
// or "" when the reply carries none.
type Provider interface {
	Generate(ctx context.Context, contents []Content) (string, error)
}

// ProviderRole maps a UI role to the Gemini role. Only user and bot are accepted.
func ProviderRole(role string) (string, error) {
	switch role {
	case models.RoleUser:
		return ProviderRoleUser, nil
	case models.RoleBot:
		return ProviderRoleModel, nil
	default:
		return "", &ValidationError{Message: "Invalid history role", Details: role}
	}
}

// BuildContents maps history in order and appends message as the final user entry.
func BuildContents(message string, history []models.Turn) ([]Content, error) {
	contents := make([]Content, 0, len(history)+1)
	for _, turn := range history {
		role, err := ProviderRole(turn.Role)
		if err != nil {
			return nil, err
		}
		contents = append(contents, Content{Role: role, Parts: []Part{{Text: turn.Text}}})
	}
	contents = append(contents, Content{Role: ProviderRoleUser, Parts: []Part{{Text: message}}})
	return contents, nil
}

// GeminiRESTProvider calls the generateContent endpoint directly.
type GeminiRESTProvider struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewGeminiRESTProvider(apiKey, model, baseURL string, httpClient *http.Client) *GeminiRESTProvider {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GeminiRESTProvider{
		apiKey:     apiKey,
		model:      model,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// Endpoint returns the generateContent URL. The key travels in a header.
func (p *GeminiRESTProvider) Endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, url.PathEscape(p.model))
}

func (p *GeminiRESTProvider) Generate(ctx context.Context, contents []Content) (string, error) {
	payload, err := json.Marshal(GenerateContentRequest{Contents: contents})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint(), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		// *url.Error embeds the request URL; report only the cause.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return "", fmt.Errorf("generateContent request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ProviderError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("parse response: %w", ErrInvalidResponse)
	}

	return gjson.GetBytes(body, "candidates.0.content.parts.0.text").String(), nil
}
