package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiSDKProvider sends the conversation through a genai chat session.
type GeminiSDKProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiSDKProvider(ctx context.Context, apiKey, modelName string, opts ...option.ClientOption) (*GeminiSDKProvider, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiSDKProvider{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

func (p *GeminiSDKProvider) Close() {
	p.client.Close()
}

func (p *GeminiSDKProvider) Generate(ctx context.Context, contents []Content) (string, error) {
	if len(contents) == 0 {
		return "", fmt.Errorf("no contents to send")
	}

	cs := p.model.StartChat()
	cs.History = toGenaiContents(contents[:len(contents)-1])

	last := contents[len(contents)-1]
	resp, err := cs.SendMessage(ctx, toGenaiParts(last.Parts)...)
	if err != nil {
		// Safety blocks come back as errors; treat them as an empty reply.
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			return "", nil
		}
		if providerErr, ok := providerErrorFrom(err); ok {
			return "", providerErr
		}
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	return firstText(resp), nil
}

func toGenaiContents(contents []Content) []*genai.Content {
	out := make([]*genai.Content, 0, len(contents))
	for _, c := range contents {
		out = append(out, &genai.Content{Role: c.Role, Parts: toGenaiParts(c.Parts)})
	}
	return out
}

func toGenaiParts(parts []Part) []genai.Part {
	out := make([]genai.Part, 0, len(parts))
	for _, p := range parts {
		out = append(out, genai.Text(p.Text))
	}
	return out
}

// firstText returns the first candidate's first part if it is text.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return ""
	}
	if t, ok := cand.Content.Parts[0].(genai.Text); ok {
		return string(t)
	}
	return ""
}

// providerErrorFrom recovers the HTTP status of a failed SDK call.
func providerErrorFrom(err error) (*ProviderError, bool) {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) && gErr.Code > 0 {
		body := gErr.Body
		if strings.TrimSpace(body) == "" {
			body = gErr.Message
		}
		return &ProviderError{StatusCode: gErr.Code, Body: body}, true
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPCode() > 0 {
		return &ProviderError{StatusCode: apiErr.HTTPCode(), Body: apiErr.Error()}, true
	}

	return nil, false
}
