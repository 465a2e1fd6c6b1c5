package services

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gemini-chat/internal/models"
)

var tracer = otel.Tracer("gemini-chat/services")

// Reply is the outcome of a successful relay call.
type Reply struct {
	Text     string
	Fallback bool
}

// ChatService translates UI requests into one provider call each.
type ChatService struct {
	provider Provider
	stats    StatsRecorder
}

func NewChatService(provider Provider, stats StatsRecorder) *ChatService {
	if stats == nil {
		stats = NewMemoryStats()
	}
	return &ChatService{provider: provider, stats: stats}
}

// Reply validates req, relays it, and records the outcome.
func (s *ChatService) Reply(ctx context.Context, req models.ChatRequest) (*Reply, error) {
	reply, err := s.reply(ctx, req)
	if err != nil {
		s.Record(ctx, DescribeError(err).Outcome)
		return nil, err
	}

	if reply.Fallback {
		s.Record(ctx, models.OutcomeFallback)
	} else {
		s.Record(ctx, models.OutcomeOK)
	}
	return reply, nil
}

func (s *ChatService) reply(ctx context.Context, req models.ChatRequest) (*Reply, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, &ValidationError{Message: "Message is required"}
	}

	contents, err := BuildContents(req.Message, req.History)
	if err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "gemini.generateContent", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.Int("chat.history_length", len(req.History)))

	text, err := s.provider.Generate(ctx, contents)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.ErrorContext(ctx, "Gemini error", "error", err)
		return nil, err
	}

	if text == "" {
		slog.WarnContext(ctx, "Gemini returned empty text, using fallback")
		span.SetAttributes(attribute.Bool("chat.fallback", true))
		return &Reply{Text: FallbackReply, Fallback: true}, nil
	}

	return &Reply{Text: text}, nil
}

// Record counts an outcome observed outside Reply, such as an undecodable body.
func (s *ChatService) Record(ctx context.Context, outcome string) {
	s.stats.Record(ctx, outcome)
}

func (s *ChatService) Stats(ctx context.Context) (map[string]int64, error) {
	return s.stats.Snapshot(ctx)
}
