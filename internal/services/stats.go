package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"

	"gemini-chat/internal/models"
)

// StatsRecorder counts relay outcomes.
type StatsRecorder interface {
	Record(ctx context.Context, outcome string)
	Snapshot(ctx context.Context) (map[string]int64, error)
}

// MemoryStats keeps counters for the lifetime of the process.
type MemoryStats struct {
	mu     sync.Mutex
	counts map[string]int64
}

func NewMemoryStats() *MemoryStats {
	return &MemoryStats{counts: make(map[string]int64)}
}

func (s *MemoryStats) Record(ctx context.Context, outcome string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[outcome]++
}

func (s *MemoryStats) Snapshot(ctx context.Context) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int64, len(models.Outcomes))
	for _, o := range models.Outcomes {
		out[o] = s.counts[o]
	}
	return out, nil
}

// RedisStats shares counters between relay instances.
type RedisStats struct {
	client *redis.Client
	prefix string
}

func NewRedisStats(client *redis.Client) *RedisStats {
	return &RedisStats{client: client, prefix: "relay_stats:"}
}

func (s *RedisStats) Record(ctx context.Context, outcome string) {
	if err := s.client.Incr(ctx, s.prefix+outcome).Err(); err != nil {
		slog.Warn("failed to record relay outcome", "outcome", outcome, "error", err)
	}
}

func (s *RedisStats) Snapshot(ctx context.Context) (map[string]int64, error) {
	keys := make([]string, len(models.Outcomes))
	for i, o := range models.Outcomes {
		keys[i] = s.prefix + o
	}

	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("read relay stats: %w", err)
	}

	out := make(map[string]int64, len(models.Outcomes))
	for i, o := range models.Outcomes {
		out[o] = 0
		str, ok := vals[i].(string)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			continue
		}
		out[o] = n
	}
	return out, nil
}
