package db

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-pg/pg/v10"
)

// DefaultSlowQuery is the duration above which queries are logged at warn level.
const DefaultSlowQuery = 200 * time.Millisecond

// QueryHook logs executed statements. Every query goes to debug; slow and failed ones are
// raised to warn and error.
type QueryHook struct {
	logger *slog.Logger
	slow   time.Duration
}

func NewQueryHook(logger *slog.Logger, slow time.Duration) *QueryHook {
	if slow <= 0 {
		slow = DefaultSlowQuery
	}

	return &QueryHook{
		logger: logger,
		slow:   slow,
	}
}

func (h *QueryHook) BeforeQuery(ctx context.Context, _ *pg.QueryEvent) (context.Context, error) {
	return ctx, nil
}

func (h *QueryHook) AfterQuery(ctx context.Context, event *pg.QueryEvent) error {
	query, err := event.FormattedQuery()
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to format query", "error", err)
		return nil
	}

	elapsed := time.Since(event.StartTime)
	level := slog.LevelDebug
	switch {
	case event.Err != nil && event.Err != pg.ErrNoRows:
		level = slog.LevelError
	case elapsed >= h.slow:
		level = slog.LevelWarn
	}

	h.logger.Log(ctx, level, "SQL query executed",
		"query", string(query),
		"duration", elapsed,
		"error", event.Err,
	)

	return nil
}
