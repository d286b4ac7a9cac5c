package ports

import (
	"context"
	"time"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
)

type StatsRepository interface {
	// Snapshot reads orders dated on or after since, plus the unwindowed
	// customer and product counts, in one consistent read.
	Snapshot(ctx context.Context, since time.Time) (*domain.StatsSnapshot, error)
}

// StatsCache is an optional read-through cache for computed stats.
type StatsCache interface {
	Get(ctx context.Context, days int) (*domain.Stats, bool, error)
	Set(ctx context.Context, days int, s *domain.Stats) error
	Invalidate(ctx context.Context) error
}

type StatsService interface {
	Compute(ctx context.Context, days int) (*domain.Stats, error)
	// Invalidate drops cached results after a write that changes them.
	Invalidate(ctx context.Context)
}

// StatsInvalidator is implemented by StatsService. Writers that change
// counted data call it after committing.
type StatsInvalidator interface {
	Invalidate(ctx context.Context)
}
