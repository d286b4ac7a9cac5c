package service

import (
	"context"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
	"github.com/aether-dashboard/aether-api/internal/core/ports"
	"github.com/aether-dashboard/aether-api/internal/pkg/metrics"
)

const maxStatsDays = 3650

var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

var hundred = decimal.NewFromInt(100)

// StatsService computes dashboard aggregates, optionally through a cache.
type StatsService struct {
	repo   ports.StatsRepository
	cache  ports.StatsCache
	logger zerolog.Logger
	now    func() time.Time
}

// NewStatsService returns a StatsService. cache may be nil.
func NewStatsService(repo ports.StatsRepository, cache ports.StatsCache, logger zerolog.Logger) *StatsService {
	return &StatsService{repo: repo, cache: cache, logger: logger, now: time.Now}
}

func (s *StatsService) Compute(ctx context.Context, days int) (*domain.Stats, error) {
	if days < 1 || days > maxStatsDays {
		return nil, domain.Validation("days must be a positive integer no greater than 3650")
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, days)
		switch {
		case err != nil:
			metrics.StatsCacheTotal.WithLabelValues("error").Inc()
			s.logger.Warn().Err(err).Int("days", days).Msg("stats cache read failed")
		case ok:
			metrics.StatsCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.StatsCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	start := time.Now()
	today := truncateDay(s.now())
	snap, err := s.repo.Snapshot(ctx, today.AddDate(0, 0, -2*days))
	if err != nil {
		return nil, err
	}
	stats := Aggregate(snap, days, today)
	metrics.StatsComputeDuration.Observe(time.Since(start).Seconds())

	if s.cache != nil {
		if err := s.cache.Set(ctx, days, stats); err != nil {
			s.logger.Warn().Err(err).Int("days", days).Msg("stats cache write failed")
		}
	}

	return stats, nil
}

// Invalidate drops every cached result. Failures only cost freshness until
// the entries expire.
func (s *StatsService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(context.WithoutCancel(ctx)); err != nil {
		s.logger.Warn().Err(err).Msg("stats cache invalidation failed")
	}
}

// Aggregate splits orders into the current window [today-days, ...) and the
// previous window [today-2*days, today-days) and folds them into Stats.
// Customer and product counts are taken as-is from the snapshot.
func Aggregate(snap *domain.StatsSnapshot, days int, today time.Time) *domain.Stats {
	today = truncateDay(today)
	cutoff := today.AddDate(0, 0, -days)
	prevCutoff := today.AddDate(0, 0, -2*days)

	var current, previous decimal.Decimal
	var orders domain.OrderStats

	for _, o := range snap.Orders {
		d := truncateDay(o.Date)
		switch {
		case !d.Before(cutoff):
			current = current.Add(ParseAmount(o.Amount))
			orders.Total++
			if o.Status.Active() {
				orders.Active++
			}
			if o.Status == domain.OrderCompleted {
				orders.Completed++
			}
		case !d.Before(prevCutoff):
			previous = previous.Add(ParseAmount(o.Amount))
		}
	}

	return &domain.Stats{
		Revenue: domain.RevenueStats{
			Current:  current.Round(2).InexactFloat64(),
			Previous: previous.Round(2).InexactFloat64(),
			Trend:    Trend(current, previous).InexactFloat64(),
		},
		Orders: orders,
		Customers: domain.CustomerStats{
			Total:  snap.CustomersTotal,
			Active: snap.CustomersActive,
		},
		Products: domain.ProductStats{
			Total:   snap.ProductsTotal,
			InStock: snap.ProductsInStock,
		},
		Period: domain.StatsPeriod{
			Days: days,
			From: cutoff.Format(domain.DateLayout),
			To:   today.Format(domain.DateLayout),
		},
	}
}

// Trend is the percentage change from previous to current, rounded to one
// decimal. With no previous revenue it is 0, or ±100 when current moved.
func Trend(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		switch current.Sign() {
		case 0:
			return decimal.Zero
		case 1:
			return hundred
		default:
			return hundred.Neg()
		}
	}
	return current.Sub(previous).Div(previous.Abs()).Mul(hundred).Round(1)
}

// ParseAmount reads a money string such as "$1,250.00". Anything that does
// not parse counts as zero.
func ParseAmount(raw string) decimal.Decimal {
	cleaned := nonNumeric.ReplaceAllString(raw, "")
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
