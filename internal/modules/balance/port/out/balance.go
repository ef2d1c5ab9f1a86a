package out

import (
	"context"

	"lifebalance/internal/modules/balance/domain"
)

// MetricStore is the source of truth for ratings.
type MetricStore interface {
	Save(ctx context.Context, metric domain.DomainMetric) (string, error)
	List(ctx context.Context) ([]domain.DomainMetric, error)
}

// ScoreProjector mirrors ratings and computed scores into a queryable index.
type ScoreProjector interface {
	Reset(ctx context.Context) error
	UpsertMetric(ctx context.Context, metric domain.DomainMetric) error
	RecordScore(ctx context.Context, snapshot domain.ScoreSnapshot) error
	ScoreHistory(ctx context.Context, limit int) ([]domain.ScoreSnapshot, error)
}
