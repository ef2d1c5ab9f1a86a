package in

import (
	"context"

	"lifebalance/internal/modules/balance/dto"
)

type Usecase interface {
	Rate(ctx context.Context, input dto.RateInput) (dto.RateOutput, error)
	Score(ctx context.Context) (dto.ScoreReportOutput, error)
	ScoreHistory(ctx context.Context, limit int) ([]dto.ScoreOutput, error)
	ListMetrics(ctx context.Context) ([]dto.MetricOutput, error)
	GetMetric(ctx context.Context, area string) (dto.MetricOutput, error)
	Reindex(ctx context.Context, input dto.ReindexInput) error
}
