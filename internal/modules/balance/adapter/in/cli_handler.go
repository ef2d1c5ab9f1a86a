package in

import (
	"context"

	"lifebalance/internal/modules/balance/dto"
	balancein "lifebalance/internal/modules/balance/port/in"
)

type CLIHandler struct {
	usecase balancein.Usecase
}

func NewCLIHandler(usecase balancein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Rate(ctx context.Context, area string, satisfaction, risk float64, notes string) (dto.RateOutput, error) {
	return h.usecase.Rate(ctx, dto.RateInput{Area: area, Satisfaction: satisfaction, Risk: risk, Notes: notes})
}

func (h CLIHandler) Score(ctx context.Context) (dto.ScoreReportOutput, error) {
	return h.usecase.Score(ctx)
}

func (h CLIHandler) ScoreHistory(ctx context.Context, limit int) ([]dto.ScoreOutput, error) {
	return h.usecase.ScoreHistory(ctx, limit)
}

func (h CLIHandler) ListMetrics(ctx context.Context) ([]dto.MetricOutput, error) {
	return h.usecase.ListMetrics(ctx)
}

func (h CLIHandler) GetMetric(ctx context.Context, area string) (dto.MetricOutput, error) {
	return h.usecase.GetMetric(ctx, area)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx, dto.ReindexInput{})
}
