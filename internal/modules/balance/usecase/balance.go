package usecase

import (
	"context"

	"lifebalance/internal/modules/balance/domain"
	"lifebalance/internal/modules/balance/dto"
	balancein "lifebalance/internal/modules/balance/port/in"
	"lifebalance/internal/modules/balance/service"
	"lifebalance/internal/platform/area"
	"lifebalance/internal/platform/logbook"
)

type Interactor struct {
	svc *service.BalanceService
	log *logbook.Logbook
}

func NewInteractor(svc *service.BalanceService, log *logbook.Logbook) balancein.Usecase {
	return &Interactor{svc: svc, log: log}
}

func (i *Interactor) Rate(ctx context.Context, input dto.RateInput) (dto.RateOutput, error) {
	a, err := area.Parse(input.Area)
	if err != nil {
		return dto.RateOutput{}, err
	}
	metric, snapshot, path, err := i.svc.Rate(ctx, a, input.Satisfaction, input.Risk, input.Notes)
	if err != nil {
		i.log.Warn("rate %s rejected: %v", a, err)
		return dto.RateOutput{}, err
	}
	i.log.Info("rated %s satisfaction=%.2f risk=%.2f score=%.4f defined=%t", a, metric.Satisfaction, metric.Risk, snapshot.Value, snapshot.Defined)
	return dto.RateOutput{Metric: toMetricOutput(metric), Score: toScoreOutput(snapshot), NotePath: path}, nil
}

func (i *Interactor) Score(ctx context.Context) (dto.ScoreReportOutput, error) {
	snapshot, metrics, err := i.svc.Score(ctx)
	if err != nil {
		return dto.ScoreReportOutput{}, err
	}
	out := dto.ScoreReportOutput{Score: toScoreOutput(snapshot), Metrics: make([]dto.MetricOutput, 0, len(metrics))}
	for _, m := range metrics {
		out.Metrics = append(out.Metrics, toMetricOutput(m))
	}
	return out, nil
}

func (i *Interactor) ScoreHistory(ctx context.Context, limit int) ([]dto.ScoreOutput, error) {
	snapshots, err := i.svc.ScoreHistory(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ScoreOutput, 0, len(snapshots))
	for _, s := range snapshots {
		out = append(out, toScoreOutput(s))
	}
	return out, nil
}

func (i *Interactor) ListMetrics(ctx context.Context) ([]dto.MetricOutput, error) {
	metrics, err := i.svc.Metrics(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MetricOutput, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, toMetricOutput(m))
	}
	return out, nil
}

func (i *Interactor) GetMetric(ctx context.Context, raw string) (dto.MetricOutput, error) {
	a, err := area.Parse(raw)
	if err != nil {
		return dto.MetricOutput{}, err
	}
	metric, err := i.svc.Metric(ctx, a)
	if err != nil {
		return dto.MetricOutput{}, err
	}
	return toMetricOutput(metric), nil
}

func (i *Interactor) Reindex(ctx context.Context, _ dto.ReindexInput) error {
	if err := i.svc.Reindex(ctx); err != nil {
		i.log.Error("reindex ratings: %v", err)
		return err
	}
	i.log.Info("reindexed ratings")
	return nil
}

func toMetricOutput(m domain.DomainMetric) dto.MetricOutput {
	return dto.MetricOutput{
		Area:         string(m.Area),
		Title:        m.Area.Title(),
		Satisfaction: m.Satisfaction,
		Risk:         m.Risk,
		Notes:        m.Notes,
		LastUpdated:  m.LastUpdated,
	}
}

func toScoreOutput(s domain.ScoreSnapshot) dto.ScoreOutput {
	return dto.ScoreOutput{
		Value:        s.Value,
		Defined:      s.Defined,
		AreaCount:    s.AreaCount,
		RiskFreeRate: s.RiskFreeRate,
		ComputedAt:   s.ComputedAt,
	}
}
