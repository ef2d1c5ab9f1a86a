package service

import (
	"context"
	"errors"
	"fmt"

	"lifebalance/internal/modules/balance/domain"
	balanceout "lifebalance/internal/modules/balance/port/out"
	"lifebalance/internal/platform/area"
	"lifebalance/internal/platform/clock"
	apperrors "lifebalance/internal/platform/errors"
	"lifebalance/internal/platform/id"
	"lifebalance/internal/platform/logbook"
)

type BalanceService struct {
	clock        clock.Clock
	idGen        id.Generator
	riskFreeRate float64
	store        balanceout.MetricStore
	projector    balanceout.ScoreProjector
	log          *logbook.Logbook
}

func NewBalanceService(
	clock clock.Clock,
	idGen id.Generator,
	riskFreeRate float64,
	store balanceout.MetricStore,
	projector balanceout.ScoreProjector,
	log *logbook.Logbook,
) *BalanceService {
	return &BalanceService{
		clock:        clock,
		idGen:        idGen,
		riskFreeRate: riskFreeRate,
		store:        store,
		projector:    projector,
		log:          log,
	}
}

// load builds a fresh calculator from the stored ratings.
func (s *BalanceService) load(ctx context.Context) (*domain.Calculator, error) {
	metrics, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	calc := domain.NewCalculator(s.clock, s.riskFreeRate)
	if err := calc.Restore(metrics); err != nil {
		return nil, fmt.Errorf("restore ratings: %w", err)
	}
	return calc, nil
}

func (s *BalanceService) Rate(ctx context.Context, a area.Area, satisfaction, risk float64, notes string) (domain.DomainMetric, domain.ScoreSnapshot, string, error) {
	if err := a.Validate(); err != nil {
		return domain.DomainMetric{}, domain.ScoreSnapshot{}, "", err
	}
	calc, err := s.load(ctx)
	if err != nil {
		return domain.DomainMetric{}, domain.ScoreSnapshot{}, "", err
	}
	metric, err := calc.UpdateDomain(a, satisfaction, risk, notes)
	if err != nil {
		return domain.DomainMetric{}, domain.ScoreSnapshot{}, "", err
	}
	path, err := s.store.Save(ctx, metric)
	if err != nil {
		return domain.DomainMetric{}, domain.ScoreSnapshot{}, "", err
	}
	if err := s.projector.UpsertMetric(ctx, metric); err != nil {
		return domain.DomainMetric{}, domain.ScoreSnapshot{}, "", err
	}
	snapshot, err := s.snapshot(ctx, calc)
	if err != nil {
		return domain.DomainMetric{}, domain.ScoreSnapshot{}, "", err
	}
	return metric, snapshot, path, nil
}

func (s *BalanceService) Score(ctx context.Context) (domain.ScoreSnapshot, []domain.DomainMetric, error) {
	calc, err := s.load(ctx)
	if err != nil {
		return domain.ScoreSnapshot{}, nil, err
	}
	snapshot, err := s.snapshot(ctx, calc)
	if err != nil {
		return domain.ScoreSnapshot{}, nil, err
	}
	return snapshot, calc.Metrics(), nil
}

func (s *BalanceService) ScoreHistory(ctx context.Context, limit int) ([]domain.ScoreSnapshot, error) {
	return s.projector.ScoreHistory(ctx, limit)
}

func (s *BalanceService) Metrics(ctx context.Context) ([]domain.DomainMetric, error) {
	calc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return calc.Metrics(), nil
}

func (s *BalanceService) Metric(ctx context.Context, a area.Area) (domain.DomainMetric, error) {
	calc, err := s.load(ctx)
	if err != nil {
		return domain.DomainMetric{}, err
	}
	metric, ok := calc.Metric(a)
	if !ok {
		return domain.DomainMetric{}, fmt.Errorf("%w: no rating for %s", apperrors.ErrNotFound, a)
	}
	return metric, nil
}

func (s *BalanceService) Reindex(ctx context.Context) error {
	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	calc, err := s.load(ctx)
	if err != nil {
		return err
	}
	for _, metric := range calc.Metrics() {
		if err := s.projector.UpsertMetric(ctx, metric); err != nil {
			return err
		}
	}
	_, err = s.snapshot(ctx, calc)
	return err
}

// snapshot computes the score and records it. An undefined score is not an
// error here; it is reported through ScoreSnapshot.Defined.
func (s *BalanceService) snapshot(ctx context.Context, calc *domain.Calculator) (domain.ScoreSnapshot, error) {
	value, err := calc.CalculateScore()
	defined := true
	if err != nil {
		if !errors.Is(err, apperrors.ErrUndefinedScore) {
			return domain.ScoreSnapshot{}, err
		}
		defined = false
	}
	snapshot := domain.ScoreSnapshot{
		ID:           s.idGen.New(),
		Value:        value,
		Defined:      defined,
		AreaCount:    len(calc.Metrics()),
		RiskFreeRate: calc.RiskFreeRate(),
		ComputedAt:   s.clock.Now(),
	}
	if snapshot.AreaCount == 0 {
		return snapshot, nil
	}
	if err := s.projector.RecordScore(ctx, snapshot); err != nil {
		s.log.Warn("record score snapshot: %v", err)
	}
	return snapshot, nil
}
