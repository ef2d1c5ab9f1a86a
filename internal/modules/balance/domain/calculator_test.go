package domain_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"lifebalance/internal/modules/balance/domain"
	"lifebalance/internal/platform/area"
	"lifebalance/internal/platform/clock"
	apperrors "lifebalance/internal/platform/errors"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newCalculator() *domain.Calculator {
	return domain.NewCalculator(clock.Fixed{At: fixedNow}, domain.DefaultRiskFreeRate)
}

func TestEmptyCalculatorScoresZero(t *testing.T) {
	t.Parallel()
	score, err := newCalculator().CalculateScore()
	if err != nil {
		t.Fatalf("empty score: %v", err)
	}
	if score != 0.0 {
		t.Fatalf("expected 0.0, got %v", score)
	}
}

func TestScoreScenario(t *testing.T) {
	t.Parallel()
	calc := newCalculator()
	if _, err := calc.UpdateDomain(area.Career, 8, 6, ""); err != nil {
		t.Fatalf("update career: %v", err)
	}
	if _, err := calc.UpdateDomain(area.Health, 4, 2, ""); err != nil {
		t.Fatalf("update health: %v", err)
	}
	score, err := calc.CalculateScore()
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if score != 0.25 {
		t.Fatalf("expected 0.25, got %v", score)
	}
	again, _ := calc.CalculateScore()
	if again != score {
		t.Fatalf("score should be idempotent: %v vs %v", score, again)
	}
}

func TestScoreMatchesFormulaAcrossGrid(t *testing.T) {
	t.Parallel()
	values := []float64{0, 0.5, 3, 7.25, 10}
	for _, s1 := range values {
		for _, r1 := range values[1:] {
			calc := newCalculator()
			_, _ = calc.UpdateDomain(area.Family, s1, r1, "")
			_, _ = calc.UpdateDomain(area.Social, 10-s1, r1/2, "")
			want := ((s1+(10-s1))/2 - domain.DefaultRiskFreeRate) / ((r1 + r1/2) / 2)
			got, err := calc.CalculateScore()
			if err != nil {
				t.Fatalf("score(%v,%v): %v", s1, r1, err)
			}
			if math.Abs(got-want) > 1e-12 {
				t.Fatalf("score(%v,%v): expected %v, got %v", s1, r1, want, got)
			}
		}
	}
}

func TestZeroMeanRiskIsUndefined(t *testing.T) {
	t.Parallel()
	calc := newCalculator()
	_, _ = calc.UpdateDomain(area.Hobbies, 9, 0, "")
	score, err := calc.CalculateScore()
	if score != 0 {
		t.Fatalf("expected masked 0.0, got %v", score)
	}
	if !errors.Is(err, apperrors.ErrUndefinedScore) || !errors.Is(err, apperrors.ErrUndefinedRatio) {
		t.Fatalf("expected undefined score error, got %v", err)
	}
}

func TestUpdateDomainValidationIsAtomic(t *testing.T) {
	t.Parallel()
	calc := newCalculator()
	if _, err := calc.UpdateDomain(area.Career, 5, 5, "baseline"); err != nil {
		t.Fatalf("baseline: %v", err)
	}
	cases := []struct{ sat, risk float64 }{{11, 5}, {5, -1}, {-0.1, 5}, {5, 10.01}, {math.NaN(), 5}}
	for _, tc := range cases {
		if _, err := calc.UpdateDomain(area.Career, tc.sat, tc.risk, "bad"); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("(%v,%v) should fail validation, got %v", tc.sat, tc.risk, err)
		}
	}
	if _, err := calc.UpdateDomain(area.Health, 11, 1, ""); err == nil {
		t.Fatalf("expected failure for new area")
	}
	m, ok := calc.Metric(area.Career)
	if !ok || m.Satisfaction != 5 || m.Risk != 5 || m.Notes != "baseline" {
		t.Fatalf("failed updates must not mutate state: %+v", m)
	}
	if _, ok := calc.Metric(area.Health); ok {
		t.Fatalf("failed update must not create a metric")
	}
}

func TestUpdateDomainRoundTripAndReplace(t *testing.T) {
	t.Parallel()
	calc := newCalculator()
	if _, err := calc.UpdateDomain(area.Finances, 0, 10, "first"); err != nil {
		t.Fatalf("bounds are inclusive: %v", err)
	}
	if _, err := calc.UpdateDomain(area.Finances, 6.5, 3.25, "saving more"); err != nil {
		t.Fatalf("update: %v", err)
	}
	m, ok := calc.Metric(area.Finances)
	if !ok {
		t.Fatalf("metric missing")
	}
	if m.Satisfaction != 6.5 || m.Risk != 3.25 || m.Notes != "saving more" {
		t.Fatalf("unexpected metric: %+v", m)
	}
	if !m.LastUpdated.Equal(fixedNow) {
		t.Fatalf("expected timestamp from clock, got %v", m.LastUpdated)
	}
	if len(calc.Metrics()) != 1 {
		t.Fatalf("metric should be replaced, not duplicated")
	}
}

func TestRestoreKeepsTimestampsAndOrder(t *testing.T) {
	t.Parallel()
	calc := newCalculator()
	earlier := fixedNow.Add(-48 * time.Hour)
	err := calc.Restore([]domain.DomainMetric{
		{Area: area.Spirituality, Satisfaction: 7, Risk: 2, LastUpdated: earlier},
		{Area: area.Career, Satisfaction: 3, Risk: 8, LastUpdated: earlier},
	})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	metrics := calc.Metrics()
	if len(metrics) != 2 || metrics[0].Area != area.Career || metrics[1].Area != area.Spirituality {
		t.Fatalf("expected canonical order, got %+v", metrics)
	}
	if !metrics[0].LastUpdated.Equal(earlier) {
		t.Fatalf("restore must keep timestamps")
	}
	if err := calc.Restore([]domain.DomainMetric{{Area: area.Career, Satisfaction: 12}}); err == nil {
		t.Fatalf("restore should validate metrics")
	}
}
