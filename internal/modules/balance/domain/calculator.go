package domain

import (
	"sync"

	"lifebalance/internal/platform/area"
	"lifebalance/internal/platform/clock"
	apperrors "lifebalance/internal/platform/errors"
)

const DefaultRiskFreeRate = 5.0

// Calculator holds at most one metric per area and derives a Sharpe-style
// balance score: (mean satisfaction - riskFreeRate) / mean risk.
type Calculator struct {
	mu           sync.Mutex
	clock        clock.Clock
	riskFreeRate float64
	metrics      map[area.Area]DomainMetric
}

func NewCalculator(clk clock.Clock, riskFreeRate float64) *Calculator {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Calculator{
		clock:        clk,
		riskFreeRate: riskFreeRate,
		metrics:      map[area.Area]DomainMetric{},
	}
}

func (c *Calculator) RiskFreeRate() float64 {
	return c.riskFreeRate
}

// UpdateDomain replaces the metric for a. Nothing changes when validation fails.
func (c *Calculator) UpdateDomain(a area.Area, satisfaction, risk float64, notes string) (DomainMetric, error) {
	metric := DomainMetric{
		Area:         a,
		Satisfaction: satisfaction,
		Risk:         risk,
		Notes:        notes,
	}
	if err := metric.Validate(); err != nil {
		return DomainMetric{}, err
	}
	metric.LastUpdated = c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics[a] = metric
	return metric, nil
}

// Restore loads previously stored metrics, keeping their timestamps.
func (c *Calculator) Restore(metrics []DomainMetric) error {
	for _, m := range metrics {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range metrics {
		c.metrics[m.Area] = m
	}
	return nil
}

func (c *Calculator) Metric(a area.Area) (DomainMetric, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.metrics[a]
	return m, ok
}

// Metrics returns the recorded metrics in canonical area order.
func (c *Calculator) Metrics() []DomainMetric {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]DomainMetric, 0, len(c.metrics))
	for _, a := range area.All() {
		if m, ok := c.metrics[a]; ok {
			out = append(out, m)
		}
	}
	return out
}

// CalculateScore is recomputed from the stored metrics on every call.
// With no metrics it returns 0. With a zero mean risk it returns 0 together
// with ErrUndefinedScore so callers can tell it apart from a real neutral score.
func (c *Calculator) CalculateScore() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.metrics) == 0 {
		return 0, nil
	}
	// Summing in canonical order keeps repeated calls bit-identical.
	var satSum, riskSum float64
	for _, a := range area.All() {
		if m, ok := c.metrics[a]; ok {
			satSum += m.Satisfaction
			riskSum += m.Risk
		}
	}
	n := float64(len(c.metrics))
	meanSat := satSum / n
	meanRisk := riskSum / n
	if meanRisk == 0 {
		return 0, apperrors.ErrUndefinedScore
	}
	return (meanSat - c.riskFreeRate) / meanRisk, nil
}
