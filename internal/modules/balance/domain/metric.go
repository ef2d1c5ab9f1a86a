package domain

import (
	"fmt"
	"math"
	"time"

	"lifebalance/internal/platform/area"
	apperrors "lifebalance/internal/platform/errors"
)

const (
	MinRating     = 0.0
	MaxRating     = 10.0
	SchemaVersion = 1

	ManagedSummaryStart = "<!-- lifebalance:rating:start -->"
	ManagedSummaryEnd   = "<!-- lifebalance:rating:end -->"
)

// DomainMetric is the latest self-assessment for one life area.
type DomainMetric struct {
	Area         area.Area
	Satisfaction float64
	Risk         float64
	Notes        string
	LastUpdated  time.Time
}

func ValidateRating(name string, value float64) error {
	if math.IsNaN(value) || value < MinRating || value > MaxRating {
		return fmt.Errorf("%w: %s must be between %.0f and %.0f, got %v", apperrors.ErrInvalidInput, name, MinRating, MaxRating, value)
	}
	return nil
}

func (m DomainMetric) Validate() error {
	if err := m.Area.Validate(); err != nil {
		return err
	}
	if err := ValidateRating("satisfaction", m.Satisfaction); err != nil {
		return err
	}
	return ValidateRating("risk", m.Risk)
}
