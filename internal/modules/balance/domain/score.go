package domain

import "time"

// ScoreSnapshot records one computed balance score.
type ScoreSnapshot struct {
	ID           string
	Value        float64
	Defined      bool
	AreaCount    int
	RiskFreeRate float64
	ComputedAt   time.Time
}
