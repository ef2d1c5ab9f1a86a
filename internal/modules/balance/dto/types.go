package dto

import "time"

type RateInput struct {
	Area         string
	Satisfaction float64
	Risk         float64
	Notes        string
}

type MetricOutput struct {
	Area         string    `json:"area"`
	Title        string    `json:"title"`
	Satisfaction float64   `json:"satisfaction"`
	Risk         float64   `json:"risk"`
	Notes        string    `json:"notes,omitempty"`
	LastUpdated  time.Time `json:"last_updated"`
}

type ScoreOutput struct {
	Value        float64   `json:"value"`
	Defined      bool      `json:"defined"`
	AreaCount    int       `json:"area_count"`
	RiskFreeRate float64   `json:"risk_free_rate"`
	ComputedAt   time.Time `json:"computed_at"`
}

type RateOutput struct {
	Metric   MetricOutput `json:"metric"`
	Score    ScoreOutput  `json:"score"`
	NotePath string       `json:"note_path"`
}

type ScoreReportOutput struct {
	Score   ScoreOutput    `json:"score"`
	Metrics []MetricOutput `json:"metrics"`
}

type ReindexInput struct{}
