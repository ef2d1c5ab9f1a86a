package domain

import (
	"fmt"
	"time"

	apperrors "lifebalance/internal/platform/errors"
)

const (
	// CompletionThreshold counts an action as done; slightly below 1 to absorb float drift.
	CompletionThreshold = 0.99
	SchemaVersion       = 1
)

type Priority int

const (
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

// ActionItem is a goal with several measurable sub-metrics. MetricNames,
// TargetValues and CurrentValues are parallel slices.
type ActionItem struct {
	Description      string
	Deadline         time.Time
	Priority         Priority
	MetricNames      []string
	TargetValues     []float64
	CurrentValues    []float64
	CompletionStatus float64
	Notes            string
}

func (a ActionItem) Validate() error {
	if len(a.MetricNames) != len(a.TargetValues) || len(a.MetricNames) != len(a.CurrentValues) {
		return fmt.Errorf("%w: action %q has %d metric names, %d targets and %d current values",
			apperrors.ErrInvalidInput, a.Description, len(a.MetricNames), len(a.TargetValues), len(a.CurrentValues))
	}
	return nil
}

// Completion is the mean of current/target across all metrics. Metrics of
// different scales are averaged as-is. An action with no metrics is 0.
func (a ActionItem) Completion() (float64, error) {
	if len(a.TargetValues) == 0 {
		return 0, nil
	}
	var sum float64
	for i, target := range a.TargetValues {
		if target == 0 {
			return 0, fmt.Errorf("metric %q: %w", a.MetricNames[i], apperrors.ErrZeroTarget)
		}
		sum += a.CurrentValues[i] / target
	}
	return sum / float64(len(a.TargetValues)), nil
}

func (a ActionItem) Completed() bool {
	return a.CompletionStatus >= CompletionThreshold
}

func (a ActionItem) clone() ActionItem {
	a.MetricNames = append([]string(nil), a.MetricNames...)
	a.TargetValues = append([]float64(nil), a.TargetValues...)
	a.CurrentValues = append([]float64(nil), a.CurrentValues...)
	return a
}

// Milestone is a dated checkpoint. Achieved is only ever changed by the caller.
type Milestone struct {
	Description     string
	TargetDate      time.Time
	SuccessCriteria []string
	Metrics         map[string]float64
	Achieved        bool
}

func (m Milestone) clone() Milestone {
	m.SuccessCriteria = append([]string(nil), m.SuccessCriteria...)
	if m.Metrics != nil {
		metrics := make(map[string]float64, len(m.Metrics))
		for k, v := range m.Metrics {
			metrics[k] = v
		}
		m.Metrics = metrics
	}
	return m
}

type ProgressEvent struct {
	Timestamp  time.Time
	MetricName string
	NewValue   float64
}

// AreaPlan is everything the tracker holds for one area.
type AreaPlan struct {
	Actions    []ActionItem
	Milestones []Milestone
	History    []ProgressEvent
}

func (p AreaPlan) Empty() bool {
	return len(p.Actions) == 0 && len(p.Milestones) == 0 && len(p.History) == 0
}
