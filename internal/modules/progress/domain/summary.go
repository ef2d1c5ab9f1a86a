package domain

import "time"

type MetricProgress struct {
	Name    string
	Current float64
	Target  float64
}

type ActionProgress struct {
	Description string
	Completion  float64
	Deadline    time.Time
	Priority    Priority
	Metrics     []MetricProgress
}

// DomainProgress summarises the actions of one area. The zero value is the
// summary of an area the tracker has never seen.
type DomainProgress struct {
	TotalActions     int
	CompletedActions int
	CompletionRate   float64
	Actions          []ActionProgress
}

func summarize(actions []ActionItem) DomainProgress {
	out := DomainProgress{TotalActions: len(actions), Actions: make([]ActionProgress, 0, len(actions))}
	for _, action := range actions {
		if action.Completed() {
			out.CompletedActions++
		}
		metrics := make([]MetricProgress, len(action.MetricNames))
		for i, name := range action.MetricNames {
			metrics[i] = MetricProgress{Name: name, Current: action.CurrentValues[i], Target: action.TargetValues[i]}
		}
		out.Actions = append(out.Actions, ActionProgress{
			Description: action.Description,
			Completion:  action.CompletionStatus,
			Deadline:    action.Deadline,
			Priority:    action.Priority,
			Metrics:     metrics,
		})
	}
	if out.TotalActions > 0 {
		out.CompletionRate = float64(out.CompletedActions) / float64(out.TotalActions)
	}
	return out
}
