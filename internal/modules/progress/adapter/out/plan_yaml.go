package out

import (
	"fmt"
	"strings"
	"time"

	"lifebalance/internal/modules/progress/domain"
	apperrors "lifebalance/internal/platform/errors"
)

type planRecord struct {
	SchemaVersion int               `yaml:"schema_version,omitempty"`
	Area          string            `yaml:"area,omitempty"`
	Actions       []actionRecord    `yaml:"actions,omitempty"`
	Milestones    []milestoneRecord `yaml:"milestones,omitempty"`
	History       []eventRecord     `yaml:"history,omitempty"`
}

type actionRecord struct {
	Description string         `yaml:"description"`
	Deadline    string         `yaml:"deadline,omitempty"`
	Priority    int            `yaml:"priority,omitempty"`
	Metrics     []metricRecord `yaml:"metrics"`
	Completion  float64        `yaml:"completion,omitempty"`
	Notes       string         `yaml:"notes,omitempty"`
}

type metricRecord struct {
	Name    string  `yaml:"name"`
	Target  float64 `yaml:"target"`
	Current float64 `yaml:"current"`
}

type milestoneRecord struct {
	Description     string             `yaml:"description"`
	TargetDate      string             `yaml:"target_date,omitempty"`
	SuccessCriteria []string           `yaml:"success_criteria,omitempty"`
	Metrics         map[string]float64 `yaml:"metrics,omitempty"`
	Achieved        bool               `yaml:"achieved,omitempty"`
}

type eventRecord struct {
	Timestamp string  `yaml:"timestamp"`
	Metric    string  `yaml:"metric"`
	Value     float64 `yaml:"value"`
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if t.Equal(t.Truncate(24 * time.Hour)) {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339)
}

// parseDate accepts a bare date or an RFC3339 timestamp. Empty means unset.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD or RFC3339", apperrors.ErrInvalidInput, raw)
	}
	return t, nil
}

func toPlanRecord(plan domain.AreaPlan) planRecord {
	record := planRecord{}
	for _, action := range plan.Actions {
		ar := actionRecord{
			Description: action.Description,
			Deadline:    formatDate(action.Deadline),
			Priority:    int(action.Priority),
			Metrics:     make([]metricRecord, len(action.MetricNames)),
			Completion:  action.CompletionStatus,
			Notes:       action.Notes,
		}
		for i, name := range action.MetricNames {
			ar.Metrics[i] = metricRecord{Name: name, Target: action.TargetValues[i], Current: action.CurrentValues[i]}
		}
		record.Actions = append(record.Actions, ar)
	}
	for _, m := range plan.Milestones {
		record.Milestones = append(record.Milestones, milestoneRecord{
			Description:     m.Description,
			TargetDate:      formatDate(m.TargetDate),
			SuccessCriteria: m.SuccessCriteria,
			Metrics:         m.Metrics,
			Achieved:        m.Achieved,
		})
	}
	for _, e := range plan.History {
		record.History = append(record.History, eventRecord{
			Timestamp: e.Timestamp.UTC().Format(time.RFC3339Nano),
			Metric:    e.MetricName,
			Value:     e.NewValue,
		})
	}
	return record
}

func fromPlanRecord(record planRecord) (domain.AreaPlan, error) {
	plan := domain.AreaPlan{}
	for i, ar := range record.Actions {
		deadline, err := parseDate(ar.Deadline)
		if err != nil {
			return domain.AreaPlan{}, fmt.Errorf("action %d: %w", i, err)
		}
		action := domain.ActionItem{
			Description:      ar.Description,
			Deadline:         deadline,
			Priority:         domain.Priority(ar.Priority),
			MetricNames:      make([]string, len(ar.Metrics)),
			TargetValues:     make([]float64, len(ar.Metrics)),
			CurrentValues:    make([]float64, len(ar.Metrics)),
			CompletionStatus: ar.Completion,
			Notes:            ar.Notes,
		}
		for j, m := range ar.Metrics {
			action.MetricNames[j] = m.Name
			action.TargetValues[j] = m.Target
			action.CurrentValues[j] = m.Current
		}
		plan.Actions = append(plan.Actions, action)
	}
	for i, mr := range record.Milestones {
		target, err := parseDate(mr.TargetDate)
		if err != nil {
			return domain.AreaPlan{}, fmt.Errorf("milestone %d: %w", i, err)
		}
		plan.Milestones = append(plan.Milestones, domain.Milestone{
			Description:     mr.Description,
			TargetDate:      target,
			SuccessCriteria: mr.SuccessCriteria,
			Metrics:         mr.Metrics,
			Achieved:        mr.Achieved,
		})
	}
	for i, er := range record.History {
		ts, err := time.Parse(time.RFC3339Nano, er.Timestamp)
		if err != nil {
			return domain.AreaPlan{}, fmt.Errorf("%w: history entry %d: bad timestamp %q", apperrors.ErrInvalidInput, i, er.Timestamp)
		}
		plan.History = append(plan.History, domain.ProgressEvent{Timestamp: ts, MetricName: er.Metric, NewValue: er.Value})
	}
	return plan, nil
}
