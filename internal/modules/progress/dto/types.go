package dto

import "time"

type MetricInput struct {
	Name    string
	Target  float64
	Current float64
}

type AddActionInput struct {
	Area        string
	Description string
	Deadline    time.Time
	Priority    int
	Metrics     []MetricInput
	Notes       string
}

type AddMilestoneInput struct {
	Area            string
	Description     string
	TargetDate      time.Time
	SuccessCriteria []string
	Metrics         map[string]float64
}

type UpdateProgressInput struct {
	Area        string
	ActionIndex int
	MetricIndex int
	Value       float64
}

type SetMilestoneInput struct {
	Area     string
	Index    int
	Achieved bool
}

type MetricOutput struct {
	Name    string  `json:"name"`
	Current float64 `json:"current"`
	Target  float64 `json:"target"`
}

type ActionOutput struct {
	Index       int            `json:"index"`
	Description string         `json:"description"`
	Completion  float64        `json:"completion"`
	Completed   bool           `json:"completed"`
	Deadline    time.Time      `json:"deadline"`
	Priority    int            `json:"priority"`
	Metrics     []MetricOutput `json:"metrics"`
}

type MilestoneOutput struct {
	Index           int                `json:"index"`
	Description     string             `json:"description"`
	TargetDate      time.Time          `json:"target_date"`
	SuccessCriteria []string           `json:"success_criteria,omitempty"`
	Metrics         map[string]float64 `json:"metrics,omitempty"`
	Achieved        bool               `json:"achieved"`
}

type DomainProgressOutput struct {
	Area             string            `json:"area"`
	Title            string            `json:"title"`
	TotalActions     int               `json:"total_actions"`
	CompletedActions int               `json:"completed_actions"`
	CompletionRate   float64           `json:"completion_rate"`
	Actions          []ActionOutput    `json:"actions"`
	Milestones       []MilestoneOutput `json:"milestones"`
}

type AddActionOutput struct {
	Action   ActionOutput `json:"action"`
	PlanPath string       `json:"plan_path"`
}

type AddMilestoneOutput struct {
	Milestone MilestoneOutput `json:"milestone"`
	PlanPath  string          `json:"plan_path"`
}

// UpdateProgressOutput carries the action even when the completion could not
// be recomputed; Warning then explains why.
type UpdateProgressOutput struct {
	Action  ActionOutput `json:"action"`
	Event   EventOutput  `json:"event"`
	Warning string       `json:"warning,omitempty"`
}

type EventOutput struct {
	Area       string    `json:"area"`
	Timestamp  time.Time `json:"timestamp"`
	MetricName string    `json:"metric_name"`
	NewValue   float64   `json:"new_value"`
}

type ImportPlanInput struct {
	Path string
}

type ImportPlanOutput struct {
	Areas      []string `json:"areas"`
	Actions    int      `json:"actions"`
	Milestones int      `json:"milestones"`
}

type ReindexInput struct{}
