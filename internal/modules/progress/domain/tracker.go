package domain

import (
	"errors"
	"fmt"
	"sync"

	"lifebalance/internal/platform/area"
	"lifebalance/internal/platform/clock"
	apperrors "lifebalance/internal/platform/errors"
)

// Tracker holds action items, milestones and progress history per area.
// Collections only grow; progress updates overwrite a single current value.
type Tracker struct {
	mu    sync.Mutex
	clock clock.Clock
	plans map[area.Area]*AreaPlan
}

func NewTracker(clk clock.Clock) *Tracker {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Tracker{clock: clk, plans: map[area.Area]*AreaPlan{}}
}

func (t *Tracker) plan(a area.Area) *AreaPlan {
	p, ok := t.plans[a]
	if !ok {
		p = &AreaPlan{}
		t.plans[a] = p
	}
	return p
}

// AddAction appends item to the area and returns its index. The completion
// status is derived from the item's values; a zero target leaves it at 0.
func (t *Tracker) AddAction(a area.Area, item ActionItem) (int, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := item.Validate(); err != nil {
		return 0, err
	}
	item = item.clone()
	item.CompletionStatus = 0
	if completion, err := item.Completion(); err == nil {
		item.CompletionStatus = completion
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	p := t.plan(a)
	p.Actions = append(p.Actions, item)
	return len(p.Actions) - 1, nil
}

func (t *Tracker) AddMilestone(a area.Area, milestone Milestone) (int, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	p := t.plan(a)
	p.Milestones = append(p.Milestones, milestone.clone())
	return len(p.Milestones) - 1, nil
}

// SetMilestoneAchieved flips the achieved flag in either direction.
func (t *Tracker) SetMilestoneAchieved(a area.Area, index int, achieved bool) (Milestone, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.plans[a]
	if !ok {
		return Milestone{}, unknownArea(a)
	}
	if index < 0 || index >= len(p.Milestones) {
		return Milestone{}, fmt.Errorf("%w: milestone index %d out of range for %s (%d milestones)", apperrors.ErrNotFound, index, a, len(p.Milestones))
	}
	p.Milestones[index].Achieved = achieved
	return p.Milestones[index].clone(), nil
}

// UpdateProgress overwrites one current value, logs a ProgressEvent and then
// recomputes the action's completion. The event is kept even when the
// recomputation fails on a zero target; the completion keeps its old value.
func (t *Tracker) UpdateProgress(a area.Area, actionIndex, metricIndex int, newValue float64) (ActionItem, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.plans[a]
	if !ok {
		return ActionItem{}, unknownArea(a)
	}
	if actionIndex < 0 || actionIndex >= len(p.Actions) {
		return ActionItem{}, fmt.Errorf("%w: action index %d out of range for %s (%d actions)", apperrors.ErrNotFound, actionIndex, a, len(p.Actions))
	}
	action := &p.Actions[actionIndex]
	if metricIndex < 0 || metricIndex >= len(action.CurrentValues) {
		return ActionItem{}, fmt.Errorf("%w: metric index %d out of range for action %d (%d metrics)", apperrors.ErrNotFound, metricIndex, actionIndex, len(action.CurrentValues))
	}

	action.CurrentValues[metricIndex] = newValue
	p.History = append(p.History, ProgressEvent{
		Timestamp:  t.clock.Now(),
		MetricName: action.MetricNames[metricIndex],
		NewValue:   newValue,
	})

	completion, err := action.Completion()
	if err != nil {
		return action.clone(), err
	}
	action.CompletionStatus = completion
	return action.clone(), nil
}

// DomainProgress returns an empty summary for areas without a plan.
func (t *Tracker) DomainProgress(a area.Area) DomainProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.plans[a]
	if !ok {
		return DomainProgress{}
	}
	return summarize(p.Actions)
}

func (t *Tracker) Actions(a area.Area) []ActionItem {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.plans[a]
	if !ok {
		return nil
	}
	out := make([]ActionItem, len(p.Actions))
	for i, action := range p.Actions {
		out[i] = action.clone()
	}
	return out
}

func (t *Tracker) Milestones(a area.Area) []Milestone {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.plans[a]
	if !ok {
		return nil
	}
	out := make([]Milestone, len(p.Milestones))
	for i, m := range p.Milestones {
		out[i] = m.clone()
	}
	return out
}

func (t *Tracker) History(a area.Area) []ProgressEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.plans[a]
	if !ok {
		return nil
	}
	return append([]ProgressEvent(nil), p.History...)
}

// Areas lists areas that hold anything, in canonical order.
func (t *Tracker) Areas() []area.Area {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []area.Area
	for _, a := range area.All() {
		if p, ok := t.plans[a]; ok && !p.Empty() {
			out = append(out, a)
		}
	}
	return out
}

// Snapshot copies the area's plan for persistence.
func (t *Tracker) Snapshot(a area.Area) AreaPlan {
	return AreaPlan{Actions: t.Actions(a), Milestones: t.Milestones(a), History: t.History(a)}
}

// Restore replaces the area's plan with a persisted one. Stored completion
// values are trusted as-is.
func (t *Tracker) Restore(a area.Area, plan AreaPlan) error {
	if err := a.Validate(); err != nil {
		return err
	}
	var errs []error
	for _, action := range plan.Actions {
		if err := action.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	restored := &AreaPlan{
		Actions:    make([]ActionItem, len(plan.Actions)),
		Milestones: make([]Milestone, len(plan.Milestones)),
		History:    append([]ProgressEvent(nil), plan.History...),
	}
	for i, action := range plan.Actions {
		restored.Actions[i] = action.clone()
	}
	for i, m := range plan.Milestones {
		restored.Milestones[i] = m.clone()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.plans[a] = restored
	return nil
}

func unknownArea(a area.Area) error {
	return fmt.Errorf("%w: no actions or milestones tracked for %q", apperrors.ErrNotFound, string(a))
}
