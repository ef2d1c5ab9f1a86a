package service

import (
	"context"
	"errors"
	"fmt"

	"lifebalance/internal/modules/progress/domain"
	progressout "lifebalance/internal/modules/progress/port/out"
	"lifebalance/internal/platform/area"
	"lifebalance/internal/platform/clock"
	apperrors "lifebalance/internal/platform/errors"
	"lifebalance/internal/platform/logbook"
)

type ProgressService struct {
	clock     clock.Clock
	store     progressout.PlanStore
	source    progressout.PlanSource
	projector progressout.HistoryProjector
	log       *logbook.Logbook
}

func NewProgressService(
	clock clock.Clock,
	store progressout.PlanStore,
	source progressout.PlanSource,
	projector progressout.HistoryProjector,
	log *logbook.Logbook,
) *ProgressService {
	return &ProgressService{
		clock:     clock,
		store:     store,
		source:    source,
		projector: projector,
		log:       log,
	}
}

// AreaOverview is one area's summary together with its milestones.
type AreaOverview struct {
	Area       area.Area
	Progress   domain.DomainProgress
	Milestones []domain.Milestone
}

func (s *ProgressService) load(ctx context.Context, a area.Area) (*domain.Tracker, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	plan, err := s.store.Load(ctx, a)
	if err != nil {
		return nil, err
	}
	tracker := domain.NewTracker(s.clock)
	if plan.Empty() {
		return tracker, nil
	}
	if err := tracker.Restore(a, plan); err != nil {
		return nil, fmt.Errorf("restore %s plan: %w", a, err)
	}
	return tracker, nil
}

func (s *ProgressService) save(ctx context.Context, a area.Area, tracker *domain.Tracker) (string, error) {
	return s.store.Save(ctx, a, tracker.Snapshot(a))
}

func (s *ProgressService) AddAction(ctx context.Context, a area.Area, item domain.ActionItem) (int, domain.ActionItem, string, error) {
	tracker, err := s.load(ctx, a)
	if err != nil {
		return 0, domain.ActionItem{}, "", err
	}
	index, err := tracker.AddAction(a, item)
	if err != nil {
		return 0, domain.ActionItem{}, "", err
	}
	path, err := s.save(ctx, a, tracker)
	if err != nil {
		return 0, domain.ActionItem{}, "", err
	}
	return index, tracker.Actions(a)[index], path, nil
}

func (s *ProgressService) AddMilestone(ctx context.Context, a area.Area, milestone domain.Milestone) (int, domain.Milestone, string, error) {
	tracker, err := s.load(ctx, a)
	if err != nil {
		return 0, domain.Milestone{}, "", err
	}
	index, err := tracker.AddMilestone(a, milestone)
	if err != nil {
		return 0, domain.Milestone{}, "", err
	}
	path, err := s.save(ctx, a, tracker)
	if err != nil {
		return 0, domain.Milestone{}, "", err
	}
	return index, tracker.Milestones(a)[index], path, nil
}

func (s *ProgressService) SetMilestoneAchieved(ctx context.Context, a area.Area, index int, achieved bool) (domain.Milestone, error) {
	tracker, err := s.load(ctx, a)
	if err != nil {
		return domain.Milestone{}, err
	}
	milestone, err := tracker.SetMilestoneAchieved(a, index, achieved)
	if err != nil {
		return domain.Milestone{}, err
	}
	if _, err := s.save(ctx, a, tracker); err != nil {
		return domain.Milestone{}, err
	}
	return milestone, nil
}

// UpdateProgress records a new value. When the completion cannot be
// recomputed the value and its history event are still persisted and the
// ratio error is returned alongside the action.
func (s *ProgressService) UpdateProgress(ctx context.Context, a area.Area, actionIndex, metricIndex int, value float64) (domain.ActionItem, domain.ProgressEvent, error) {
	tracker, err := s.load(ctx, a)
	if err != nil {
		return domain.ActionItem{}, domain.ProgressEvent{}, err
	}
	action, updateErr := tracker.UpdateProgress(a, actionIndex, metricIndex, value)
	if updateErr != nil && !errors.Is(updateErr, apperrors.ErrUndefinedRatio) {
		return domain.ActionItem{}, domain.ProgressEvent{}, updateErr
	}
	history := tracker.History(a)
	event := history[len(history)-1]

	if _, err := s.save(ctx, a, tracker); err != nil {
		return domain.ActionItem{}, domain.ProgressEvent{}, err
	}
	if err := s.projector.AppendEvent(ctx, a, event); err != nil {
		s.log.Warn("project progress event for %s: %v", a, err)
	}
	return action, event, updateErr
}

func (s *ProgressService) Overview(ctx context.Context, a area.Area) (AreaOverview, error) {
	tracker, err := s.load(ctx, a)
	if err != nil {
		return AreaOverview{}, err
	}
	return AreaOverview{Area: a, Progress: tracker.DomainProgress(a), Milestones: tracker.Milestones(a)}, nil
}

// Overviews summarises every area with a saved plan, in canonical order.
func (s *ProgressService) Overviews(ctx context.Context) ([]AreaOverview, error) {
	areas, err := s.store.Areas(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]AreaOverview, 0, len(areas))
	for _, a := range areas {
		overview, err := s.Overview(ctx, a)
		if err != nil {
			return nil, err
		}
		out = append(out, overview)
	}
	return out, nil
}

func (s *ProgressService) History(ctx context.Context, a area.Area, limit int) ([]domain.ProgressEvent, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return s.projector.Recent(ctx, a, limit)
}

// ImportResult counts what an import added.
type ImportResult struct {
	Areas      []area.Area
	Actions    int
	Milestones int
}

// ImportPlan appends every action and milestone of the file to the existing
// plans. Nothing is written unless every area validates. If a save fails, the
// areas already written are put back to the plans they had before the import.
func (s *ProgressService) ImportPlan(ctx context.Context, path string) (ImportResult, error) {
	plans, err := s.source.Read(ctx, path)
	if err != nil {
		return ImportResult{}, err
	}
	var (
		result   ImportResult
		trackers = map[area.Area]*domain.Tracker{}
		previous = map[area.Area]domain.AreaPlan{}
	)
	for _, a := range area.All() {
		plan, ok := plans[a]
		if !ok || plan.Empty() {
			continue
		}
		tracker, err := s.load(ctx, a)
		if err != nil {
			return ImportResult{}, err
		}
		previous[a] = tracker.Snapshot(a)
		for _, action := range plan.Actions {
			if _, err := tracker.AddAction(a, action); err != nil {
				return ImportResult{}, fmt.Errorf("import %s: %w", a, err)
			}
			result.Actions++
		}
		for _, milestone := range plan.Milestones {
			if _, err := tracker.AddMilestone(a, milestone); err != nil {
				return ImportResult{}, fmt.Errorf("import %s: %w", a, err)
			}
			result.Milestones++
		}
		trackers[a] = tracker
		result.Areas = append(result.Areas, a)
	}
	for i, a := range result.Areas {
		if _, err := s.save(ctx, a, trackers[a]); err != nil {
			s.rollback(ctx, result.Areas[:i], previous)
			return ImportResult{}, err
		}
	}
	return result, nil
}

func (s *ProgressService) rollback(ctx context.Context, written []area.Area, previous map[area.Area]domain.AreaPlan) {
	for _, a := range written {
		if _, err := s.store.Save(ctx, a, previous[a]); err != nil {
			s.log.Error("import rollback %s: %v", a, err)
		}
	}
}

func (s *ProgressService) Reindex(ctx context.Context) error {
	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	areas, err := s.store.Areas(ctx)
	if err != nil {
		return err
	}
	for _, a := range areas {
		plan, err := s.store.Load(ctx, a)
		if err != nil {
			return err
		}
		for _, event := range plan.History {
			if err := s.projector.AppendEvent(ctx, a, event); err != nil {
				return err
			}
		}
	}
	return nil
}
