package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"lifebalance/internal/modules/progress/domain"
	"lifebalance/internal/modules/progress/service"
	"lifebalance/internal/platform/area"
	"lifebalance/internal/platform/clock"
	apperrors "lifebalance/internal/platform/errors"
)

type memoryPlans struct {
	plans    map[area.Area]domain.AreaPlan
	saves    int
	failSave area.Area
}

func (s *memoryPlans) Load(_ context.Context, a area.Area) (domain.AreaPlan, error) {
	return s.plans[a], nil
}

func (s *memoryPlans) Save(_ context.Context, a area.Area, plan domain.AreaPlan) (string, error) {
	if a == s.failSave {
		return "", errors.New("disk full")
	}
	if s.plans == nil {
		s.plans = map[area.Area]domain.AreaPlan{}
	}
	s.plans[a] = plan
	s.saves++
	return "mem://" + string(a), nil
}

func (s *memoryPlans) Areas(context.Context) ([]area.Area, error) {
	var out []area.Area
	for _, a := range area.All() {
		if _, ok := s.plans[a]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

type staticSource struct {
	plans map[area.Area]domain.AreaPlan
}

func (s staticSource) Read(context.Context, string) (map[area.Area]domain.AreaPlan, error) {
	return s.plans, nil
}

type fakeHistory struct {
	events    map[area.Area][]domain.ProgressEvent
	appendErr error
	resets    int
}

func (h *fakeHistory) Reset(context.Context) error {
	h.resets++
	h.events = nil
	return nil
}

func (h *fakeHistory) AppendEvent(_ context.Context, a area.Area, e domain.ProgressEvent) error {
	if h.appendErr != nil {
		return h.appendErr
	}
	if h.events == nil {
		h.events = map[area.Area][]domain.ProgressEvent{}
	}
	h.events[a] = append(h.events[a], e)
	return nil
}

func (h *fakeHistory) Recent(_ context.Context, a area.Area, _ int) ([]domain.ProgressEvent, error) {
	return h.events[a], nil
}

var now = time.Date(2026, 4, 1, 6, 0, 0, 0, time.UTC)

func newService(store *memoryPlans, source staticSource, history *fakeHistory) *service.ProgressService {
	return service.NewProgressService(clock.Fixed{At: now}, store, source, history, nil)
}

func readingAction() domain.ActionItem {
	return domain.ActionItem{
		Description:   "Read more",
		Priority:      domain.PriorityMedium,
		MetricNames:   []string{"books", "pages"},
		TargetValues:  []float64{10, 10},
		CurrentValues: []float64{0, 0},
	}
}

func TestUpdateProgressPersistsAcrossCalls(t *testing.T) {
	t.Parallel()
	store := &memoryPlans{}
	history := &fakeHistory{}
	svc := newService(store, staticSource{}, history)
	ctx := context.Background()

	index, _, path, err := svc.AddAction(ctx, area.PersonalGrowth, readingAction())
	if err != nil || index != 0 || path != "mem://personal_growth" {
		t.Fatalf("add action: %d %s %v", index, path, err)
	}
	if _, _, err := svc.UpdateProgress(ctx, area.PersonalGrowth, 0, 0, 5); err != nil {
		t.Fatalf("first update: %v", err)
	}
	action, event, err := svc.UpdateProgress(ctx, area.PersonalGrowth, 0, 1, 5)
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if action.CompletionStatus != 0.5 || event.MetricName != "pages" || !event.Timestamp.Equal(now) {
		t.Fatalf("unexpected update result: %+v %+v", action, event)
	}
	if got := len(store.plans[area.PersonalGrowth].History); got != 2 {
		t.Fatalf("expected 2 stored events, got %d", got)
	}
	if got := len(history.events[area.PersonalGrowth]); got != 2 {
		t.Fatalf("expected 2 projected events, got %d", got)
	}

	overview, err := svc.Overview(ctx, area.PersonalGrowth)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.Progress.TotalActions != 1 || overview.Progress.CompletedActions != 0 || overview.Progress.CompletionRate != 0 {
		t.Fatalf("unexpected progress: %+v", overview.Progress)
	}
}

func TestUpdateProgressZeroTargetStillRecordsEvent(t *testing.T) {
	t.Parallel()
	store := &memoryPlans{}
	history := &fakeHistory{}
	svc := newService(store, staticSource{}, history)
	ctx := context.Background()

	item := readingAction()
	item.TargetValues = []float64{10, 0}
	if _, _, _, err := svc.AddAction(ctx, area.Hobbies, item); err != nil {
		t.Fatalf("add action: %v", err)
	}
	action, event, err := svc.UpdateProgress(ctx, area.Hobbies, 0, 0, 3)
	if !errors.Is(err, apperrors.ErrZeroTarget) {
		t.Fatalf("expected zero target error, got %v", err)
	}
	if action.CurrentValues[0] != 3 || action.CompletionStatus != 0 || event.NewValue != 3 {
		t.Fatalf("unexpected result: %+v %+v", action, event)
	}
	if len(store.plans[area.Hobbies].History) != 1 || len(history.events[area.Hobbies]) != 1 {
		t.Fatalf("event must be stored and projected despite the ratio error")
	}
}

func TestUpdateProgressLookupFailureWritesNothing(t *testing.T) {
	t.Parallel()
	store := &memoryPlans{}
	svc := newService(store, staticSource{}, &fakeHistory{})
	ctx := context.Background()

	if _, _, err := svc.UpdateProgress(ctx, area.Career, 0, 0, 1); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, _, _, err := svc.AddAction(ctx, area.Career, readingAction()); err != nil {
		t.Fatalf("add action: %v", err)
	}
	saves := store.saves
	if _, _, err := svc.UpdateProgress(ctx, area.Career, 0, 2, 1); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if store.saves != saves {
		t.Fatalf("failed lookup must not save")
	}
}

func TestProjectionFailureIsNotFatal(t *testing.T) {
	t.Parallel()
	store := &memoryPlans{}
	svc := newService(store, staticSource{}, &fakeHistory{appendErr: errors.New("disk full")})
	ctx := context.Background()

	_, _, _, _ = svc.AddAction(ctx, area.Health, readingAction())
	if _, _, err := svc.UpdateProgress(ctx, area.Health, 0, 0, 10); err != nil {
		t.Fatalf("projection failure should be swallowed: %v", err)
	}
	if len(store.plans[area.Health].History) != 1 {
		t.Fatalf("vault should still hold the event")
	}
}

func TestImportPlanIsAllOrNothing(t *testing.T) {
	t.Parallel()
	store := &memoryPlans{}
	bad := readingAction()
	bad.TargetValues = []float64{1}
	svc := newService(store, staticSource{plans: map[area.Area]domain.AreaPlan{
		area.Career:   {Actions: []domain.ActionItem{readingAction()}},
		area.Finances: {Actions: []domain.ActionItem{bad}},
	}}, &fakeHistory{})

	if _, err := svc.ImportPlan(context.Background(), "plan.yaml"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if store.saves != 0 {
		t.Fatalf("nothing should be saved when any area fails")
	}
}

func TestImportPlanRestoresWrittenAreasWhenSaveFails(t *testing.T) {
	t.Parallel()
	store := &memoryPlans{}
	svc := newService(store, staticSource{plans: map[area.Area]domain.AreaPlan{
		area.Career:   {Actions: []domain.ActionItem{readingAction(), readingAction()}},
		area.Finances: {Actions: []domain.ActionItem{readingAction()}},
	}}, &fakeHistory{})
	ctx := context.Background()
	if _, _, _, err := svc.AddAction(ctx, area.Career, readingAction()); err != nil {
		t.Fatalf("add action: %v", err)
	}
	store.failSave = area.Finances

	if _, err := svc.ImportPlan(ctx, "plan.yaml"); err == nil {
		t.Fatalf("expected save failure")
	}
	if got := len(store.plans[area.Career].Actions); got != 1 {
		t.Fatalf("career plan should be back to 1 action, got %d", got)
	}
	if _, ok := store.plans[area.Finances]; ok {
		t.Fatalf("finances plan should not exist")
	}
}

func TestImportPlanAppendsToExistingPlans(t *testing.T) {
	t.Parallel()
	store := &memoryPlans{}
	svc := newService(store, staticSource{plans: map[area.Area]domain.AreaPlan{
		area.Social: {
			Actions:    []domain.ActionItem{readingAction()},
			Milestones: []domain.Milestone{{Description: "Host a dinner"}},
		},
		area.Family: {Milestones: []domain.Milestone{{Description: "Family trip"}}},
	}}, &fakeHistory{})
	ctx := context.Background()
	_, _, _, _ = svc.AddAction(ctx, area.Social, readingAction())

	result, err := svc.ImportPlan(ctx, "plan.yaml")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Actions != 1 || result.Milestones != 2 || len(result.Areas) != 2 || result.Areas[0] != area.Family {
		t.Fatalf("unexpected result: %+v", result)
	}
	if got := len(store.plans[area.Social].Actions); got != 2 {
		t.Fatalf("expected imported action appended, got %d actions", got)
	}

	overviews, err := svc.Overviews(ctx)
	if err != nil {
		t.Fatalf("overviews: %v", err)
	}
	if len(overviews) != 2 || overviews[0].Area != area.Family || len(overviews[0].Milestones) != 1 {
		t.Fatalf("unexpected overviews: %+v", overviews)
	}
}

func TestReindexReplaysStoredHistory(t *testing.T) {
	t.Parallel()
	store := &memoryPlans{}
	history := &fakeHistory{}
	svc := newService(store, staticSource{}, history)
	ctx := context.Background()
	_, _, _, _ = svc.AddAction(ctx, area.Spirituality, readingAction())
	_, _, _ = svc.UpdateProgress(ctx, area.Spirituality, 0, 0, 1)
	_, _, _ = svc.UpdateProgress(ctx, area.Spirituality, 0, 1, 2)

	history.events = nil
	if err := svc.Reindex(ctx); err != nil {
		t.Fatalf("reindex: %v", err)
	}
	events, _ := svc.History(ctx, area.Spirituality, 10)
	if history.resets != 1 || len(events) != 2 || events[1].NewValue != 2 {
		t.Fatalf("unexpected replay: resets=%d events=%+v", history.resets, events)
	}
}
