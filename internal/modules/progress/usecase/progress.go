package usecase

import (
	"context"
	"errors"

	"lifebalance/internal/modules/progress/domain"
	"lifebalance/internal/modules/progress/dto"
	progressin "lifebalance/internal/modules/progress/port/in"
	"lifebalance/internal/modules/progress/service"
	"lifebalance/internal/platform/area"
	apperrors "lifebalance/internal/platform/errors"
	"lifebalance/internal/platform/logbook"
)

type Interactor struct {
	svc *service.ProgressService
	log *logbook.Logbook
}

func NewInteractor(svc *service.ProgressService, log *logbook.Logbook) progressin.Usecase {
	return &Interactor{svc: svc, log: log}
}

func (i *Interactor) AddAction(ctx context.Context, input dto.AddActionInput) (dto.AddActionOutput, error) {
	a, err := area.Parse(input.Area)
	if err != nil {
		return dto.AddActionOutput{}, err
	}
	item := domain.ActionItem{
		Description:   input.Description,
		Deadline:      input.Deadline,
		Priority:      domain.Priority(input.Priority),
		MetricNames:   make([]string, 0, len(input.Metrics)),
		TargetValues:  make([]float64, 0, len(input.Metrics)),
		CurrentValues: make([]float64, 0, len(input.Metrics)),
		Notes:         input.Notes,
	}
	for _, m := range input.Metrics {
		item.MetricNames = append(item.MetricNames, m.Name)
		item.TargetValues = append(item.TargetValues, m.Target)
		item.CurrentValues = append(item.CurrentValues, m.Current)
	}
	index, action, path, err := i.svc.AddAction(ctx, a, item)
	if err != nil {
		i.log.Warn("add action to %s rejected: %v", a, err)
		return dto.AddActionOutput{}, err
	}
	i.log.Info("added action %d to %s: %s", index, a, action.Description)
	return dto.AddActionOutput{Action: toActionOutput(index, action), PlanPath: path}, nil
}

func (i *Interactor) AddMilestone(ctx context.Context, input dto.AddMilestoneInput) (dto.AddMilestoneOutput, error) {
	a, err := area.Parse(input.Area)
	if err != nil {
		return dto.AddMilestoneOutput{}, err
	}
	index, milestone, path, err := i.svc.AddMilestone(ctx, a, domain.Milestone{
		Description:     input.Description,
		TargetDate:      input.TargetDate,
		SuccessCriteria: input.SuccessCriteria,
		Metrics:         input.Metrics,
	})
	if err != nil {
		return dto.AddMilestoneOutput{}, err
	}
	i.log.Info("added milestone %d to %s: %s", index, a, milestone.Description)
	return dto.AddMilestoneOutput{Milestone: toMilestoneOutput(index, milestone), PlanPath: path}, nil
}

func (i *Interactor) SetMilestoneAchieved(ctx context.Context, input dto.SetMilestoneInput) (dto.MilestoneOutput, error) {
	a, err := area.Parse(input.Area)
	if err != nil {
		return dto.MilestoneOutput{}, err
	}
	milestone, err := i.svc.SetMilestoneAchieved(ctx, a, input.Index, input.Achieved)
	if err != nil {
		return dto.MilestoneOutput{}, err
	}
	i.log.Info("milestone %d in %s achieved=%t", input.Index, a, input.Achieved)
	return toMilestoneOutput(input.Index, milestone), nil
}

// UpdateProgress reports an undefined completion as a warning: the value
// and its history event were recorded regardless.
func (i *Interactor) UpdateProgress(ctx context.Context, input dto.UpdateProgressInput) (dto.UpdateProgressOutput, error) {
	a, err := area.Parse(input.Area)
	if err != nil {
		return dto.UpdateProgressOutput{}, err
	}
	action, event, err := i.svc.UpdateProgress(ctx, a, input.ActionIndex, input.MetricIndex, input.Value)
	out := dto.UpdateProgressOutput{}
	if err != nil {
		if !errors.Is(err, apperrors.ErrUndefinedRatio) {
			i.log.Warn("progress update on %s rejected: %v", a, err)
			return dto.UpdateProgressOutput{}, err
		}
		i.log.Warn("completion of %s action %d left unchanged: %v", a, input.ActionIndex, err)
		out.Warning = err.Error()
	}
	i.log.Info("progress %s action=%d %s=%g completion=%.4f", a, input.ActionIndex, event.MetricName, event.NewValue, action.CompletionStatus)
	out.Action = toActionOutput(input.ActionIndex, action)
	out.Event = toEventOutput(a, event)
	return out, nil
}

func (i *Interactor) DomainProgress(ctx context.Context, raw string) (dto.DomainProgressOutput, error) {
	a, err := area.Parse(raw)
	if err != nil {
		return dto.DomainProgressOutput{}, err
	}
	overview, err := i.svc.Overview(ctx, a)
	if err != nil {
		return dto.DomainProgressOutput{}, err
	}
	return toDomainProgressOutput(overview), nil
}

func (i *Interactor) Overview(ctx context.Context) ([]dto.DomainProgressOutput, error) {
	overviews, err := i.svc.Overviews(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DomainProgressOutput, 0, len(overviews))
	for _, o := range overviews {
		out = append(out, toDomainProgressOutput(o))
	}
	return out, nil
}

func (i *Interactor) History(ctx context.Context, raw string, limit int) ([]dto.EventOutput, error) {
	a, err := area.Parse(raw)
	if err != nil {
		return nil, err
	}
	events, err := i.svc.History(ctx, a, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EventOutput, 0, len(events))
	for _, e := range events {
		out = append(out, toEventOutput(a, e))
	}
	return out, nil
}

func (i *Interactor) ImportPlan(ctx context.Context, input dto.ImportPlanInput) (dto.ImportPlanOutput, error) {
	result, err := i.svc.ImportPlan(ctx, input.Path)
	if err != nil {
		i.log.Error("import plan %s: %v", input.Path, err)
		return dto.ImportPlanOutput{}, err
	}
	out := dto.ImportPlanOutput{Actions: result.Actions, Milestones: result.Milestones, Areas: make([]string, 0, len(result.Areas))}
	for _, a := range result.Areas {
		out.Areas = append(out.Areas, string(a))
	}
	i.log.Info("imported plan %s: %d actions, %d milestones", input.Path, result.Actions, result.Milestones)
	return out, nil
}

func (i *Interactor) Reindex(ctx context.Context, _ dto.ReindexInput) error {
	if err := i.svc.Reindex(ctx); err != nil {
		i.log.Error("reindex progress: %v", err)
		return err
	}
	i.log.Info("reindexed progress history")
	return nil
}

func toActionOutput(index int, action domain.ActionItem) dto.ActionOutput {
	metrics := make([]dto.MetricOutput, len(action.MetricNames))
	for i, name := range action.MetricNames {
		metrics[i] = dto.MetricOutput{Name: name, Current: action.CurrentValues[i], Target: action.TargetValues[i]}
	}
	return dto.ActionOutput{
		Index:       index,
		Description: action.Description,
		Completion:  action.CompletionStatus,
		Completed:   action.Completed(),
		Deadline:    action.Deadline,
		Priority:    int(action.Priority),
		Metrics:     metrics,
	}
}

func toMilestoneOutput(index int, m domain.Milestone) dto.MilestoneOutput {
	return dto.MilestoneOutput{
		Index:           index,
		Description:     m.Description,
		TargetDate:      m.TargetDate,
		SuccessCriteria: m.SuccessCriteria,
		Metrics:         m.Metrics,
		Achieved:        m.Achieved,
	}
}

func toEventOutput(a area.Area, e domain.ProgressEvent) dto.EventOutput {
	return dto.EventOutput{Area: string(a), Timestamp: e.Timestamp, MetricName: e.MetricName, NewValue: e.NewValue}
}

func toDomainProgressOutput(o service.AreaOverview) dto.DomainProgressOutput {
	out := dto.DomainProgressOutput{
		Area:             string(o.Area),
		Title:            o.Area.Title(),
		TotalActions:     o.Progress.TotalActions,
		CompletedActions: o.Progress.CompletedActions,
		CompletionRate:   o.Progress.CompletionRate,
		Actions:          make([]dto.ActionOutput, 0, len(o.Progress.Actions)),
		Milestones:       make([]dto.MilestoneOutput, 0, len(o.Milestones)),
	}
	for idx, action := range o.Progress.Actions {
		metrics := make([]dto.MetricOutput, len(action.Metrics))
		for i, m := range action.Metrics {
			metrics[i] = dto.MetricOutput{Name: m.Name, Current: m.Current, Target: m.Target}
		}
		out.Actions = append(out.Actions, dto.ActionOutput{
			Index:       idx,
			Description: action.Description,
			Completion:  action.Completion,
			Completed:   action.Completion >= domain.CompletionThreshold,
			Deadline:    action.Deadline,
			Priority:    int(action.Priority),
			Metrics:     metrics,
		})
	}
	for idx, m := range o.Milestones {
		out.Milestones = append(out.Milestones, toMilestoneOutput(idx, m))
	}
	return out
}
