package in

import (
	"context"

	"lifebalance/internal/modules/progress/dto"
	progressin "lifebalance/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) AddAction(ctx context.Context, input dto.AddActionInput) (dto.AddActionOutput, error) {
	return h.usecase.AddAction(ctx, input)
}

func (h CLIHandler) AddMilestone(ctx context.Context, input dto.AddMilestoneInput) (dto.AddMilestoneOutput, error) {
	return h.usecase.AddMilestone(ctx, input)
}

func (h CLIHandler) Achieve(ctx context.Context, area string, index int, achieved bool) (dto.MilestoneOutput, error) {
	return h.usecase.SetMilestoneAchieved(ctx, dto.SetMilestoneInput{Area: area, Index: index, Achieved: achieved})
}

func (h CLIHandler) UpdateProgress(ctx context.Context, area string, actionIndex, metricIndex int, value float64) (dto.UpdateProgressOutput, error) {
	return h.usecase.UpdateProgress(ctx, dto.UpdateProgressInput{Area: area, ActionIndex: actionIndex, MetricIndex: metricIndex, Value: value})
}

func (h CLIHandler) DomainProgress(ctx context.Context, area string) (dto.DomainProgressOutput, error) {
	return h.usecase.DomainProgress(ctx, area)
}

func (h CLIHandler) Overview(ctx context.Context) ([]dto.DomainProgressOutput, error) {
	return h.usecase.Overview(ctx)
}

func (h CLIHandler) History(ctx context.Context, area string, limit int) ([]dto.EventOutput, error) {
	return h.usecase.History(ctx, area, limit)
}

func (h CLIHandler) ImportPlan(ctx context.Context, path string) (dto.ImportPlanOutput, error) {
	return h.usecase.ImportPlan(ctx, dto.ImportPlanInput{Path: path})
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx, dto.ReindexInput{})
}
