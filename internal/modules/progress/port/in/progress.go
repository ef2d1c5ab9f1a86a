package in

import (
	"context"

	"lifebalance/internal/modules/progress/dto"
)

type Usecase interface {
	AddAction(ctx context.Context, input dto.AddActionInput) (dto.AddActionOutput, error)
	AddMilestone(ctx context.Context, input dto.AddMilestoneInput) (dto.AddMilestoneOutput, error)
	SetMilestoneAchieved(ctx context.Context, input dto.SetMilestoneInput) (dto.MilestoneOutput, error)
	UpdateProgress(ctx context.Context, input dto.UpdateProgressInput) (dto.UpdateProgressOutput, error)
	DomainProgress(ctx context.Context, area string) (dto.DomainProgressOutput, error)
	Overview(ctx context.Context) ([]dto.DomainProgressOutput, error)
	History(ctx context.Context, area string, limit int) ([]dto.EventOutput, error)
	ImportPlan(ctx context.Context, input dto.ImportPlanInput) (dto.ImportPlanOutput, error)
	Reindex(ctx context.Context, input dto.ReindexInput) error
}
