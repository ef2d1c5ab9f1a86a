package out

import (
	"context"

	"lifebalance/internal/modules/progress/domain"
	"lifebalance/internal/platform/area"
)

// PlanStore is the source of truth for actions, milestones and history.
// Load returns an empty plan for areas that were never saved.
type PlanStore interface {
	Load(ctx context.Context, a area.Area) (domain.AreaPlan, error)
	Save(ctx context.Context, a area.Area, plan domain.AreaPlan) (string, error)
	Areas(ctx context.Context) ([]area.Area, error)
}

// PlanSource reads a caller-supplied plan file for import.
type PlanSource interface {
	Read(ctx context.Context, path string) (map[area.Area]domain.AreaPlan, error)
}

// HistoryProjector mirrors progress events into a queryable index.
type HistoryProjector interface {
	Reset(ctx context.Context) error
	AppendEvent(ctx context.Context, a area.Area, event domain.ProgressEvent) error
	Recent(ctx context.Context, a area.Area, limit int) ([]domain.ProgressEvent, error)
}
