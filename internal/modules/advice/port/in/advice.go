package in

import (
	"context"

	"lifebalance/internal/modules/advice/dto"
)

type Usecase interface {
	Advise(ctx context.Context) ([]dto.AdviceOutput, error)
	AdviseArea(ctx context.Context, area string) (dto.AdviceOutput, error)
}
