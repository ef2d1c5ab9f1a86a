package in

import (
	"context"

	"lifebalance/internal/modules/advice/dto"
	advicein "lifebalance/internal/modules/advice/port/in"
)

type CLIHandler struct {
	usecase advicein.Usecase
}

func NewCLIHandler(usecase advicein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Advise(ctx context.Context) ([]dto.AdviceOutput, error) {
	return h.usecase.Advise(ctx)
}

func (h CLIHandler) AdviseArea(ctx context.Context, area string) (dto.AdviceOutput, error) {
	return h.usecase.AdviseArea(ctx, area)
}
