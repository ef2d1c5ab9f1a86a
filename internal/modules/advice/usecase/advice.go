package usecase

import (
	"context"

	"lifebalance/internal/modules/advice/domain"
	"lifebalance/internal/modules/advice/dto"
	advicein "lifebalance/internal/modules/advice/port/in"
	"lifebalance/internal/modules/advice/service"
	"lifebalance/internal/platform/area"
)

type Interactor struct {
	svc *service.AdviceService
}

func NewInteractor(svc *service.AdviceService) advicein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Advise(ctx context.Context) ([]dto.AdviceOutput, error) {
	advice, err := i.svc.Advise(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AdviceOutput, 0, len(advice))
	for _, a := range advice {
		out = append(out, toOutput(a))
	}
	return out, nil
}

func (i *Interactor) AdviseArea(ctx context.Context, raw string) (dto.AdviceOutput, error) {
	a, err := area.Parse(raw)
	if err != nil {
		return dto.AdviceOutput{}, err
	}
	advice, err := i.svc.AdviseArea(ctx, a)
	if err != nil {
		return dto.AdviceOutput{}, err
	}
	return toOutput(advice), nil
}

func toOutput(a domain.Advice) dto.AdviceOutput {
	return dto.AdviceOutput{
		Area:         string(a.Rating.Area),
		Title:        a.Rating.Area.Title(),
		Category:     string(a.Category),
		Satisfaction: a.Rating.Satisfaction,
		Risk:         a.Rating.Risk,
		Suggestions:  a.Suggestions,
	}
}
