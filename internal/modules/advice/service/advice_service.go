package service

import (
	"context"

	"lifebalance/internal/modules/advice/domain"
	adviceout "lifebalance/internal/modules/advice/port/out"
	"lifebalance/internal/platform/area"
)

type AdviceService struct {
	ratings adviceout.RatingSource
}

func NewAdviceService(ratings adviceout.RatingSource) *AdviceService {
	return &AdviceService{ratings: ratings}
}

// Advise returns one entry per rated area. Unrated areas get nothing.
func (s *AdviceService) Advise(ctx context.Context) ([]domain.Advice, error) {
	ratings, err := s.ratings.Ratings(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Advice, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, domain.Advise(r))
	}
	return out, nil
}

func (s *AdviceService) AdviseArea(ctx context.Context, a area.Area) (domain.Advice, error) {
	r, err := s.ratings.Rating(ctx, a)
	if err != nil {
		return domain.Advice{}, err
	}
	return domain.Advise(r), nil
}
