package out

import (
	"context"

	"lifebalance/internal/modules/advice/domain"
	adviceout "lifebalance/internal/modules/advice/port/out"
	balancedto "lifebalance/internal/modules/balance/dto"
	balancein "lifebalance/internal/modules/balance/port/in"
	"lifebalance/internal/platform/area"
)

type BalanceRatingAdapter struct {
	balance balancein.Usecase
}

func NewBalanceRatingAdapter(balance balancein.Usecase) adviceout.RatingSource {
	return &BalanceRatingAdapter{balance: balance}
}

func (a *BalanceRatingAdapter) Ratings(ctx context.Context) ([]domain.Rating, error) {
	metrics, err := a.balance.ListMetrics(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Rating, 0, len(metrics))
	for _, m := range metrics {
		r, err := toRating(m)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (a *BalanceRatingAdapter) Rating(ctx context.Context, ar area.Area) (domain.Rating, error) {
	metric, err := a.balance.GetMetric(ctx, string(ar))
	if err != nil {
		return domain.Rating{}, err
	}
	return toRating(metric)
}

func toRating(m balancedto.MetricOutput) (domain.Rating, error) {
	a, err := area.Parse(m.Area)
	if err != nil {
		return domain.Rating{}, err
	}
	return domain.Rating{Area: a, Satisfaction: m.Satisfaction, Risk: m.Risk}, nil
}
