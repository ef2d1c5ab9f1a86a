package out

import (
	"context"

	"lifebalance/internal/modules/advice/domain"
	"lifebalance/internal/platform/area"
)

// RatingSource supplies the current rating of each rated area.
type RatingSource interface {
	Ratings(ctx context.Context) ([]domain.Rating, error)
	Rating(ctx context.Context, a area.Area) (domain.Rating, error)
}
