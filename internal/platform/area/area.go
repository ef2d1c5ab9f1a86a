// Package area defines the closed set of life areas shared by every module.
package area

import (
	"fmt"

	apperrors "lifebalance/internal/platform/errors"
	"lifebalance/internal/platform/slug"
)

type Area string

const (
	Career         Area = "career"
	Health         Area = "health"
	Family         Area = "family"
	PersonalGrowth Area = "personal_growth"
	Social         Area = "social"
	Finances       Area = "finances"
	Hobbies        Area = "hobbies"
	Spirituality   Area = "spirituality"
)

var ordered = []Area{Career, Health, Family, PersonalGrowth, Social, Finances, Hobbies, Spirituality}

var titles = map[Area]string{
	Career:         "Career",
	Health:         "Health",
	Family:         "Family",
	PersonalGrowth: "Personal Growth",
	Social:         "Social",
	Finances:       "Finances",
	Hobbies:        "Hobbies",
	Spirituality:   "Spirituality",
}

// All returns every area in canonical order.
func All() []Area {
	out := make([]Area, len(ordered))
	copy(out, ordered)
	return out
}

// Parse accepts any casing and "-" or " " separators, e.g. "Personal Growth".
func Parse(raw string) (Area, error) {
	a := Area(slug.Key(raw))
	if err := a.Validate(); err != nil {
		return "", fmt.Errorf("%w: unknown area %q", apperrors.ErrInvalidInput, raw)
	}
	return a, nil
}

func (a Area) Validate() error {
	if _, ok := titles[a]; !ok {
		return fmt.Errorf("%w: unsupported area %q", apperrors.ErrInvalidInput, string(a))
	}
	return nil
}

func (a Area) Title() string {
	if t, ok := titles[a]; ok {
		return t
	}
	return string(a)
}

// Index is the position of a in canonical order, or -1.
func (a Area) Index() int {
	for i, v := range ordered {
		if v == a {
			return i
		}
	}
	return -1
}
