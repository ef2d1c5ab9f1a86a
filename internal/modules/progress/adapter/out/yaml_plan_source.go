package out

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"lifebalance/internal/modules/progress/domain"
	progressout "lifebalance/internal/modules/progress/port/out"
	"lifebalance/internal/platform/area"
	apperrors "lifebalance/internal/platform/errors"
)

// importFile is the shape of a hand-written plan:
//
//	areas:
//	  health:
//	    actions:
//	      - description: Run a half marathon
//	        deadline: 2026-10-01
//	        metrics:
//	          - {name: km_per_week, target: 30}
//	    milestones:
//	      - description: First 10k
type importFile struct {
	Areas map[string]planRecord `yaml:"areas"`
}

type YAMLPlanSource struct{}

func NewYAMLPlanSource() progressout.PlanSource {
	return YAMLPlanSource{}
}

func (YAMLPlanSource) Read(_ context.Context, path string) (map[area.Area]domain.AreaPlan, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan file: %w", err)
	}
	var file importFile
	decoder := yaml.NewDecoder(bytes.NewReader(b))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: decode plan file %s: %v", apperrors.ErrInvalidInput, path, err)
	}
	if len(file.Areas) == 0 {
		return nil, fmt.Errorf("%w: plan file %s has no areas", apperrors.ErrInvalidInput, path)
	}

	out := make(map[area.Area]domain.AreaPlan, len(file.Areas))
	for raw, record := range file.Areas {
		a, err := area.Parse(raw)
		if err != nil {
			return nil, err
		}
		if len(record.History) > 0 {
			return nil, fmt.Errorf("%w: plan file %s: %s: history cannot be imported", apperrors.ErrInvalidInput, path, a)
		}
		plan, err := fromPlanRecord(record)
		if err != nil {
			return nil, fmt.Errorf("plan file %s: %s: %w", path, a, err)
		}
		if _, dup := out[a]; dup {
			return nil, fmt.Errorf("%w: plan file %s lists %s twice", apperrors.ErrInvalidInput, path, a)
		}
		out[a] = plan
	}
	return out, nil
}
