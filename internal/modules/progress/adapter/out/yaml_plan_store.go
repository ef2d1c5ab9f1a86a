package out

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"lifebalance/internal/modules/progress/domain"
	progressout "lifebalance/internal/modules/progress/port/out"
	"lifebalance/internal/platform/area"
	apperrors "lifebalance/internal/platform/errors"
)

// YAMLPlanStore keeps one yaml document per area under <vault>/plans.
type YAMLPlanStore struct {
	dir string
}

func NewYAMLPlanStore(vaultPath string) progressout.PlanStore {
	return &YAMLPlanStore{dir: filepath.Join(vaultPath, "plans")}
}

func (s *YAMLPlanStore) path(a area.Area) string {
	return filepath.Join(s.dir, string(a)+".yaml")
}

func (s *YAMLPlanStore) Load(_ context.Context, a area.Area) (domain.AreaPlan, error) {
	b, err := os.ReadFile(s.path(a))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.AreaPlan{}, nil
		}
		return domain.AreaPlan{}, fmt.Errorf("read %s plan: %w", a, err)
	}
	var record planRecord
	decoder := yaml.NewDecoder(bytes.NewReader(b))
	decoder.KnownFields(true)
	if err := decoder.Decode(&record); err != nil && !errors.Is(err, io.EOF) {
		return domain.AreaPlan{}, fmt.Errorf("%w: decode %s plan: %v", apperrors.ErrInvalidInput, a, err)
	}
	plan, err := fromPlanRecord(record)
	if err != nil {
		return domain.AreaPlan{}, fmt.Errorf("decode %s plan: %w", a, err)
	}
	return plan, nil
}

func (s *YAMLPlanStore) Save(_ context.Context, a area.Area, plan domain.AreaPlan) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create plans directory: %w", err)
	}
	record := toPlanRecord(plan)
	record.SchemaVersion = domain.SchemaVersion
	record.Area = string(a)

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(record); err != nil {
		return "", fmt.Errorf("encode %s plan: %w", a, err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("encode %s plan: %w", a, err)
	}

	path := s.path(a)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write %s plan: %w", a, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("replace %s plan: %w", a, err)
	}
	return path, nil
}

// Areas lists areas with a plan file, in canonical order. Files that do not
// name a known area are ignored.
func (s *YAMLPlanStore) Areas(_ context.Context) ([]area.Area, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("glob plan files: %w", err)
	}
	present := map[area.Area]bool{}
	for _, match := range matches {
		a, err := area.Parse(strings.TrimSuffix(filepath.Base(match), ".yaml"))
		if err != nil {
			continue
		}
		present[a] = true
	}
	var out []area.Area
	for _, a := range area.All() {
		if present[a] {
			out = append(out, a)
		}
	}
	return out, nil
}
