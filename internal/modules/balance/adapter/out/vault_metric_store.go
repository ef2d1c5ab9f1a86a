package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"lifebalance/internal/modules/balance/domain"
	balanceout "lifebalance/internal/modules/balance/port/out"
	"lifebalance/internal/platform/area"
	"lifebalance/internal/platform/markdown"
)

const defaultRatingBody = "## Reflection\n\n## What would move the needle\n"

// VaultMetricStore keeps one markdown note per area under <vault>/ratings.
// Frontmatter is authoritative; the body belongs to the user except for the
// managed summary block.
type VaultMetricStore struct {
	vaultPath string
}

func NewVaultMetricStore(vaultPath string) balanceout.MetricStore {
	return &VaultMetricStore{vaultPath: vaultPath}
}

func (s *VaultMetricStore) Save(_ context.Context, metric domain.DomainMetric) (string, error) {
	path := filepath.Join(s.vaultPath, "ratings", string(metric.Area)+".md")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create ratings directory: %w", err)
	}

	body := ""
	if existing, err := os.ReadFile(path); err == nil {
		if _, existingBody, splitErr := markdown.SplitFrontmatter(string(existing)); splitErr == nil {
			body = existingBody
		}
	}
	if strings.TrimSpace(body) == "" {
		body = defaultRatingBody
	}
	summary := fmt.Sprintf("%s: satisfaction %.1f/10, risk %.1f/10 (updated %s)",
		metric.Area.Title(), metric.Satisfaction, metric.Risk, metric.LastUpdated.Format("2006-01-02"))
	body = markdown.ReplaceManagedBlock(body, domain.ManagedSummaryStart, domain.ManagedSummaryEnd, summary)

	rendered, err := markdown.RenderFrontmatter(toFrontmatter(metric), body, frontmatterOrder...)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write rating note: %w", err)
	}
	return path, nil
}

func (s *VaultMetricStore) List(_ context.Context) ([]domain.DomainMetric, error) {
	matches, err := filepath.Glob(filepath.Join(s.vaultPath, "ratings", "*.md"))
	if err != nil {
		return nil, fmt.Errorf("glob rating notes: %w", err)
	}
	sort.Strings(matches)

	out := make([]domain.DomainMetric, 0, len(matches))
	for _, path := range matches {
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", path, readErr)
		}
		meta, _, splitErr := markdown.SplitFrontmatter(string(content))
		if splitErr != nil {
			return nil, fmt.Errorf("parse %s: %w", path, splitErr)
		}
		metric, convErr := fromFrontmatter(meta)
		if convErr != nil {
			return nil, fmt.Errorf("decode rating %s: %w", path, convErr)
		}
		out = append(out, metric)
	}
	return out, nil
}

var frontmatterOrder = []string{"schema_version", "area", "satisfaction", "risk", "notes", "last_updated"}

func toFrontmatter(metric domain.DomainMetric) map[string]any {
	return map[string]any{
		"schema_version": domain.SchemaVersion,
		"area":           string(metric.Area),
		"satisfaction":   metric.Satisfaction,
		"risk":           metric.Risk,
		"notes":          metric.Notes,
		"last_updated":   metric.LastUpdated.Format(time.RFC3339Nano),
	}
}

func fromFrontmatter(meta map[string]any) (domain.DomainMetric, error) {
	a, err := area.Parse(markdown.AsString(meta["area"]))
	if err != nil {
		return domain.DomainMetric{}, err
	}
	updated, _ := time.Parse(time.RFC3339Nano, markdown.AsString(meta["last_updated"]))
	metric := domain.DomainMetric{
		Area:         a,
		Satisfaction: markdown.AsFloat(meta["satisfaction"]),
		Risk:         markdown.AsFloat(meta["risk"]),
		Notes:        markdown.AsString(meta["notes"]),
		LastUpdated:  updated,
	}
	if err := metric.Validate(); err != nil {
		return domain.DomainMetric{}, err
	}
	return metric, nil
}
