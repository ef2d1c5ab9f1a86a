package app_test

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	advicedto "lifebalance/internal/modules/advice/dto"
	balancedto "lifebalance/internal/modules/balance/dto"
	progressdto "lifebalance/internal/modules/progress/dto"
	"lifebalance/internal/ui/app"
	"lifebalance/internal/ui/components"
	progressview "lifebalance/internal/ui/views/progress"
)

type fakeBalance struct {
	rated []string
}

func (f *fakeBalance) Score(context.Context) (balancedto.ScoreReportOutput, error) {
	return balancedto.ScoreReportOutput{}, nil
}

func (f *fakeBalance) Rate(_ context.Context, area string, satisfaction, risk float64, _ string) (balancedto.RateOutput, error) {
	f.rated = append(f.rated, area)
	return balancedto.RateOutput{
		Metric: balancedto.MetricOutput{Area: area, Title: "Career", Satisfaction: satisfaction, Risk: risk},
		Score:  balancedto.ScoreOutput{Value: 0.5, Defined: true, AreaCount: 1},
	}, nil
}

type fakeProgress struct {
	updates []string
}

func (f *fakeProgress) Overview(context.Context) ([]progressdto.DomainProgressOutput, error) {
	return nil, nil
}

func (f *fakeProgress) UpdateProgress(_ context.Context, area string, action, metric int, value float64) (progressdto.UpdateProgressOutput, error) {
	f.updates = append(f.updates, area)
	return progressdto.UpdateProgressOutput{
		Action: progressdto.ActionOutput{Index: action, Completion: 0.5},
		Event:  progressdto.EventOutput{Area: area, MetricName: "pages", NewValue: value},
	}, nil
}

func (f *fakeProgress) Achieve(_ context.Context, area string, index int, achieved bool) (progressdto.MilestoneOutput, error) {
	return progressdto.MilestoneOutput{Index: index, Description: "First 10k", Achieved: achieved}, nil
}

type fakeAdvice struct{}

func (fakeAdvice) Advise(context.Context) ([]advicedto.AdviceOutput, error) { return nil, nil }

func newModel(balance app.BalancePort, progress app.ProgressPort) tea.Model {
	m, _ := app.NewModel("vault", balance, progress, fakeAdvice{}).Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func submit(t *testing.T, m tea.Model, input string) tea.Model {
	t.Helper()
	next, cmd := m.Update(components.PaletteSubmitMsg{Input: input})
	if cmd == nil {
		return next
	}
	next, _ = next.Update(cmd())
	return next
}

func TestPaletteRateUpdatesStatus(t *testing.T) {
	t.Parallel()
	balance := &fakeBalance{}
	m := newModel(balance, &fakeProgress{})

	next := submit(t, m, "rate career 8 6 good week")
	if len(balance.rated) != 1 || balance.rated[0] != "career" {
		t.Fatalf("expected one rate call, got %v", balance.rated)
	}
	if view := next.View(); !strings.Contains(view, "rated Career · score 0.500") {
		t.Fatalf("status missing from view:\n%s", view)
	}
}

func TestPaletteRejectsBadInput(t *testing.T) {
	t.Parallel()
	m := newModel(&fakeBalance{}, &fakeProgress{})
	cases := map[string]string{
		"rate career high 3": "satisfaction and risk must be numbers",
		"dance":              "unknown command: dance",
		"progress 0 0 1":     "no area selected",
	}
	for input, want := range cases {
		if view := submit(t, m, input).View(); !strings.Contains(view, want) {
			t.Fatalf("%q: expected %q in view:\n%s", input, want, view)
		}
	}
}

func TestPaletteProgressUsesSelectedArea(t *testing.T) {
	t.Parallel()
	progress := &fakeProgress{}
	m, _ := newModel(&fakeBalance{}, progress).Update(progressview.OverviewLoadedMsg{Areas: []progressdto.DomainProgressOutput{
		{Area: "health", Title: "Health", TotalActions: 1},
	}})

	next := submit(t, m, "progress 0 1 12")
	if len(progress.updates) != 1 || progress.updates[0] != "health" {
		t.Fatalf("expected update on health, got %v", progress.updates)
	}
	if view := next.View(); !strings.Contains(view, "pages = 12 · completion 50%") {
		t.Fatalf("status missing from view:\n%s", view)
	}
	if view := submit(t, next, "achieve 0").View(); !strings.Contains(view, `milestone "First 10k" achieved=true`) {
		t.Fatalf("milestone status missing:\n%s", view)
	}
}
