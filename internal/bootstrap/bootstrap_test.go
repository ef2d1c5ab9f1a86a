package bootstrap_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lifebalance/internal/bootstrap"
	progressdto "lifebalance/internal/modules/progress/dto"
	"lifebalance/internal/platform/config"
)

func TestAppWiresModulesAgainstOneVault(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	cfg, err := config.New(vault)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	app, err := bootstrap.New(cfg)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	ctx := context.Background()

	if _, err := app.BalanceCLI.Rate(ctx, "finances", 3, 8, "tight month"); err != nil {
		t.Fatalf("rate: %v", err)
	}
	advice, err := app.AdviceCLI.Advise(ctx)
	if err != nil {
		t.Fatalf("advise: %v", err)
	}
	if len(advice) != 1 || advice[0].Area != "finances" || advice[0].Category != "low_satisfaction" {
		t.Fatalf("advice should follow the stored rating: %+v", advice)
	}

	if _, err := app.ProgressCLI.AddAction(ctx, progressdto.AddActionInput{
		Area:        "finances",
		Description: "Cut spending",
		Metrics:     []progressdto.MetricInput{{Name: "saved", Target: 200}},
	}); err != nil {
		t.Fatalf("add action: %v", err)
	}
	if _, err := app.ProgressCLI.UpdateProgress(ctx, "finances", 0, 0, 200); err != nil {
		t.Fatalf("update: %v", err)
	}

	for _, rel := range []string{"ratings/finances.md", "plans/finances.yaml", ".lifebalance/lifebalance.db"} {
		if _, err := os.Stat(filepath.Join(vault, rel)); err != nil {
			t.Fatalf("expected %s: %v", rel, err)
		}
	}
	log := strings.Join(app.Log.Tail(20), "\n")
	if !strings.Contains(log, "rated finances") || !strings.Contains(log, "progress finances") {
		t.Fatalf("logbook missing entries:\n%s", log)
	}
}
