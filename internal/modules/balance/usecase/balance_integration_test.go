package usecase_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	balanceout "lifebalance/internal/modules/balance/adapter/out"
	"lifebalance/internal/modules/balance/dto"
	balancein "lifebalance/internal/modules/balance/port/in"
	"lifebalance/internal/modules/balance/service"
	"lifebalance/internal/modules/balance/usecase"
	"lifebalance/internal/platform/clock"
	apperrors "lifebalance/internal/platform/errors"
	"lifebalance/internal/platform/id"
	"lifebalance/internal/platform/logbook"

	_ "modernc.org/sqlite"
)

func newVaultInteractor(t *testing.T, vault string) (balancein.Usecase, *logbook.Logbook) {
	t.Helper()
	dbPath := filepath.Join(vault, ".lifebalance", "lifebalance.db")
	projector, err := balanceout.NewSQLiteScoreProjector(dbPath)
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	lb, err := logbook.New(filepath.Join(vault, ".lifebalance", "logs", "lifebalance.log"), nil)
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	clk := clock.Fixed{At: time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)}
	svc := service.NewBalanceService(clk, id.UUID{}, 5.0, balanceout.NewVaultMetricStore(vault), projector, lb)
	return usecase.NewInteractor(svc, lb), lb
}

func TestRateScoreAndReindex(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	uc, lb := newVaultInteractor(t, vault)
	ctx := context.Background()

	out, err := uc.Rate(ctx, dto.RateInput{Area: "Career", Satisfaction: 8, Risk: 6, Notes: "promotion talk"})
	if err != nil {
		t.Fatalf("rate career: %v", err)
	}
	if out.Metric.Area != "career" || out.Score.Value != 0.5 || !out.Score.Defined {
		t.Fatalf("unexpected rate output: %+v", out)
	}
	note, err := os.ReadFile(out.NotePath)
	if err != nil {
		t.Fatalf("read rating note: %v", err)
	}
	if !strings.Contains(string(note), "<!-- lifebalance:rating:start -->") || !strings.Contains(string(note), "satisfaction 8.0/10") {
		t.Fatalf("managed summary missing: %s", note)
	}

	if _, err := uc.Rate(ctx, dto.RateInput{Area: "health", Satisfaction: 4, Risk: 2}); err != nil {
		t.Fatalf("rate health: %v", err)
	}
	report, err := uc.Score(ctx)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if report.Score.Value != 0.25 || report.Score.AreaCount != 2 {
		t.Fatalf("expected 0.25 over 2 areas, got %+v", report.Score)
	}
	if len(report.Metrics) != 2 || report.Metrics[0].Area != "career" || report.Metrics[0].Notes != "promotion talk" {
		t.Fatalf("unexpected metrics: %+v", report.Metrics)
	}

	metric, err := uc.GetMetric(ctx, "career")
	if err != nil {
		t.Fatalf("get metric: %v", err)
	}
	if metric.Satisfaction != 8 || metric.Risk != 6 {
		t.Fatalf("round trip mismatch: %+v", metric)
	}

	history, err := uc.ScoreHistory(ctx, 10)
	if err != nil {
		t.Fatalf("score history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected three recorded snapshots, got %d", len(history))
	}

	if err := uc.Reindex(ctx, dto.ReindexInput{}); err != nil {
		t.Fatalf("reindex: %v", err)
	}
	db, err := sql.Open("sqlite", filepath.Join(vault, ".lifebalance", "lifebalance.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer func() { _ = db.Close() }()
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM domain_metrics`).Scan(&count); err != nil {
		t.Fatalf("count metrics: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected two projected metrics, got %d", count)
	}

	if tail := lb.Tail(10); len(tail) == 0 || !strings.Contains(strings.Join(tail, "\n"), "rated career") {
		t.Fatalf("expected rating to be logged, got %v", tail)
	}
}

func TestRateRejectsOutOfRangeWithoutWriting(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	uc, _ := newVaultInteractor(t, vault)
	ctx := context.Background()

	if _, err := uc.Rate(ctx, dto.RateInput{Area: "career", Satisfaction: 11, Risk: 5}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := uc.Rate(ctx, dto.RateInput{Area: "career", Satisfaction: 5, Risk: -1}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := uc.Rate(ctx, dto.RateInput{Area: "work", Satisfaction: 5, Risk: 5}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid area, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(vault, "ratings", "career.md")); !os.IsNotExist(err) {
		t.Fatalf("rejected rating must not create a note, stat err=%v", err)
	}
	if _, err := uc.GetMetric(ctx, "career"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestScoreWithZeroRiskIsUndefined(t *testing.T) {
	t.Parallel()
	uc, _ := newVaultInteractor(t, t.TempDir())
	ctx := context.Background()

	empty, err := uc.Score(ctx)
	if err != nil {
		t.Fatalf("empty score: %v", err)
	}
	if empty.Score.Value != 0 || !empty.Score.Defined || empty.Score.AreaCount != 0 {
		t.Fatalf("empty vault should score a defined 0.0, got %+v", empty.Score)
	}

	out, err := uc.Rate(ctx, dto.RateInput{Area: "hobbies", Satisfaction: 9, Risk: 0})
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	if out.Score.Defined || out.Score.Value != 0 {
		t.Fatalf("zero risk should be undefined, got %+v", out.Score)
	}
}
