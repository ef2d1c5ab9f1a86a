package out_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	balanceout "lifebalance/internal/modules/balance/adapter/out"
	"lifebalance/internal/modules/balance/domain"
)

func TestScoreHistoryListsNewestRecordedFirst(t *testing.T) {
	t.Parallel()
	projector, err := balanceout.NewSQLiteScoreProjector(filepath.Join(t.TempDir(), "balance.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	// Fraction widths differ, which breaks ordering on the text column.
	snapshots := []domain.ScoreSnapshot{
		{ID: "whole", Value: 0.1, Defined: true, AreaCount: 1, RiskFreeRate: 5, ComputedAt: base},
		{ID: "older", Value: 0.2, Defined: true, AreaCount: 1, RiskFreeRate: 5, ComputedAt: base.Add(100 * time.Millisecond)},
		{ID: "newer", Value: 0.3, Defined: true, AreaCount: 2, RiskFreeRate: 5, ComputedAt: base.Add(120 * time.Millisecond)},
	}
	for _, s := range snapshots {
		if err := projector.RecordScore(ctx, s); err != nil {
			t.Fatalf("record %s: %v", s.ID, err)
		}
	}

	history, err := projector.ScoreHistory(ctx, 10)
	if err != nil {
		t.Fatalf("score history: %v", err)
	}
	if len(history) != 3 || history[0].ID != "newer" || history[1].ID != "older" || history[2].ID != "whole" {
		t.Fatalf("unexpected order: %+v", history)
	}
	if !history[0].ComputedAt.Equal(snapshots[2].ComputedAt) || history[0].AreaCount != 2 || !history[0].Defined {
		t.Fatalf("snapshot not round-tripped: %+v", history[0])
	}

	limited, err := projector.ScoreHistory(ctx, 1)
	if err != nil || len(limited) != 1 || limited[0].ID != "newer" {
		t.Fatalf("limit 1: %+v %v", limited, err)
	}
}

func TestScoreHistoryRejectsCorruptTimestamp(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "balance.db")
	projector, err := balanceout.NewSQLiteScoreProjector(dbPath)
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec(`INSERT INTO score_snapshots (id, value, defined, area_count, risk_free_rate, computed_at)
VALUES ('bad', 1, 1, 1, 5, 'yesterday')`); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if _, err := projector.ScoreHistory(context.Background(), 5); err == nil {
		t.Fatalf("expected an error for an unparsable computed_at")
	}
}
