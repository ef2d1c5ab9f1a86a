package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"lifebalance/internal/modules/balance/domain"
	balanceout "lifebalance/internal/modules/balance/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteScoreProjector struct {
	db *sql.DB
}

func NewSQLiteScoreProjector(dbPath string) (balanceout.ScoreProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteScoreProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteScoreProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS domain_metrics (
  area TEXT PRIMARY KEY,
  satisfaction REAL NOT NULL,
  risk REAL NOT NULL,
  notes TEXT,
  last_updated TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS score_snapshots (
  id TEXT PRIMARY KEY,
  value REAL NOT NULL,
  defined INTEGER NOT NULL,
  area_count INTEGER NOT NULL,
  risk_free_rate REAL NOT NULL,
  computed_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create balance tables: %w", err)
	}
	return nil
}

// Reset clears the metric mirror. Score history is kept across reindexes.
func (s *SQLiteScoreProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM domain_metrics`); err != nil {
		return fmt.Errorf("reset domain metrics: %w", err)
	}
	return nil
}

func (s *SQLiteScoreProjector) UpsertMetric(ctx context.Context, metric domain.DomainMetric) error {
	const stmt = `
INSERT INTO domain_metrics (area, satisfaction, risk, notes, last_updated)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(area) DO UPDATE SET
  satisfaction=excluded.satisfaction,
  risk=excluded.risk,
  notes=excluded.notes,
  last_updated=excluded.last_updated;
`
	_, err := s.db.ExecContext(ctx, stmt,
		string(metric.Area),
		metric.Satisfaction,
		metric.Risk,
		metric.Notes,
		metric.LastUpdated.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert domain metric: %w", err)
	}
	return nil
}

func (s *SQLiteScoreProjector) RecordScore(ctx context.Context, snapshot domain.ScoreSnapshot) error {
	const stmt = `
INSERT INTO score_snapshots (id, value, defined, area_count, risk_free_rate, computed_at)
VALUES (?, ?, ?, ?, ?, ?);
`
	defined := 0
	if snapshot.Defined {
		defined = 1
	}
	_, err := s.db.ExecContext(ctx, stmt,
		snapshot.ID,
		snapshot.Value,
		defined,
		snapshot.AreaCount,
		snapshot.RiskFreeRate,
		snapshot.ComputedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record score snapshot: %w", err)
	}
	return nil
}

// ScoreHistory returns the most recent snapshots, newest recorded first.
func (s *SQLiteScoreProjector) ScoreHistory(ctx context.Context, limit int) ([]domain.ScoreSnapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, value, defined, area_count, risk_free_rate, computed_at
FROM score_snapshots
ORDER BY rowid DESC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list score snapshots: %w", err)
	}
	defer rows.Close()

	var out []domain.ScoreSnapshot
	for rows.Next() {
		var (
			snapshot   domain.ScoreSnapshot
			defined    int
			computedAt string
		)
		if err := rows.Scan(&snapshot.ID, &snapshot.Value, &defined, &snapshot.AreaCount, &snapshot.RiskFreeRate, &computedAt); err != nil {
			return nil, fmt.Errorf("scan score snapshot: %w", err)
		}
		snapshot.Defined = defined == 1
		at, err := time.Parse(time.RFC3339Nano, computedAt)
		if err != nil {
			return nil, fmt.Errorf("parse computed_at of snapshot %s: %w", snapshot.ID, err)
		}
		snapshot.ComputedAt = at
		out = append(out, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate score snapshots: %w", err)
	}
	return out, nil
}
