package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"lifebalance/internal/modules/progress/domain"
	progressout "lifebalance/internal/modules/progress/port/out"
	"lifebalance/internal/platform/area"

	_ "modernc.org/sqlite"
)

type SQLiteHistoryProjector struct {
	db *sql.DB
}

func NewSQLiteHistoryProjector(dbPath string) (progressout.HistoryProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteHistoryProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteHistoryProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS progress_events (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  area TEXT NOT NULL,
  metric_name TEXT NOT NULL,
  new_value REAL NOT NULL,
  recorded_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_progress_events_area ON progress_events(area, seq);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create progress tables: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM progress_events`); err != nil {
		return fmt.Errorf("reset progress events: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryProjector) AppendEvent(ctx context.Context, a area.Area, event domain.ProgressEvent) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO progress_events (area, metric_name, new_value, recorded_at)
VALUES (?, ?, ?, ?);
`, string(a), event.MetricName, event.NewValue, event.Timestamp.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("append progress event: %w", err)
	}
	return nil
}

// Recent returns the area's latest events in chronological order.
func (s *SQLiteHistoryProjector) Recent(ctx context.Context, a area.Area, limit int) ([]domain.ProgressEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT metric_name, new_value, recorded_at
FROM progress_events
WHERE area = ?
ORDER BY seq DESC
LIMIT ?;
`, string(a), limit)
	if err != nil {
		return nil, fmt.Errorf("list progress events: %w", err)
	}
	defer rows.Close()

	var out []domain.ProgressEvent
	for rows.Next() {
		var (
			event      domain.ProgressEvent
			recordedAt string
		)
		if err := rows.Scan(&event.MetricName, &event.NewValue, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan progress event: %w", err)
		}
		at, err := time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("parse recorded_at of %s event: %w", event.MetricName, err)
		}
		event.Timestamp = at
		out = append(out, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress events: %w", err)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
