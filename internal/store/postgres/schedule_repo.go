package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/domain/model"
)

// ScheduleRepo persists per-pair last-run clocks so continuous mode survives
// process restarts without refetching everything immediately.
type ScheduleRepo struct {
	db *DB
}

func NewScheduleRepo(db *DB) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

func (r *ScheduleRepo) LastRun(ctx context.Context, pair model.SchedulePair) (*time.Time, error) {
	var at time.Time
	err := r.db.QueryRowContext(ctx, `
		SELECT last_run_at FROM schedule_clocks
		WHERE project_id = $1 AND source_type = $2
	`, pair.ProjectID, pair.SourceType).Scan(&at)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get schedule clock: %w", err)
	}
	return &at, nil
}

func (r *ScheduleRepo) MarkRun(ctx context.Context, pair model.SchedulePair, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO schedule_clocks (project_id, source_type, last_run_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (project_id, source_type) DO UPDATE SET
			last_run_at = EXCLUDED.last_run_at
	`, pair.ProjectID, pair.SourceType, at)
	if err != nil {
		return fmt.Errorf("mark schedule run: %w", err)
	}
	return nil
}
