package model

import "time"

// SchedulePair identifies one (project, source type) scheduling unit.
type SchedulePair struct {
	ProjectID  string
	SourceType SourceType
}

func (p SchedulePair) String() string {
	return p.ProjectID + "/" + p.SourceType.String()
}

// ScheduleClock is the persisted last-run record for a pair. A pair with no
// clock row is immediately due.
type ScheduleClock struct {
	ProjectID  string     `db:"project_id"`
	SourceType SourceType `db:"source_type"`
	LastRunAt  time.Time  `db:"last_run_at"`
}

// PairState tracks a pair through one scheduler pass.
type PairState string

const (
	PairStatePending   PairState = "pending"
	PairStateDue       PairState = "due"
	PairStateRunning   PairState = "running"
	PairStateSucceeded PairState = "succeeded"
	PairStateFailed    PairState = "failed"
)
