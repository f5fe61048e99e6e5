package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/domain/model"
)

// ScheduleStore is an in-memory clock store. Clocks reset on restart, which
// makes every pair immediately due on the first tick.
type ScheduleStore struct {
	mu   sync.Mutex
	runs map[model.SchedulePair]time.Time
}

func NewScheduleStore() *ScheduleStore {
	return &ScheduleStore{runs: make(map[model.SchedulePair]time.Time)}
}

func (s *ScheduleStore) LastRun(_ context.Context, pair model.SchedulePair) (*time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.runs[pair]
	if !ok {
		return nil, nil
	}
	return &at, nil
}

func (s *ScheduleStore) MarkRun(_ context.Context, pair model.SchedulePair, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[pair] = at
	return nil
}
