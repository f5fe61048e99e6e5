// Package source defines the contract every external data adapter satisfies
// and the registry the ingestion stage resolves adapters through.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/domain/model"
)

// Candidate is one event an adapter observed at a source reference. The
// ingestion stage turns candidates into raw event rows; the database unique
// constraint makes re-fetched candidates no-ops.
type Candidate struct {
	UniqueID  string
	EventType model.EventType
	Payload   json.RawMessage
	Timestamp time.Time
}

// Adapter fetches events for a single source type. Fetch returns every event
// at the reference newer than since, or all recent events when since is nil.
// Errors should be classified transient or terminal by the adapter so the
// caller can decide whether a retry is worthwhile.
type Adapter interface {
	Type() model.SourceType
	Fetch(ctx context.Context, reference string, since *time.Time) ([]Candidate, error)
}

// Registry maps source types to their adapters. A configured source whose
// type has no registered adapter is skipped, never fatal.
type Registry struct {
	adapters map[model.SourceType]Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[model.SourceType]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.Type()] = a
	}
	return r
}

func (r *Registry) Register(a Adapter) {
	r.adapters[a.Type()] = a
}

// Lookup returns the adapter for the given source type.
func (r *Registry) Lookup(st model.SourceType) (Adapter, bool) {
	a, ok := r.adapters[st]
	return a, ok
}

// MustLookup is Lookup for wiring paths where absence is a programming error.
func (r *Registry) MustLookup(st model.SourceType) (Adapter, error) {
	a, ok := r.adapters[st]
	if !ok {
		return nil, fmt.Errorf("no adapter registered for source type %q", st)
	}
	return a, nil
}

// Types lists the registered source types.
func (r *Registry) Types() []model.SourceType {
	types := make([]model.SourceType, 0, len(r.adapters))
	for st := range r.adapters {
		types = append(types, st)
	}
	return types
}
