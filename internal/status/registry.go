// Package status tracks pipeline runs for status-polling front ends.
package status

import (
	"sort"
	"sync"
	"time"

	"github.com/provision-dev/provision/pkg/models"
)

// RunState is the lifecycle state of a pipeline run.
type RunState string

const (
	StateQueued    RunState = "queued"
	StateRunning   RunState = "running"
	StateCompleted RunState = "completed"
	StateError     RunState = "error"
)

// Run is one tracked pipeline run. Entries are created at submission,
// updated at each stage transition, and never deleted automatically.
type Run struct {
	ID          string                 `json:"id"`
	Prompt      string                 `json:"prompt"`
	State       RunState               `json:"status"`
	Stage       string                 `json:"stage"`
	Message     string                 `json:"message"`
	Result      *models.PipelineResult `json:"result,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
	StartedAt   *time.Time             `json:"startedAt,omitempty"`
	CompletedAt *time.Time             `json:"completedAt,omitempty"`
}

// Registry is a process-wide concurrent run store. Individual entries update
// atomically with respect to their own fields; entries are independent of
// each other.
type Registry struct {
	mu   sync.RWMutex
	runs map[string]*Run
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{runs: make(map[string]*Run)}
}

// Put inserts a new run entry.
func (r *Registry) Put(run *Run) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *run
	r.runs[run.ID] = &copied
}

// Get returns a snapshot of a run, or false when the ID is unknown.
func (r *Registry) Get(id string) (*Run, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, false
	}
	copied := *run
	return &copied, true
}

// Update applies fn to the run under the registry lock, so the entry's fields
// change atomically with respect to concurrent readers.
func (r *Registry) Update(id string, fn func(*Run)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[id]
	if !ok {
		return false
	}
	fn(run)
	return true
}

// List returns snapshots of all runs, newest first.
func (r *Registry) List() []*Run {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Run, 0, len(r.runs))
	for _, run := range r.runs {
		copied := *run
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
