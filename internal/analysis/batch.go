package analysis

import (
	"sync"
	"time"

	"github.com/dthen/ai-football/internal/models"
)

// Status of one (fixture, provider) pair.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// PairResult is the outcome slot of one (fixture, provider) pair. It is
// created pending and transitions exactly once to success or failure.
type PairResult struct {
	Status Status           `json:"status"`
	Data   *models.Analysis `json:"data,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// Table maps fixture id -> provider id -> pair result.
type Table map[int64]map[string]PairResult

// Batch is one fan-out run over selected fixtures and providers. The
// table fills in any order as pairs settle; Done closes once every pair
// has left the pending state.
type Batch struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"createdAt"`
	Fixtures  []models.Fixture `json:"fixtures"`
	Providers []string         `json:"providers"`

	mu    sync.RWMutex
	table Table
	done  chan struct{}
}

func newBatch(id string, fixtures []models.Fixture, providers []string) *Batch {
	table := make(Table, len(fixtures))
	for _, f := range fixtures {
		row := make(map[string]PairResult, len(providers))
		for _, p := range providers {
			row[p] = PairResult{Status: StatusPending}
		}
		table[f.ID] = row
	}
	return &Batch{
		ID:        id,
		CreatedAt: time.Now(),
		Fixtures:  fixtures,
		Providers: providers,
		table:     table,
		done:      make(chan struct{}),
	}
}

// settle records the outcome for one pair. Only its own slot is
// touched, and only if the slot is still pending.
func (b *Batch) settle(fixtureID int64, providerID string, res PairResult) {
	b.mu.Lock()
	defer b.mu.Unlock()
	row, ok := b.table[fixtureID]
	if !ok {
		return
	}
	if cur, ok := row[providerID]; !ok || cur.Status != StatusPending {
		return
	}
	row[providerID] = res
}

// Table returns a snapshot of the result table.
func (b *Batch) Table() Table {
	b.mu.RLock()
	defer b.mu.RUnlock()
	snap := make(Table, len(b.table))
	for fid, row := range b.table {
		r := make(map[string]PairResult, len(row))
		for pid, res := range row {
			r[pid] = res
		}
		snap[fid] = r
	}
	return snap
}

// Result returns one pair's current state.
func (b *Batch) Result(fixtureID int64, providerID string) (PairResult, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	row, ok := b.table[fixtureID]
	if !ok {
		return PairResult{}, false
	}
	res, ok := row[providerID]
	return res, ok
}

// Done is closed once every pair of the batch has settled.
func (b *Batch) Done() <-chan struct{} { return b.done }

// Wait blocks until the batch has fully settled.
func (b *Batch) Wait() { <-b.done }

// Settled reports whether every pair has left the pending state.
func (b *Batch) Settled() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}
