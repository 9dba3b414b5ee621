// Package analysis fans one independent model request out per
// (fixture, provider) pair and merges the outcomes into a per-batch
// result table.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/dthen/ai-football/internal/ai"
	"github.com/dthen/ai-football/internal/models"
)

var (
	// ErrNoMatchesSelected is reported before any network activity.
	ErrNoMatchesSelected = errors.New("выберите хотя бы один матч для анализа")

	// ErrNoProvidersSelected is reported before any network activity.
	ErrNoProvidersSelected = errors.New("выберите хотя бы одну модель ИИ")
)

type outcome struct {
	fixtureID  int64
	providerID string
	data       *models.Analysis
	err        error
}

// Orchestrator runs analysis batches over a set of registered providers.
type Orchestrator struct {
	providers map[string]ai.Provider
}

func NewOrchestrator(providers []ai.Provider) *Orchestrator {
	m := make(map[string]ai.Provider, len(providers))
	for _, p := range providers {
		m[p.ID()] = p
	}
	return &Orchestrator{providers: m}
}

// Provider returns a registered provider by id.
func (o *Orchestrator) Provider(id string) (ai.Provider, bool) {
	p, ok := o.providers[id]
	return p, ok
}

// Run starts one batch: every (fixture, provider) pair gets its own
// in-flight request immediately, with no cap, no timeout and no
// cancellation once started. The returned batch fills in settlement
// order; Run itself returns as soon as the fan-out is launched.
//
// Each pair's goroutine reports through a channel consumed by a single
// merge goroutine, so the table only ever has one writer. A failing
// pair is recorded and never aborts its siblings; the batch is settled
// once all pairs have reported.
func (o *Orchestrator) Run(ctx context.Context, fixtures []models.Fixture, providerIDs []string, lineups map[int64]*models.Lineup) (*Batch, error) {
	if len(fixtures) == 0 {
		return nil, ErrNoMatchesSelected
	}
	if len(providerIDs) == 0 {
		return nil, ErrNoProvidersSelected
	}
	selected := make([]ai.Provider, 0, len(providerIDs))
	for _, id := range providerIDs {
		p, ok := o.providers[id]
		if !ok {
			return nil, fmt.Errorf("неизвестная модель ИИ: %s", id)
		}
		selected = append(selected, p)
	}

	b := newBatch(uuid.NewString(), fixtures, providerIDs)
	log.Printf("analysis: batch %s started, %d matches x %d models", b.ID, len(fixtures), len(selected))

	results := make(chan outcome)
	var wg sync.WaitGroup

	for _, fixture := range fixtures {
		for _, provider := range selected {
			wg.Add(1)
			go func(f models.Fixture, p ai.Provider) {
				defer wg.Done()
				data, err := p.AnalyzeMatch(ctx, f, lineups[f.ID])
				results <- outcome{fixtureID: f.ID, providerID: p.ID(), data: data, err: err}
			}(fixture, provider)
		}
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// Single writer: every table update flows through here.
	go func() {
		for r := range results {
			if r.err != nil {
				provider := o.providers[r.providerID]
				b.settle(r.fixtureID, r.providerID, PairResult{
					Status: StatusFailure,
					Error:  failureMessage(provider.Name(), r.err),
				})
				continue
			}
			b.settle(r.fixtureID, r.providerID, PairResult{
				Status: StatusSuccess,
				Data:   r.data,
			})
		}
		close(b.done)
		log.Printf("analysis: batch %s settled", b.ID)
	}()

	return b, nil
}

// failureMessage derives the human-readable per-pair error text. Raw
// technical detail stays inside the message for the diagnostics view.
func failureMessage(providerName string, err error) string {
	var httpErr *ai.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Error()
	}
	return fmt.Sprintf("Не удалось сгенерировать детальный анализ через %s: %v", providerName, err)
}
