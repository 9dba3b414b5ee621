package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dthen/ai-football/internal/ai"
	"github.com/dthen/ai-football/internal/models"
)

type fakeProvider struct {
	id      string
	fail    map[int64]error
	release chan struct{}
}

func (f *fakeProvider) ID() string   { return f.id }
func (f *fakeProvider) Name() string { return strings.ToUpper(f.id) }

func (f *fakeProvider) AnalyzeMatch(ctx context.Context, fixture models.Fixture, lineup *models.Lineup) (*models.Analysis, error) {
	if f.release != nil {
		<-f.release
	}
	if err, ok := f.fail[fixture.ID]; ok {
		return nil, err
	}
	return &models.Analysis{Bet: fmt.Sprintf("bet-%s-%d", f.id, fixture.ID)}, nil
}

func fixtures(n int) []models.Fixture {
	out := make([]models.Fixture, n)
	for i := range out {
		out[i] = models.Fixture{
			ID:       int64(100 + i),
			HomeTeam: models.Team{Name: fmt.Sprintf("Home%d", i)},
			AwayTeam: models.Team{Name: fmt.Sprintf("Away%d", i)},
		}
	}
	return out
}

func waitSettled(t *testing.T, b *Batch) {
	t.Helper()
	select {
	case <-b.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("batch did not settle")
	}
}

func TestRunSettlesEveryPair(t *testing.T) {
	providers := []ai.Provider{
		&fakeProvider{id: "gemini"},
		&fakeProvider{id: "qwen"},
		&fakeProvider{id: "llama"},
	}
	o := NewOrchestrator(providers)

	fx := fixtures(4)
	b, err := o.Run(context.Background(), fx, []string{"gemini", "qwen", "llama"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	waitSettled(t, b)

	table := b.Table()
	if len(table) != 4 {
		t.Fatalf("table has %d rows", len(table))
	}
	pairs := 0
	for _, row := range table {
		for _, res := range row {
			pairs++
			if res.Status == StatusPending {
				t.Error("pending pair after settlement")
			}
			if res.Status != StatusSuccess {
				t.Errorf("unexpected status %s", res.Status)
			}
		}
	}
	if pairs != 12 {
		t.Errorf("got %d pairs, want 12", pairs)
	}
}

func TestFailingPairLeavesSiblingsUnaffected(t *testing.T) {
	bad := &fakeProvider{id: "bad", fail: map[int64]error{
		100: errors.New("boom"),
		101: errors.New("boom"),
	}}
	good := &fakeProvider{id: "good"}
	o := NewOrchestrator([]ai.Provider{bad, good})

	fx := fixtures(2)
	b, err := o.Run(context.Background(), fx, []string{"bad", "good"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	waitSettled(t, b)

	for _, f := range fx {
		badRes, _ := b.Result(f.ID, "bad")
		if badRes.Status != StatusFailure {
			t.Errorf("fixture %d bad: status %s", f.ID, badRes.Status)
		}
		if badRes.Error == "" {
			t.Error("failure has no message")
		}
		goodRes, _ := b.Result(f.ID, "good")
		if goodRes.Status != StatusSuccess {
			t.Errorf("fixture %d good: status %s", f.ID, goodRes.Status)
		}
		if goodRes.Data == nil || goodRes.Data.Bet == "" {
			t.Error("success has no payload")
		}
	}
}

func TestHTTPErrorMessageSurfacesDetail(t *testing.T) {
	bad := &fakeProvider{id: "bad", fail: map[int64]error{100: &ai.HTTPError{
		Provider:   "BAD",
		Status:     402,
		StatusText: "Payment Required",
		Body:       `{"error": "insufficient balance"}`,
	}}}
	o := NewOrchestrator([]ai.Provider{bad})

	b, err := o.Run(context.Background(), fixtures(1), []string{"bad"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	waitSettled(t, b)

	res, _ := b.Result(100, "bad")
	if !strings.Contains(res.Error, "402") || !strings.Contains(res.Error, "insufficient balance") {
		t.Errorf("error message lost detail: %q", res.Error)
	}
}

func TestRunValidatesSelection(t *testing.T) {
	o := NewOrchestrator([]ai.Provider{&fakeProvider{id: "gemini"}})

	if _, err := o.Run(context.Background(), nil, []string{"gemini"}, nil); !errors.Is(err, ErrNoMatchesSelected) {
		t.Errorf("expected ErrNoMatchesSelected, got %v", err)
	}
	if _, err := o.Run(context.Background(), fixtures(1), nil, nil); !errors.Is(err, ErrNoProvidersSelected) {
		t.Errorf("expected ErrNoProvidersSelected, got %v", err)
	}
	if _, err := o.Run(context.Background(), fixtures(1), []string{"nope"}, nil); err == nil {
		t.Error("expected an error for an unknown provider id")
	}
}

func TestTableIsPendingBeforeSettlement(t *testing.T) {
	release := make(chan struct{})
	slow := &fakeProvider{id: "slow", release: release}
	o := NewOrchestrator([]ai.Provider{slow})

	fx := fixtures(2)
	b, err := o.Run(context.Background(), fx, []string{"slow"}, nil)
	if err != nil {
		t.Fatal(err)
	}

	// Loading state is representable: every pair exists and is pending.
	table := b.Table()
	for _, f := range fx {
		res, ok := table[f.ID]["slow"]
		if !ok {
			t.Fatalf("fixture %d missing from table", f.ID)
		}
		if res.Status != StatusPending {
			t.Errorf("fixture %d: status %s before release", f.ID, res.Status)
		}
	}
	if b.Settled() {
		t.Error("batch settled before any pair finished")
	}

	close(release)
	waitSettled(t, b)
}

func TestPairTransitionsAtMostOnce(t *testing.T) {
	b := newBatch("test", fixtures(1), []string{"p"})
	b.settle(100, "p", PairResult{Status: StatusSuccess, Data: &models.Analysis{Bet: "first"}})
	b.settle(100, "p", PairResult{Status: StatusFailure, Error: "late failure"})

	res, _ := b.Result(100, "p")
	if res.Status != StatusSuccess || res.Data.Bet != "first" {
		t.Errorf("pair reverted after settling: %+v", res)
	}
}

func TestLineupsReachProviders(t *testing.T) {
	var got *models.Lineup
	p := &capturingProvider{id: "cap", got: &got}
	o := NewOrchestrator([]ai.Provider{p})

	lineups := map[int64]*models.Lineup{100: {Team1Injuries: "Сака (травма)"}}
	b, err := o.Run(context.Background(), fixtures(1), []string{"cap"}, lineups)
	if err != nil {
		t.Fatal(err)
	}
	waitSettled(t, b)

	if got == nil || got.Team1Injuries != "Сака (травма)" {
		t.Errorf("lineup hints did not reach the provider: %+v", got)
	}
}

type capturingProvider struct {
	id  string
	got **models.Lineup
}

func (c *capturingProvider) ID() string   { return c.id }
func (c *capturingProvider) Name() string { return c.id }

func (c *capturingProvider) AnalyzeMatch(ctx context.Context, fixture models.Fixture, lineup *models.Lineup) (*models.Analysis, error) {
	*c.got = lineup
	return &models.Analysis{}, nil
}
