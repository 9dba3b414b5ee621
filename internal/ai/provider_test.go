package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dthen/ai-football/internal/models"
)

func chatHandler(t *testing.T, status int, content string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			w.Write([]byte(content))
			return
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}
}

func testAdapter(srv *httptest.Server) *adapter {
	return &adapter{
		id:     "gemini",
		name:   "Gemini",
		model:  "google/gemini-flash-1.5",
		client: NewClient(srv.URL, "test-key", "https://example.test", "Test"),
	}
}

func TestAnalyzeMatchSuccess(t *testing.T) {
	content := "```json\n{\"bet\": \"П1 + ТБ 1.5\", \"betConfidence\": 7, \"h2h\": \"история встреч\"}\n```"
	srv := httptest.NewServer(chatHandler(t, http.StatusOK, content))
	defer srv.Close()

	a := testAdapter(srv)
	fixture := models.Fixture{
		ID:       1,
		HomeTeam: models.Team{Name: "Арсенал"},
		AwayTeam: models.Team{Name: "Челси"},
	}
	lineup := &models.Lineup{Team1Starting: "Рая, Салиба"}

	analysis, err := a.AnalyzeMatch(context.Background(), fixture, lineup)
	if err != nil {
		t.Fatalf("AnalyzeMatch: %v", err)
	}
	if analysis.Bet != "П1 + ТБ 1.5" {
		t.Errorf("bet = %q", analysis.Bet)
	}
	if analysis.BetConfidence != 7 {
		t.Errorf("betConfidence = %v", analysis.BetConfidence)
	}
	if analysis.Team1Starting != "Рая, Салиба" {
		t.Errorf("lineup not echoed into payload: %q", analysis.Team1Starting)
	}
}

func TestAnalyzeMatchHTTPError(t *testing.T) {
	srv := httptest.NewServer(chatHandler(t, http.StatusPaymentRequired, `{"error": "insufficient balance"}`))
	defer srv.Close()

	a := testAdapter(srv)
	_, err := a.AnalyzeMatch(context.Background(), models.Fixture{}, nil)

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %v", err)
	}
	if httpErr.Status != http.StatusPaymentRequired {
		t.Errorf("status = %d", httpErr.Status)
	}
	if httpErr.Body != `{"error": "insufficient balance"}` {
		t.Errorf("body not preserved verbatim: %q", httpErr.Body)
	}
}

func TestAnalyzeMatchParseError(t *testing.T) {
	srv := httptest.NewServer(chatHandler(t, http.StatusOK, "к сожалению, я не могу помочь с этим"))
	defer srv.Close()

	a := testAdapter(srv)
	_, err := a.AnalyzeMatch(context.Background(), models.Fixture{}, nil)
	if !errors.Is(err, ErrProviderParse) {
		t.Fatalf("expected ErrProviderParse, got %v", err)
	}
}

func TestParseFixtures(t *testing.T) {
	content := `{"matches": [
		{"leagueName": "Premier League", "leagueRussianName": "Англия. Премьер-лига",
		 "homeTeam": "Манчестер Юнайтед", "awayTeam": "Ливерпуль", "time": "19:30",
		 "odds": {"w1": 2.5, "draw": "3.80", "w2": 2.9}},
		{"leagueName": "La Liga", "leagueRussianName": "Испания. Примера",
		 "homeTeam": "Барселона", "awayTeam": "Реал Мадрид", "time": ""}
	]}`
	srv := httptest.NewServer(chatHandler(t, http.StatusOK, content))
	defer srv.Close()

	a := testAdapter(srv)
	parsed, err := a.ParseFixtures(context.Background(), "raw text", "2026-08-31")
	if err != nil {
		t.Fatalf("ParseFixtures: %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("got %d matches", len(parsed))
	}

	first := parsed[0]
	if first.HomeTeam != "Манчестер Юнайтед" || first.AwayTeam != "Ливерпуль" {
		t.Errorf("teams = %q vs %q", first.HomeTeam, first.AwayTeam)
	}
	if first.Odds == nil {
		t.Fatal("expected odds on the first match")
	}
	// Numeric and string odds both survive as strings.
	if first.Odds.W1 != "2.5" || first.Odds.Draw != "3.80" || first.Odds.W2 != "2.9" {
		t.Errorf("odds = %+v", first.Odds)
	}

	if parsed[1].Odds != nil {
		t.Error("second match should have no odds")
	}
	if parsed[1].Time != "" {
		t.Errorf("time = %q", parsed[1].Time)
	}
}

func TestParseFixturesEmptyResult(t *testing.T) {
	srv := httptest.NewServer(chatHandler(t, http.StatusOK, `{"matches": []}`))
	defer srv.Close()

	a := testAdapter(srv)
	parsed, err := a.ParseFixtures(context.Background(), "garbage", "2026-08-31")
	if err != nil {
		t.Fatalf("empty result must not be an error: %v", err)
	}
	if len(parsed) != 0 {
		t.Errorf("got %d matches", len(parsed))
	}
}

func TestRegistryBuild(t *testing.T) {
	reg, err := LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	providers, parser, err := reg.Build(NewClient("", "k", "", ""))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(providers) != 7 {
		t.Errorf("got %d providers", len(providers))
	}
	if parser == nil {
		t.Fatal("no parser designated")
	}

	seen := map[string]bool{}
	for _, p := range providers {
		if seen[p.ID()] {
			t.Errorf("duplicate provider id %s", p.ID())
		}
		seen[p.ID()] = true
	}
	for _, id := range []string{"gemini", "qwen", "deepseek", "zai", "kimi", "mai", "llama"} {
		if !seen[id] {
			t.Errorf("missing provider %s", id)
		}
	}
}
