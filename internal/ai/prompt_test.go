package ai

import (
	"strings"
	"testing"

	"github.com/dthen/ai-football/internal/models"
)

func TestBetInstructionBands(t *testing.T) {
	tests := []struct {
		name     string
		odds     *models.Odds
		contains string
		exact    bool
	}{
		{
			name:     "short price home favorite selects rule 1",
			odds:     &models.Odds{W1: "1.20", Draw: "6.0", W2: "4.0"},
			contains: "ПРАВИЛО 1",
		},
		{
			name:     "short price away favorite selects rule 1",
			odds:     &models.Odds{W1: "7.5", Draw: "5.0", W2: "1.15"},
			contains: "ПРАВИЛО 1",
		},
		{
			name:     "mid price selects rule 2",
			odds:     &models.Odds{W1: "1.85", Draw: "3.5", W2: "4.2"},
			contains: "ПРАВИЛО 2",
		},
		{
			name:     "band boundaries are inclusive",
			odds:     &models.Odds{W1: "1.30", Draw: "4.8", W2: "3.9"},
			contains: "ПРАВИЛО 1",
		},
		{
			name:     "neither band returns the sentinel",
			odds:     &models.Odds{W1: "2.5", Draw: "3.3", W2: "2.5"},
			contains: NoBet,
			exact:    true,
		},
		{
			name:     "no odds returns the sentinel",
			odds:     nil,
			contains: NoBet,
			exact:    true,
		},
		{
			name:     "unparseable odds return the sentinel",
			odds:     &models.Odds{W1: "-", Draw: "-", W2: "-"},
			contains: NoBet,
			exact:    true,
		},
		{
			name:     "comma decimal separator is tolerated",
			odds:     &models.Odds{W1: "1,20", Draw: "6,0", W2: "4,0"},
			contains: "ПРАВИЛО 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BetInstruction(tt.odds)
			if tt.exact {
				if got != tt.contains {
					t.Errorf("expected literal %q, got %q", tt.contains, got)
				}
				return
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("instruction does not contain %q:\n%s", tt.contains, got)
			}
		})
	}
}

func TestBetInstructionRulesAreExclusive(t *testing.T) {
	// A short-band price wins even when the other side is mid-band.
	got := BetInstruction(&models.Odds{W1: "1.20", Draw: "5.5", W2: "1.85"})
	if !strings.Contains(got, "ПРАВИЛО 1") || strings.Contains(got, "ПРАВИЛО 2") {
		t.Errorf("expected rule 1 only, got:\n%s", got)
	}
}

func TestAnalysisPromptEmbedsFixture(t *testing.T) {
	fixture := models.Fixture{
		LeagueName:        "La Liga",
		LeagueRussianName: "Ла Лига",
		HomeTeam:          models.Team{ID: 1, Name: "Барселона"},
		AwayTeam:          models.Team{ID: 2, Name: "Реал Мадрид"},
		Time:              "22:00",
		Odds:              &models.Odds{W1: "1.85", Draw: "3.50", W2: "4.20"},
	}
	lineup := &models.Lineup{Team1Starting: "Тер Штеген, Кунде"}

	prompt := AnalysisPrompt(fixture, lineup)

	for _, want := range []string{
		"Барселона vs Реал Мадрид",
		"Ла Лига (La Liga)",
		"Odds (W1/D/W2): 1.85 / 3.50 / 4.20",
		"Тер Штеген, Кунде",
		"ПРАВИЛО 2",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if !strings.Contains(prompt, "Not provided") {
		t.Error("missing lineup fields should render as Not provided")
	}
}

func TestAnalysisPromptWithoutOdds(t *testing.T) {
	fixture := models.Fixture{
		HomeTeam: models.Team{Name: "A"},
		AwayTeam: models.Team{Name: "B"},
	}
	prompt := AnalysisPrompt(fixture, nil)
	if !strings.Contains(prompt, "Odds not provided") {
		t.Error("expected odds-not-provided marker")
	}
	if !strings.Contains(prompt, NoBet) {
		t.Error("expected the no-bet sentinel as the bet instruction")
	}
}

func TestParsePromptEmbedsInput(t *testing.T) {
	prompt := ParsePrompt("Англия. Премьер-лига\nАрсенал - Челси 2.1 3.4 3.6", "2026-08-31")
	if !strings.Contains(prompt, "2026-08-31") {
		t.Error("prompt missing the date")
	}
	if !strings.Contains(prompt, "Арсенал - Челси") {
		t.Error("prompt missing the raw text")
	}
}
