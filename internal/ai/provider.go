package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/dthen/ai-football/internal/models"
)

// Provider is one external model backend capable of producing a match
// analysis. The orchestrator depends only on this interface.
type Provider interface {
	ID() string
	Name() string
	AnalyzeMatch(ctx context.Context, fixture models.Fixture, lineup *models.Lineup) (*models.Analysis, error)
}

// FixtureParser is the extra capability of the designated parsing
// backend: turning pasted free text into structured fixtures.
type FixtureParser interface {
	ParseFixtures(ctx context.Context, text, date string) ([]ParsedMatch, error)
}

// ParsedMatch is one fixture as extracted from raw text, before the
// match service assigns identifiers and a date.
type ParsedMatch struct {
	LeagueName        string
	LeagueRussianName string
	HomeTeam          string
	AwayTeam          string
	Time              string
	Odds              *models.Odds
}

// flexString accepts both JSON numbers and JSON strings, since odds
// arrive either way depending on the pasted source.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if string(b) == "null" {
		*f = ""
		return nil
	}
	*f = flexString(b)
	return nil
}

type parsedOdds struct {
	W1   flexString `json:"w1"`
	Draw flexString `json:"draw"`
	W2   flexString `json:"w2"`
}

type parsedMatchJSON struct {
	LeagueName        string      `json:"leagueName"`
	LeagueRussianName string      `json:"leagueRussianName"`
	HomeTeam          string      `json:"homeTeam"`
	AwayTeam          string      `json:"awayTeam"`
	Time              string      `json:"time"`
	Odds              *parsedOdds `json:"odds,omitempty"`
}

type parseEnvelope struct {
	Matches []parsedMatchJSON `json:"matches"`
}

// adapter wraps one backend behind the shared chat-completions client.
type adapter struct {
	id          string
	name        string
	model       string
	system      string
	temperature *float64
	maxTokens   int
	client      *Client
}

func (a *adapter) ID() string   { return a.id }
func (a *adapter) Name() string { return a.name }

func (a *adapter) messages(prompt string) []Message {
	if a.system != "" {
		return []Message{
			{Role: "system", Content: a.system},
			{Role: "user", Content: prompt},
		}
	}
	return []Message{{Role: "user", Content: prompt}}
}

// AnalyzeMatch performs a single analysis call. No retries: one failed
// attempt is the final outcome for the (fixture, provider) pair.
func (a *adapter) AnalyzeMatch(ctx context.Context, fixture models.Fixture, lineup *models.Lineup) (*models.Analysis, error) {
	content, err := a.client.ChatCompletion(ctx, a.name, a.model, a.messages(AnalysisPrompt(fixture, lineup)), a.temperature, a.maxTokens)
	if err != nil {
		return nil, err
	}

	var analysis models.Analysis
	if err := ExtractInto(content, &analysis); err != nil {
		log.Printf("ai: %s analysis parse failed: %v", a.id, err)
		return nil, fmt.Errorf("%w (%s): %v", ErrProviderParse, a.name, err)
	}

	echoLineup(&analysis, lineup)
	return &analysis, nil
}

// ParseFixtures extracts structured fixtures from pasted text. A zero
// result is valid; the caller decides how to surface it.
func (a *adapter) ParseFixtures(ctx context.Context, text, date string) ([]ParsedMatch, error) {
	content, err := a.client.ChatCompletion(ctx, a.name, a.model, a.messages(ParsePrompt(text, date)), a.temperature, a.maxTokens)
	if err != nil {
		return nil, err
	}

	var env parseEnvelope
	if err := ExtractInto(content, &env); err != nil {
		return nil, fmt.Errorf("%w (%s): %v", ErrProviderParse, a.name, err)
	}

	out := make([]ParsedMatch, 0, len(env.Matches))
	for _, m := range env.Matches {
		if strings.TrimSpace(m.HomeTeam) == "" || strings.TrimSpace(m.AwayTeam) == "" {
			continue
		}
		pm := ParsedMatch{
			LeagueName:        m.LeagueName,
			LeagueRussianName: m.LeagueRussianName,
			HomeTeam:          m.HomeTeam,
			AwayTeam:          m.AwayTeam,
			Time:              m.Time,
		}
		if m.Odds != nil {
			pm.Odds = &models.Odds{
				W1:   string(m.Odds.W1),
				Draw: string(m.Odds.Draw),
				W2:   string(m.Odds.W2),
			}
		}
		out = append(out, pm)
	}
	return out, nil
}

// echoLineup copies user-provided lineup hints into the payload so the
// presentation layer always sees what the analysis was based on, even
// when the model dropped the echoed fields.
func echoLineup(a *models.Analysis, lineup *models.Lineup) {
	if lineup == nil {
		return
	}
	if a.Team1Starting == "" {
		a.Team1Starting = lineup.Team1Starting
	}
	if a.Team1Subs == "" {
		a.Team1Subs = lineup.Team1Subs
	}
	if a.Team1Injuries == "" {
		a.Team1Injuries = lineup.Team1Injuries
	}
	if a.Team2Starting == "" {
		a.Team2Starting = lineup.Team2Starting
	}
	if a.Team2Subs == "" {
		a.Team2Subs = lineup.Team2Subs
	}
	if a.Team2Injuries == "" {
		a.Team2Injuries = lineup.Team2Injuries
	}
}
