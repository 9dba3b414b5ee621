package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Confidence is a 1 to 10 score. Models return it as a JSON number or
// a quoted string interchangeably, so decoding accepts both.
type Confidence float64

func (c *Confidence) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*c = 0
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return fmt.Errorf("confidence %q is not numeric", s)
	}
	*c = Confidence(v)
	return nil
}

// Score is a predicted final score.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// WinProbability holds the three outcome percentages as returned by the
// model. They are displayed as given and never renormalized.
type WinProbability struct {
	Home float64 `json:"home"`
	Draw float64 `json:"draw"`
	Away float64 `json:"away"`
}

// AltBet is an alternative betting option with its confidence score.
type AltBet struct {
	Bet        string     `json:"bet"`
	Confidence Confidence `json:"confidence"`
}

// Analysis is the structured result of one successful model call.
type Analysis struct {
	PredictedScore  *Score          `json:"predictedScore,omitempty"`
	WinProbability  *WinProbability `json:"winProbability,omitempty"`
	HomeTeamLogoURL string          `json:"homeTeamLogoUrl,omitempty"`
	AwayTeamLogoURL string          `json:"awayTeamLogoUrl,omitempty"`

	StrengthWeaknessTeam1 string `json:"strengthWeaknessTeam1,omitempty"`
	StrengthWeaknessTeam2 string `json:"strengthWeaknessTeam2,omitempty"`
	H2H                   string `json:"h2h,omitempty"`
	MotivationAndTactics  string `json:"motivationAndTactics,omitempty"`
	KeyPlayers            string `json:"keyPlayers,omitempty"`
	MatchPrediction       string `json:"matchPrediction,omitempty"`

	Bet           string     `json:"bet,omitempty"`
	BetConfidence Confidence `json:"betConfidence,omitempty"`
	AltBets       []AltBet   `json:"altBets,omitempty"`
	LiveBet       string     `json:"liveBet,omitempty"`

	// Lineup info echoed back from the user input.
	Team1Starting string `json:"team1Starting,omitempty"`
	Team1Subs     string `json:"team1Subs,omitempty"`
	Team1Injuries string `json:"team1Injuries,omitempty"`
	Team2Starting string `json:"team2Starting,omitempty"`
	Team2Subs     string `json:"team2Subs,omitempty"`
	Team2Injuries string `json:"team2Injuries,omitempty"`
}

// Lineup is the per-fixture lineup hints the user typed in before
// requesting an analysis. All fields are optional free text.
type Lineup struct {
	Team1Starting string `json:"team1Starting,omitempty"`
	Team1Subs     string `json:"team1Subs,omitempty"`
	Team1Injuries string `json:"team1Injuries,omitempty"`
	Team2Starting string `json:"team2Starting,omitempty"`
	Team2Subs     string `json:"team2Subs,omitempty"`
	Team2Injuries string `json:"team2Injuries,omitempty"`
}
