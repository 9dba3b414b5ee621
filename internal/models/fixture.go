package models

// Team is one side of a fixture.
type Team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Odds holds the bookmaker prices for the three main outcomes.
// Values may arrive as numbers or strings depending on the source text,
// so they are kept as raw strings and converted on demand.
type Odds struct {
	W1   string `json:"w1"`
	Draw string `json:"draw"`
	W2   string `json:"w2"`
}

// Fixture is one scheduled match. Immutable after parsing; the ID is
// unique within a session and never reused for a different match.
type Fixture struct {
	ID                int64  `json:"id"`
	LeagueName        string `json:"leagueName"`
	LeagueRussianName string `json:"leagueRussianName"`
	HomeTeam          Team   `json:"homeTeam"`
	AwayTeam          Team   `json:"awayTeam"`
	Date              string `json:"date"`
	Time              string `json:"time"`
	Odds              *Odds  `json:"odds,omitempty"`
}

// League groups the fixtures of one tournament for display.
type League struct {
	Name        string    `json:"name"`
	RussianName string    `json:"russianName"`
	Fixtures    []Fixture `json:"matches"`
}
