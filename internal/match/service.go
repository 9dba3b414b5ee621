// Package match turns pasted free-text fixture listings into grouped,
// priority-sorted leagues via the designated parsing backend.
package match

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dthen/ai-football/internal/ai"
	"github.com/dthen/ai-football/internal/models"
)

var (
	// ErrEmptyInput means the user submitted no fixture text. Reported
	// before any network call.
	ErrEmptyInput = errors.New("пожалуйста, вставьте список матчей")

	// ErrNoFixtures means parsing succeeded but recognized nothing.
	// Distinct from a hard parse failure.
	ErrNoFixtures = errors.New("не удалось распознать матчи из предоставленного текста")
)

// Service is the match parsing service.
type Service struct {
	parser ai.FixtureParser

	// now is swappable in tests; ids derive from it.
	now func() time.Time
}

func NewService(parser ai.FixtureParser) *Service {
	return &Service{
		parser: parser,
		now:    time.Now,
	}
}

// Parse extracts fixtures for the given ISO date and groups them into
// sorted leagues. A zero-fixture result returns ErrNoFixtures; callers
// treat it as an inline condition, not a failure.
func (s *Service) Parse(ctx context.Context, rawText, date string) ([]models.League, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, ErrEmptyInput
	}

	parsed, err := s.parser.ParseFixtures(ctx, rawText, date)
	if err != nil {
		return nil, err
	}
	if len(parsed) == 0 {
		log.Printf("match: no fixtures recognized in %d bytes of input", len(rawText))
		return nil, ErrNoFixtures
	}

	fixtures := s.assignIDs(parsed, date)
	return s.groupLeagues(fixtures), nil
}

// assignIDs gives every fixture and team a session-unique id derived
// from the current time plus an offset, so duplicate team-name pairs in
// one batch still get distinct identities.
func (s *Service) assignIDs(parsed []ai.ParsedMatch, date string) []models.Fixture {
	base := s.now().UnixMilli()
	fixtures := make([]models.Fixture, 0, len(parsed))
	for i, m := range parsed {
		fixtures = append(fixtures, models.Fixture{
			ID:                base + int64(i),
			LeagueName:        m.LeagueName,
			LeagueRussianName: m.LeagueRussianName,
			HomeTeam:          models.Team{ID: base + int64(i) + 1000, Name: m.HomeTeam},
			AwayTeam:          models.Team{ID: base + int64(i) + 2000, Name: m.AwayTeam},
			Date:              date,
			Time:              m.Time,
			Odds:              m.Odds,
		})
	}
	return fixtures
}

// groupLeagues buckets fixtures by (name, russian name), preserving the
// order of first occurrence, then sorts the groups: prioritized leagues
// by priority index, the rest after them by collated display name.
func (s *Service) groupLeagues(fixtures []models.Fixture) []models.League {
	var leagues []models.League
	index := map[string]int{}
	for _, f := range fixtures {
		key := f.LeagueName + "|" + f.LeagueRussianName
		i, ok := index[key]
		if !ok {
			i = len(leagues)
			index[key] = i
			leagues = append(leagues, models.League{
				Name:        f.LeagueName,
				RussianName: f.LeagueRussianName,
			})
		}
		leagues[i].Fixtures = append(leagues[i].Fixtures, f)
	}

	// Collators carry mutable iterator state, so each sort gets its own
	// instead of sharing one across concurrent requests.
	coll := collate.New(language.Russian)
	sort.SliceStable(leagues, func(i, j int) bool {
		pi, iOK := priorityIndex[leagues[i].Name]
		pj, jOK := priorityIndex[leagues[j].Name]
		switch {
		case iOK && jOK:
			return pi < pj
		case iOK:
			return true
		case jOK:
			return false
		default:
			return coll.CompareString(leagues[i].RussianName, leagues[j].RussianName) < 0
		}
	})

	return leagues
}
