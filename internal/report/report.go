// Package report renders a settled analysis as a copyable plain-text
// report with a fixed section layout.
package report

import (
	"fmt"
	"strings"

	"github.com/dthen/ai-football/internal/analysis"
	"github.com/dthen/ai-football/internal/models"
)

const noData = "Нет данных"

func orNoData(s string) string {
	if strings.TrimSpace(s) == "" {
		return noData
	}
	return s
}

func orNotSet(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Не указан"
	}
	return s
}

// ActiveProvider picks the initially shown tab for one fixture row:
// the first provider (in selection order) with a success entry, else
// the first with any settled entry, else "".
func ActiveProvider(row map[string]analysis.PairResult, order []string) string {
	for _, id := range order {
		if res, ok := row[id]; ok && res.Status == analysis.StatusSuccess {
			return id
		}
	}
	for _, id := range order {
		if res, ok := row[id]; ok && res.Status != analysis.StatusPending {
			return id
		}
	}
	return ""
}

// Generate builds the report text for one fixture from one provider's
// success payload.
func Generate(fixture models.Fixture, providerName string, a *models.Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🔹 Матч: %s – %s\n", fixture.HomeTeam.Name, fixture.AwayTeam.Name)
	fmt.Fprintf(&b, "📍 Турнир: %s (%s) | Дата: %s\n", fixture.LeagueRussianName, fixture.LeagueName, fixture.Date)

	if a.Team1Starting != "" || a.Team1Injuries != "" {
		fmt.Fprintf(&b, "🧑‍⚕️ СОСТАВЫ И ОТСУТСТВУЮЩИЕ:\n")
		fmt.Fprintf(&b, "%s:\n", fixture.HomeTeam.Name)
		fmt.Fprintf(&b, "  - Старт: %s\n", orNotSet(a.Team1Starting))
		fmt.Fprintf(&b, "  - Травмы: %s\n", orNotSet(a.Team1Injuries))
		fmt.Fprintf(&b, "%s:\n", fixture.AwayTeam.Name)
		fmt.Fprintf(&b, "  - Старт: %s\n", orNotSet(a.Team2Starting))
		fmt.Fprintf(&b, "  - Травмы: %s\n", orNotSet(a.Team2Injuries))
	}

	fmt.Fprintf(&b, "📊 АНАЛИТИКА (от %s):\n", providerName)
	fmt.Fprintf(&b, "Сильные/слабые стороны %s: %s\n", fixture.HomeTeam.Name, orNoData(a.StrengthWeaknessTeam1))
	fmt.Fprintf(&b, "Сильные/слабые стороны %s: %s\n", fixture.AwayTeam.Name, orNoData(a.StrengthWeaknessTeam2))

	fmt.Fprintf(&b, "🔥 ОЧНЫЕ ВСТРЕЧИ (H2H):\n%s\n", orNoData(a.H2H))
	fmt.Fprintf(&b, "⚔️ ТАКТИКА И МОТИВАЦИЯ:\n%s\n", orNoData(a.MotivationAndTactics))
	fmt.Fprintf(&b, "🌟 КЛЮЧЕВЫЕ ИГРОКИ:\n%s\n", orNoData(a.KeyPlayers))
	fmt.Fprintf(&b, "🔮 ПРОГНОЗ НА ХОД ИГРЫ:\n%s\n", orNoData(a.MatchPrediction))

	fmt.Fprintf(&b, "✅ ПРОГНОЗ И СТАВКИ:\n")
	fmt.Fprintf(&b, "Основная ставка: %s\n", orNoData(a.Bet))
	if a.BetConfidence > 0 {
		fmt.Fprintf(&b, "Уверенность: %g/10\n", a.BetConfidence)
	} else {
		fmt.Fprintf(&b, "Уверенность: N/A\n")
	}
	fmt.Fprintf(&b, "Альтернативные ставки:\n%s\n", altBetsSection(a.AltBets))
	fmt.Fprintf(&b, "Live-ставки: %s", orNoData(a.LiveBet))

	return squeezeBlankLines(b.String())
}

func altBetsSection(altBets []models.AltBet) string {
	if len(altBets) == 0 {
		return noData
	}
	lines := make([]string, 0, len(altBets))
	for _, ab := range altBets {
		lines = append(lines, fmt.Sprintf("- %s (Уверенность: %g/10)", ab.Bet, ab.Confidence))
	}
	return strings.Join(lines, "\n")
}

// squeezeBlankLines drops whitespace-only lines so optional sections
// never leave gaps in the copied text.
func squeezeBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
