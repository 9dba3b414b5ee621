package ai

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dthen/ai-football/internal/models"
)

// Odds bands for the deterministic bet rule. A decisive price inside
// the short band triggers rule 1, inside the mid band rule 2; anything
// else yields the no-bet sentinel.
const (
	shortBandLow  = 1.10
	shortBandHigh = 1.30
	midBandLow    = 1.70
	midBandHigh   = 2.00

	// NoBet is the literal the model must return when neither rule applies.
	NoBet = "Ставки нет"
)

func parsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

func inBand(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

// BetInstruction builds the main-bet rule text for a fixture. The rule
// is selected here from the decisive outcome prices; the selected text
// is transmitted to the model verbatim and never altered by adapters.
func BetInstruction(odds *models.Odds) string {
	if odds == nil {
		return NoBet
	}
	w1, ok1 := parsePrice(odds.W1)
	w2, ok2 := parsePrice(odds.W2)
	if !ok1 || !ok2 {
		return NoBet
	}

	switch {
	case inBand(w1, shortBandLow, shortBandHigh) || inBand(w2, shortBandLow, shortBandHigh):
		return fmt.Sprintf(`Ты — исполнитель правил для ставок. Твоя задача — вернуть ОДНУ строку с результатом, строго следуя ПРАВИЛУ 1. Не отклоняйся и не добавляй ничего лишнего.

Вот коэффициенты: П1=%s, П2=%s.

ПРАВИЛО 1 (коэффициент фаворита в диапазоне [1.10, 1.30]):
- На основе своего анализа выбери между 'ТБ 1.5' и 'ТМ 4.5'.
- Если фаворит П1, верни 'П1 + [выбранный тотал]'.
- Если фаворит П2, верни 'П2 + [выбранный тотал]'.
- Если считаешь ставку рискованной, добавь в конце ' (не рекомендовано)'.`, odds.W1, odds.W2)
	case inBand(w1, midBandLow, midBandHigh) || inBand(w2, midBandLow, midBandHigh):
		return fmt.Sprintf(`Ты — исполнитель правил для ставок. Твоя задача — вернуть ОДНУ строку с результатом, строго следуя ПРАВИЛУ 2. Не отклоняйся и не добавляй ничего лишнего.

Вот коэффициенты: П1=%s, П2=%s.

ПРАВИЛО 2 (коэффициент фаворита в диапазоне [1.70, 2.00]):
- На основе своего анализа выбери между 'ТБ 1.5' и 'ТМ 4.5'.
- Если фаворит П1, верни '1X и [выбранный тотал]'.
- Если фаворит П2, верни '2X и [выбранный тотал]'.
- Если считаешь ставку рискованной, добавь в конце ' (не рекомендовано)'.`, odds.W1, odds.W2)
	default:
		return NoBet
	}
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not provided"
	}
	return s
}

// AnalysisPrompt builds the single-match analysis prompt. The response
// schema asks for a bare JSON object; extraction still tolerates fences
// because not every model obeys.
func AnalysisPrompt(fixture models.Fixture, lineup *models.Lineup) string {
	oddsString := "Odds not provided"
	if fixture.Odds != nil {
		oddsString = fmt.Sprintf("Odds (W1/D/W2): %s / %s / %s", fixture.Odds.W1, fixture.Odds.Draw, fixture.Odds.W2)
	}
	if lineup == nil {
		lineup = &models.Lineup{}
	}

	return fmt.Sprintf(`You are a professional football analyst. Your task is to provide a detailed analysis for a SINGLE match in Russian.

Analyze THIS ONE match:
Match: %s vs %s
Tournament: %s (%s)
%s
Provided Lineup Info:
- %s:
  - Starting: %s
  - Subs: %s
  - Injuries/Absences: %s
- %s:
  - Starting: %s
  - Subs: %s
  - Injuries/Absences: %s

Your response MUST be a single, valid JSON object with the following schema. Be concise but informative.

Analysis object schema:
{
  "predictedScore": { "home": 1, "away": 0 },
  "winProbability": { "home": 55, "draw": 25, "away": 20 },
  "homeTeamLogoUrl": "Try to find a public URL for the home team's logo.",
  "awayTeamLogoUrl": "Try to find a public URL for the away team's logo.",
  "strengthWeaknessTeam1": "Analysis of team 1's strengths and weaknesses, including current form (in Russian).",
  "strengthWeaknessTeam2": "Analysis of team 2's strengths and weaknesses, including current form (in Russian).",
  "h2h": "Head-to-head analysis (in Russian).",
  "motivationAndTactics": "Motivation for both teams and expected tactics (in Russian).",
  "keyPlayers": "Key players who can influence the match outcome (in Russian).",
  "matchPrediction": "A narrative description of how the match is likely to unfold (in Russian).",
  "bet": %q,
  "betConfidence": "A numeric confidence score from 1 to 10 for the main bet.",
  "altBets": "Массив из 2-3 объектов. Основываясь на своем полном анализе, предложи интересные альтернативные ставки с указанием уверенности. Здесь используй свои аналитические способности, а не правила для основной ставки.",
  "liveBet": "Основываясь на динамике матча, предложи конкретные идеи для live-ставок (например, 'Если счет 1:0 к перерыву, рассмотреть ставку на...')."
}

Do not add any extra text, explanations, or markdown formatting. Just the JSON object.`,
		fixture.HomeTeam.Name, fixture.AwayTeam.Name,
		fixture.LeagueRussianName, fixture.LeagueName,
		oddsString,
		fixture.HomeTeam.Name,
		orNotProvided(lineup.Team1Starting), orNotProvided(lineup.Team1Subs), orNotProvided(lineup.Team1Injuries),
		fixture.AwayTeam.Name,
		orNotProvided(lineup.Team2Starting), orNotProvided(lineup.Team2Subs), orNotProvided(lineup.Team2Injuries),
		BetInstruction(fixture.Odds))
}

// ParsePrompt builds the fixture-list extraction prompt for a raw text
// blob pasted by the user.
func ParsePrompt(text, date string) string {
	return fmt.Sprintf(`You are an AI assistant that parses raw text containing football match data and converts it into a structured JSON format.
The user has provided a list of matches for the date %s. The text may contain league names, team names, match times, and betting odds for W1, Draw, and W2.
Your task is to parse this text and return a single JSON object with a "matches" key. Your entire response MUST be a single, valid JSON object.

INPUT EXAMPLE:
Испания. Примера
Барселона - Реал Мадрид 22:00 1.85 3.50 4.20
Англия. Премьер-лига
Манчестер Юнайтед - Ливерпуль 2.50 3.80 2.90

OUTPUT REQUIREMENTS:
1. The entire response MUST be a single, valid JSON object. Do not wrap it in markdown or add any commentary.
2. The schema for each match object must be: { "leagueName": "...", "leagueRussianName": "...", "homeTeam": "...", "awayTeam": "...", "time": "...", "odds": { "w1": ..., "draw": ..., "w2": ... } }.
3. Infer the official English 'leagueName' and provide the Russian 'leagueRussianName'. Use the name provided by the user for 'leagueRussianName'.
4. If betting odds (three numbers) are provided for a match, include the "odds" object. If not, omit the "odds" key entirely for that match.
5. The odds are always in the order: W1 (home win), X (draw), W2 (away win). They can be numbers or strings.
6. If a time is not provided, set "time" to an empty string.
7. Parse team names accurately.

Here is the user's text to parse:
%s`, date, text)
}
