package match

// majorLeaguePriority orders the leagues shown first, most important
// first. Leagues absent from this list sort after all of these.
var majorLeaguePriority = []string{
	// International club
	"UEFA Champions League",
	"UEFA Champions League Qualification",
	"UEFA Europa League",
	"UEFA Europa League Qualification",
	"UEFA Conference League",
	"UEFA Conference League Qualification",
	"Copa Libertadores",
	"Copa Sudamericana",

	// International country
	"FIFA World Cup",
	"UEFA European Championship",
	"Copa América",

	// Top European leagues
	"Premier League",
	"La Liga",
	"Bundesliga",
	"Serie A",
	"Ligue 1",

	// Other major European leagues
	"Eredivisie",
	"Primeira Liga",
	"Süper Lig",
	"Championship",
	"Russian Premier League",

	// Americas
	"Major League Soccer",
	"Brasileirão Série A",
	"Liga MX",
	"Argentine Primera División",

	// Asia
	"Saudi Pro League",
	"J1 League",
	"K League 1",
}

var priorityIndex = func() map[string]int {
	m := make(map[string]int, len(majorLeaguePriority))
	for i, name := range majorLeaguePriority {
		m[name] = i
	}
	return m
}()
