// Command analyze runs one parse-and-analyze batch from the terminal:
// it reads a fixture listing from a file, fans the analysis out over
// the chosen models and prints the settled result table.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"

	"github.com/dthen/ai-football/internal/ai"
	"github.com/dthen/ai-football/internal/analysis"
	"github.com/dthen/ai-football/internal/config"
	"github.com/dthen/ai-football/internal/match"
	"github.com/dthen/ai-football/internal/models"
)

// splitIDs parses the -providers flag, tolerating spaces around commas.
func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func main() {
	file := flag.String("file", "", "path to a text file with the fixture listing")
	date := flag.String("date", time.Now().Format("2006-01-02"), "ISO date of the fixtures")
	providerIDs := flag.String("providers", "gemini", "comma-separated provider ids")
	flag.Parse()

	if *file == "" {
		log.Fatal("usage: analyze -file fixtures.txt [-date 2026-08-31] [-providers gemini,qwen]")
	}

	_ = godotenv.Load()
	cfg := config.Load()

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal(err)
	}

	registry, err := ai.LoadRegistry()
	if err != nil {
		log.Fatal(err)
	}
	client := ai.NewClient(cfg.BaseURL, cfg.APIKey, cfg.Referer, cfg.Title)
	providers, parser, err := registry.Build(client)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	leagues, err := match.NewService(parser).Parse(ctx, string(raw), *date)
	if err != nil {
		log.Fatal(err)
	}

	var fixtures []models.Fixture
	for _, l := range leagues {
		fixtures = append(fixtures, l.Fixtures...)
	}
	log.Printf("Recognized %d matches in %d leagues", len(fixtures), len(leagues))

	batch, err := analysis.NewOrchestrator(providers).Run(ctx, fixtures, splitIDs(*providerIDs), nil)
	if err != nil {
		log.Fatal(err)
	}
	batch.Wait()

	names := make(map[int64]models.Fixture, len(fixtures))
	for _, f := range fixtures {
		names[f.ID] = f
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Match", "League", "Model", "Status", "Bet", "Confidence"})

	for fid, row := range batch.Table() {
		f := names[fid]
		matchName := f.HomeTeam.Name + " - " + f.AwayTeam.Name
		for pid, res := range row {
			switch res.Status {
			case analysis.StatusSuccess:
				t.AppendRow(table.Row{matchName, f.LeagueRussianName, pid, "ok", res.Data.Bet, fmt.Sprintf("%g/10", res.Data.BetConfidence)})
			default:
				t.AppendRow(table.Row{matchName, f.LeagueRussianName, pid, "failed", res.Error, ""})
			}
		}
	}
	t.Render()
}
