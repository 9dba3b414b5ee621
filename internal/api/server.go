package api

import (
	"context"
	"errors"
	"html"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/microcosm-cc/bluemonday"

	"github.com/dthen/ai-football/internal/ai"
	"github.com/dthen/ai-football/internal/analysis"
	"github.com/dthen/ai-football/internal/auth"
	"github.com/dthen/ai-football/internal/config"
	"github.com/dthen/ai-football/internal/match"
	"github.com/dthen/ai-football/internal/models"
	"github.com/dthen/ai-football/internal/report"
)

type Server struct {
	Echo         *echo.Echo
	AuthService  *auth.Service
	Matches      *match.Service
	Orchestrator *analysis.Orchestrator
	Batches      *analysis.Store

	providers []ai.Provider
	parserID  string
	sanitizer *bluemonday.Policy
}

func NewServer(cfg config.Config) (*Server, error) {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	registry, err := ai.LoadRegistry()
	if err != nil {
		return nil, err
	}
	client := ai.NewClient(cfg.BaseURL, cfg.APIKey, cfg.Referer, cfg.Title)
	providers, parser, err := registry.Build(client)
	if err != nil {
		return nil, err
	}

	batches, err := analysis.NewStore(cfg.BatchStoreSize)
	if err != nil {
		return nil, err
	}

	parserID := ""
	for _, pc := range registry.Providers {
		if pc.Parser {
			parserID = pc.ID
			break
		}
	}

	s := &Server{
		Echo:         e,
		AuthService:  auth.NewService(cfg.Login, cfg.PasswordHash),
		Matches:      match.NewService(parser),
		Orchestrator: analysis.NewOrchestrator(providers),
		Batches:      batches,
		providers:    providers,
		parserID:     parserID,
		sanitizer:    bluemonday.StrictPolicy(),
	}

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.Echo.GET("/health", s.handleHealth)

	api := s.Echo.Group("/api/v1")
	api.POST("/auth/login", s.handleLogin)

	protected := api.Group("")
	protected.Use(s.AuthService.Middleware)
	protected.GET("/providers", s.handleProviders)
	protected.POST("/matches/parse", s.handleParseMatches)
	protected.POST("/analysis", s.handleStartAnalysis)
	protected.GET("/analysis/:id", s.handleGetBatch)
	protected.POST("/analysis/:id/report", s.handleReport)
}

func (s *Server) Start(port string) error {
	return s.Echo.Start(":" + port)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLogin(c echo.Context) error {
	var req auth.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	resp, err := s.AuthService.Login(req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCreds) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, resp)
}

type providerView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Parser bool   `json:"parser"`
}

func (s *Server) handleProviders(c echo.Context) error {
	out := make([]providerView, 0, len(s.providers))
	for _, p := range s.providers {
		out = append(out, providerView{ID: p.ID(), Name: p.Name(), Parser: p.ID() == s.parserID})
	}
	return c.JSON(http.StatusOK, map[string]any{"providers": out})
}

type parseRequest struct {
	Text string `json:"text"`
	Date string `json:"date"`
}

func (s *Server) handleParseMatches(c echo.Context) error {
	var req parseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if req.Date == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Не указана дата."})
	}

	// Pasted text often comes straight from a bookmaker page; strip any
	// markup before it reaches a prompt.
	text := html.UnescapeString(s.sanitizer.Sanitize(req.Text))

	leagues, err := s.Matches.Parse(c.Request().Context(), text, req.Date)
	if err != nil {
		switch {
		case errors.Is(err, match.ErrEmptyInput):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Пожалуйста, вставьте список матчей."})
		case errors.Is(err, match.ErrNoFixtures):
			return c.JSON(http.StatusOK, map[string]any{
				"leagues": []models.League{},
				"message": "Не удалось распознать матчи из предоставленного текста. Проверьте формат или попробуйте снова.",
			})
		default:
			log.Printf("api: parse matches failed: %v", err)
			return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
		}
	}

	return c.JSON(http.StatusOK, map[string]any{"leagues": leagues})
}

type analyzeRequest struct {
	Matches   []models.Fixture         `json:"matches"`
	Providers []string                 `json:"providers"`
	Lineups   map[int64]*models.Lineup `json:"lineups"`
}

func (s *Server) handleStartAnalysis(c echo.Context) error {
	var req analyzeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	// The batch deliberately outlives the request: started calls run to
	// completion even if the client navigates away.
	batch, err := s.Orchestrator.Run(context.Background(), req.Matches, req.Providers, req.Lineups)
	if err != nil {
		switch {
		case errors.Is(err, analysis.ErrNoMatchesSelected):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Выберите хотя бы один матч для анализа."})
		case errors.Is(err, analysis.ErrNoProvidersSelected):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Выберите хотя бы одну модель ИИ."})
		default:
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
	}

	s.Batches.Add(batch)
	return c.JSON(http.StatusAccepted, map[string]string{"id": batch.ID})
}

func (s *Server) handleGetBatch(c echo.Context) error {
	batch, ok := s.Batches.Get(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Batch not found"})
	}
	return c.JSON(http.StatusOK, batchView(batch))
}

type reportRequest struct {
	FixtureID int64  `json:"fixtureId"`
	Provider  string `json:"provider"`
}

func (s *Server) handleReport(c echo.Context) error {
	batch, ok := s.Batches.Get(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Batch not found"})
	}

	var req reportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	var fixture *models.Fixture
	for i := range batch.Fixtures {
		if batch.Fixtures[i].ID == req.FixtureID {
			fixture = &batch.Fixtures[i]
			break
		}
	}
	if fixture == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Матч не найден в этом батче."})
	}

	providerID := req.Provider
	if providerID == "" {
		providerID = report.ActiveProvider(batch.Table()[fixture.ID], batch.Providers)
	}
	res, ok := batch.Result(fixture.ID, providerID)
	if !ok || res.Status != analysis.StatusSuccess || res.Data == nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Нет данных"})
	}

	name := providerID
	if p, ok := s.Orchestrator.Provider(providerID); ok {
		name = p.Name()
	}
	return c.JSON(http.StatusOK, map[string]string{
		"report": report.Generate(*fixture, name, res.Data),
	})
}
