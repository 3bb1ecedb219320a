package api

import (
	"context"
	"time"

	"github.com/Tresillo2017/classlimit/core"
	"github.com/bytedance/sonic"
	"github.com/go-kit/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
)

type ServerConfig struct {
	Logger     log.Logger
	ListenAddr string
}

// Server exposes a planner over HTTP. It plays the part of the display and
// file-exchange collaborators: every route maps to one user intent.
type Server struct {
	ServerConfig
	app     *fiber.App
	planner *core.Planner
}

func NewServer(cfg ServerConfig, planner *core.Planner) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.NewNopLogger()
	}

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           90 * time.Second,
	})

	s := &Server{
		ServerConfig: cfg,
		app:          app,
		planner:      planner,
	}

	app.Use(recover.New())
	app.Use(s.requestLogger)
	s.routes()

	return s
}

func (s *Server) routes() {
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	s.app.Get("/subjects", s.handleListSubjects)
	s.app.Post("/subjects", s.handleAddSubject)
	s.app.Delete("/subjects/:id", s.handleRemoveSubject)
	s.app.Post("/subjects/:id/skips/increment", s.handleSkip(s.planner.IncrementSkips))
	s.app.Post("/subjects/:id/skips/decrement", s.handleSkip(s.planner.DecrementSkips))
	s.app.Post("/subjects/:id/skips/reset", s.handleSkip(s.planner.ResetSkips))

	s.app.Get("/config", s.handleGetConfig)
	s.app.Put("/config", s.handlePutConfig)
	s.app.Post("/calculate", s.handleCalculate)
	s.app.Post("/reset", s.handleResetAll)

	s.app.Get("/export", s.handleExport)
	s.app.Post("/import", s.handleImport)

	s.app.Get("/onboarding", s.handleGetOnboarding)
	s.app.Post("/onboarding", s.handleMarkOnboarding)
}

// App is the underlying fiber app, mostly useful for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() error {
	s.Logger.Log("msg", "JSON API server running", "addr", s.ListenAddr)
	return s.app.Listen(s.ListenAddr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) requestLogger(c *fiber.Ctx) error {
	id := c.Get("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}
	c.Set("X-Request-ID", id)

	start := time.Now()
	err := c.Next()

	s.Logger.Log(
		"msg", "request",
		"id", id,
		"method", c.Method(),
		"path", c.OriginalURL(),
		"status", c.Response().StatusCode(),
		"dur", time.Since(start))

	return err
}
