package telemetry

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"go.uber.org/zap"
)

// Config configures the telemetry server.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server serves Store contents over HTTP.
type Server struct {
	cfg   Config
	app   *fiber.App
	store *Store
	log   *zap.Logger
}

// NewServer builds the fiber app and registers its routes.
func NewServer(cfg Config, store *Store, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{cfg: cfg, store: store, log: log}

	s.app = fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		AppName:      "teardown telemetry",
	})
	s.app.Use(recover.New())
	s.app.Use(s.requestLog)

	s.app.Get("/health/live", liveness)

	api := s.app.Group("/api/v1")
	api.Get("/state", s.state)
	api.Get("/plan", s.plan)
	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start listens on the configured address and blocks until shutdown.
func (s *Server) Start() error {
	s.log.Info("telemetry listening", zap.String("addr", s.cfg.Addr))
	return s.app.Listen(s.cfg.Addr, fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) requestLog(c fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.log.Debug("telemetry request",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("latency", time.Since(start)),
	)
	return err
}

func liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

func (s *Server) state(c fiber.Ctx) error {
	return c.JSON(s.store.State())
}

func (s *Server) plan(c fiber.Ctx) error {
	view, ok := s.store.Plan()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no plan loaded",
		})
	}
	return c.JSON(view)
}
