package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/gogpu/captcha"
	"github.com/gogpu/captcha/config"
)

// Server issues and verifies captcha challenges over HTTP. One generator
// per difficulty tier is built at startup; generators serialize their own
// sample generation, so handlers stay concurrency-safe without extra
// locking here.
type Server struct {
	app   *fiber.App
	store *ChallengeStore
	gens  map[captcha.Tier]*captcha.Generator
}

// New builds the HTTP application from the environment-driven settings.
func New(cfg *config.Server) (*Server, error) {
	gens := make(map[captcha.Tier]*captcha.Generator, 3)
	for _, tier := range []captcha.Tier{captcha.TierPart2, captcha.TierPart3, captcha.TierPart4} {
		gen, err := captcha.New(cfg.Width, cfg.Height, tier, captcha.WithFonts(cfg.FontPaths...))
		if err != nil {
			return nil, fmt.Errorf("server: build %s generator: %w", tier, err)
		}
		gens[tier] = gen
	}

	app := fiber.New(fiber.Config{
		AppName: "captcha service",
	})
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
	}))

	s := &Server{
		app:   app,
		store: NewChallengeStore(cfg.ChallengeTTL),
		gens:  gens,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.app.Get("/healthz", s.handleHealth)
	s.app.Get("/captcha/:tier", s.handleIssue)
	s.app.Post("/captcha/verify", s.handleVerify)
	s.app.Get("/preview/:tier", s.handlePreview)
}

// App exposes the underlying fiber application, mainly for tests.
func (s *Server) App() *fiber.App { return s.app }

// Store exposes the challenge store.
func (s *Server) Store() *ChallengeStore { return s.store }

// Listen serves on addr until Shutdown or a listener error.
func (s *Server) Listen(addr string) error {
	captcha.Logger().Info("server listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

type issueResponse struct {
	ID        string    `json:"id"`
	Tier      string    `json:"tier"`
	Image     string    `json:"image"`
	ExpiresAt time.Time `json:"expires_at"`
}

type verifyRequest struct {
	ID     string `json:"id"`
	Answer string `json:"answer"`
}

type verifyResponse struct {
	Valid bool `json:"valid"`
}

func (s *Server) handleHealth(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// handleIssue renders a fresh challenge, stores the answer server-side
// and returns the image as a base64 data URI.
func (s *Server) handleIssue(c fiber.Ctx) error {
	gen, ok := s.gens[captcha.Tier(c.Params("tier"))]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown tier: use part2, part3 or part4",
		})
	}

	png, text, err := gen.Generate("")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "generation failed"})
	}

	id, expires := s.store.Put(text)
	captcha.Logger().Debug("challenge issued", "id", id, "tier", string(gen.Tier()))

	return c.JSON(issueResponse{
		ID:        id,
		Tier:      string(gen.Tier()),
		Image:     "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		ExpiresAt: expires,
	})
}

// handleVerify consumes a challenge and compares the answer
// case-insensitively. Unknown, expired and replayed ids all report
// invalid without distinguishing why.
func (s *Server) handleVerify(c fiber.Ctx) error {
	var req verifyRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if req.ID == "" || req.Answer == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id and answer required"})
	}

	answer, ok := s.store.Consume(req.ID)
	valid := ok && strings.EqualFold(answer, req.Answer)
	captcha.Logger().Debug("challenge verified", "id", req.ID, "valid", valid)

	return c.JSON(verifyResponse{Valid: valid})
}

// handlePreview returns a raw PNG, optionally for explicit ?text=, for
// eyeballing what each tier looks like.
func (s *Server) handlePreview(c fiber.Ctx) error {
	gen, ok := s.gens[captcha.Tier(c.Params("tier"))]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown tier: use part2, part3 or part4",
		})
	}

	png, _, err := gen.Generate(c.Query("text"))
	if err != nil {
		var invalid *captcha.InvalidTextError
		if errors.As(err, &invalid) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": invalid.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "generation failed"})
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
