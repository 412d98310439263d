package handler

import (
	"context"

	"jobstream/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
}

// Health reports per-dependency status. The cache is optional, so a
// degraded cache never fails the check; a dead database does.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	checks := map[string]string{
		"database": "ok",
		"cache":    "ok",
	}

	status := fiber.StatusOK
	if h.db != nil {
		if err := h.db.Ping(c.Context()); err != nil {
			checks["database"] = err.Error()
			status = fiber.StatusServiceUnavailable
		}
	}
	if h.cache != nil {
		if err := h.cache.Ping(c.Context()); err != nil {
			checks["cache"] = "degraded"
		}
	}

	if status != fiber.StatusOK {
		return response.Error(c, status, "unhealthy", checks)
	}
	return response.Success(c, status, response.MessageOK, checks)
}
