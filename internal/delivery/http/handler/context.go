package handler

import (
	"jobstream/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// userIDFromCtx reads the authenticated user id stored by the auth
// middleware. Returns an AppError when the route was registered
// without the middleware or the token carried no subject.
func userIDFromCtx(c fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(middleware.CtxUserIDKey)
	id, ok := v.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return id, nil
}
