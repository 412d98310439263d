package handler

import (
	"errors"

	"jobstream/internal/delivery/http/middleware"
	"jobstream/internal/domain/settings"
	"jobstream/internal/pkg/response"
	"jobstream/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SettingsHandler struct {
	uc *usecase.SettingsUsecase
}

func NewSettingsHandler(uc *usecase.SettingsUsecase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

func (h *SettingsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Get)
	r.Patch("/", h.Update)
	r.Post("/reset", h.Reset)
}

func (h *SettingsHandler) Get(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, h.uc.Get(c.Context(), userID))
}

func (h *SettingsHandler) Update(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	var patch settings.Patch
	if err := c.Bind().Body(&patch); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.Update(c.Context(), userID, patch)
	if err != nil {
		return mapSettingsError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, updated)
}

func (h *SettingsHandler) Reset(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	restored, err := h.uc.Reset(c.Context(), userID)
	if err != nil {
		return mapSettingsError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, restored)
}

func mapSettingsError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, usecase.ErrSettingsUpdateFailed) {
		return middleware.NewAppError(fiber.StatusBadGateway, usecase.ErrSettingsUpdateFailed.Error(), nil, err)
	}
	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
}
