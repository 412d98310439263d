package handler

import (
	"errors"

	"jobstream/internal/delivery/http/middleware"
	"jobstream/internal/pkg/response"
	"jobstream/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type NotificationsHandler struct {
	uc *usecase.NotificationsUsecase
}

func NewNotificationsHandler(uc *usecase.NotificationsUsecase) *NotificationsHandler {
	return &NotificationsHandler{uc: uc}
}

func (h *NotificationsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/:id/read", h.MarkRead)
	r.Post("/read-all", h.MarkAllRead)
	r.Delete("/:id", h.Remove)
	r.Delete("/", h.ClearAll)
}

func (h *NotificationsHandler) List(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	items, unread, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return mapNotificationsError(err)
	}

	data := map[string]any{
		"notifications": items,
		"unread_count":  unread,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *NotificationsHandler) MarkRead(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	if err := h.uc.MarkRead(c.Context(), userID, c.Params("id")); err != nil {
		return mapNotificationsError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *NotificationsHandler) MarkAllRead(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	if err := h.uc.MarkAllRead(c.Context(), userID); err != nil {
		return mapNotificationsError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *NotificationsHandler) Remove(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	if err := h.uc.Remove(c.Context(), userID, c.Params("id")); err != nil {
		return mapNotificationsError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *NotificationsHandler) ClearAll(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	if err := h.uc.ClearAll(c.Context(), userID); err != nil {
		return mapNotificationsError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapNotificationsError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, usecase.ErrNotificationNotFound) {
		return middleware.NewAppError(fiber.StatusNotFound, "Notification not found", nil, err)
	}
	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
}
