package handler

import (
	"errors"

	"jobstream/internal/delivery/http/dto"
	"jobstream/internal/delivery/http/middleware"
	"jobstream/internal/domain/savedjob"
	"jobstream/internal/pkg/response"
	"jobstream/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SavedJobsHandler struct {
	uc *usecase.SavedJobsUsecase
}

func NewSavedJobsHandler(uc *usecase.SavedJobsUsecase) *SavedJobsHandler {
	return &SavedJobsHandler{uc: uc}
}

func (h *SavedJobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/:jobId/toggle", h.Toggle)
	r.Patch("/:jobId/note", h.SetNote)
}

func (h *SavedJobsHandler) List(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return mapSavedJobsError(err)
	}

	data := map[string]any{
		"saved_jobs": dto.NewSavedJobResponses(items),
		"count":      len(items),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *SavedJobsHandler) Toggle(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	saved, err := h.uc.Toggle(c.Context(), userID, jobID)
	if err != nil {
		return mapSavedJobsError(err)
	}

	data := map[string]any{
		"job_id": jobID,
		"saved":  saved,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

type setNoteRequest struct {
	Notes *string `json:"notes"`
}

func (h *SavedJobsHandler) SetNote(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req setNoteRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.SetNote(c.Context(), userID, jobID, req.Notes)
	if err != nil {
		return mapSavedJobsError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSavedJobResponse(updated))
}

func mapSavedJobsError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrNotAuthenticated):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, savedjob.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Saved job not found", nil, err)
	case errors.Is(err, usecase.ErrSaveJobFailed),
		errors.Is(err, usecase.ErrUnsaveJobFailed),
		errors.Is(err, usecase.ErrSavedJobsFailed):
		return middleware.NewAppError(fiber.StatusBadGateway, err.Error(), nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
