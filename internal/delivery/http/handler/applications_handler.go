package handler

import (
	"errors"

	"jobstream/internal/delivery/http/dto"
	"jobstream/internal/delivery/http/middleware"
	"jobstream/internal/domain/application"
	"jobstream/internal/pkg/response"
	"jobstream/internal/repository"
	"jobstream/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationsHandler struct {
	uc *usecase.ApplicationsUsecase
}

type applyRequest struct {
	JobID       uuid.UUID `json:"job_id"`
	CoverLetter *string   `json:"cover_letter"`
	ResumeURL   *string   `json:"resume_url"`
}

type statusUpdateRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

func NewApplicationsHandler(uc *usecase.ApplicationsUsecase) *ApplicationsHandler {
	return &ApplicationsHandler{uc: uc}
}

func (h *ApplicationsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/counts", h.Counts)
	r.Get("/for-job/:jobId", h.ForJob)
	r.Post("/", h.Apply)
	r.Patch("/:id/status", h.UpdateStatus)
	r.Post("/:id/withdraw", h.Withdraw)
}

func (h *ApplicationsHandler) List(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), userID, c.Query("status"))
	if err != nil {
		return mapApplicationsError(err)
	}

	data := map[string]any{
		"applications": dto.NewApplicationResponses(items),
		"total":        len(items),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *ApplicationsHandler) Counts(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	counts, err := h.uc.Counts(c.Context(), userID)
	if err != nil {
		return mapApplicationsError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, counts)
}

// ForJob answers "have I applied to this job, and with what" in one
// round trip, so detail pages don't have to pull the whole list.
func (h *ApplicationsHandler) ForJob(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	app, ok, err := h.uc.Lookup(c.Context(), userID, jobID)
	if err != nil {
		return mapApplicationsError(err)
	}

	data := map[string]any{
		"applied": ok,
	}
	if ok {
		data["application"] = dto.NewApplicationResponse(app)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *ApplicationsHandler) Apply(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	var req applyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.JobID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, nil)
	}

	app, err := h.uc.Apply(c.Context(), userID, req.JobID, req.CoverLetter, req.ResumeURL)
	if err != nil {
		return mapApplicationsError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewApplicationResponse(app))
}

func (h *ApplicationsHandler) UpdateStatus(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req statusUpdateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	status, err := application.ParseStatus(req.Status)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unknown status", nil, err)
	}

	app, err := h.uc.UpdateStatus(c.Context(), userID, id, status, req.Notes)
	if err != nil {
		return mapApplicationsError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(app))
}

func (h *ApplicationsHandler) Withdraw(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	app, err := h.uc.Withdraw(c.Context(), userID, id)
	if err != nil {
		return mapApplicationsError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(app))
}

func mapApplicationsError(err error) error {
	if err == nil {
		return nil
	}

	var remoteErr *usecase.RemoteError
	switch {
	case errors.Is(err, repository.ErrAlreadyApplied):
		// The duplicate rejection reaches the client verbatim.
		return middleware.NewAppError(fiber.StatusConflict, repository.ErrAlreadyApplied.Error(), nil, err)
	case errors.As(err, &remoteErr):
		return middleware.NewAppError(fiber.StatusBadGateway, remoteErr.Message, nil, err)
	case errors.Is(err, usecase.ErrNotAuthenticated):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, usecase.ErrStatusNotAllowed):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Status change not allowed", nil, err)
	case errors.Is(err, usecase.ErrApplicationsFailed), errors.Is(err, usecase.ErrApplicationSubmission):
		return middleware.NewAppError(fiber.StatusBadGateway, err.Error(), nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
