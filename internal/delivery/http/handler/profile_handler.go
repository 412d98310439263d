package handler

import (
	"context"
	"errors"
	"strings"

	"jobstream/internal/delivery/http/dto"
	"jobstream/internal/delivery/http/middleware"
	"jobstream/internal/domain/user"
	"jobstream/internal/pkg/response"
	"jobstream/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	uc *usecase.ProfileUsecase
}

type profileUpdateRequest struct {
	FullName *string  `json:"full_name"`
	Headline *string  `json:"headline"`
	Location *string  `json:"location"`
	Phone    *string  `json:"phone"`
	Skills   []string `json:"skills"`
}

type documentURLRequest struct {
	URL *string `json:"url"`
}

func NewProfileHandler(uc *usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Get)
	r.Patch("/", h.Update)
	r.Put("/resume", h.SetResumeURL)
	r.Put("/avatar", h.SetAvatarURL)
}

func (h *ProfileHandler) Get(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	p, err := h.uc.Get(c.Context(), userID)
	if err != nil {
		return mapProfileError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) Update(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	var req profileUpdateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.Update(c.Context(), userID, usecase.ProfilePatch{
		FullName: req.FullName,
		Headline: req.Headline,
		Location: req.Location,
		Phone:    req.Phone,
		Skills:   req.Skills,
	})
	if err != nil {
		return mapProfileError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) SetResumeURL(c fiber.Ctx) error {
	return h.setDocumentURL(c, h.uc.SetResumeURL)
}

func (h *ProfileHandler) SetAvatarURL(c fiber.Ctx) error {
	return h.setDocumentURL(c, h.uc.SetAvatarURL)
}

func (h *ProfileHandler) setDocumentURL(c fiber.Ctx, set func(ctx context.Context, userID uuid.UUID, url *string) (user.Profile, error)) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	var req documentURLRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.URL != nil && strings.TrimSpace(*req.URL) == "" {
		req.URL = nil
	}

	p, err := set(c.Context(), userID, req.URL)
	if err != nil {
		return mapProfileError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(p))
}

func mapProfileError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, usecase.ErrProfileUpdateFailed):
		return middleware.NewAppError(fiber.StatusBadGateway, usecase.ErrProfileUpdateFailed.Error(), nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
