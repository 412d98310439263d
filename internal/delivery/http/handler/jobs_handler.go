package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"jobstream/internal/delivery/http/dto"
	"jobstream/internal/delivery/http/middleware"
	"jobstream/internal/domain/filtering"
	"jobstream/internal/pkg/response"
	"jobstream/internal/repository"
	"jobstream/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobsHandler struct {
	uc   *usecase.FeedUsecase
	jobs repository.JobRepository
}

func NewJobsHandler(uc *usecase.FeedUsecase, jobs repository.JobRepository) *JobsHandler {
	return &JobsHandler{uc: uc, jobs: jobs}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/:id", h.Get)
}

func (h *JobsHandler) List(c fiber.Ctx) error {
	search := c.Query("search")
	filterType := c.Query("filter", "all")
	force := parseQueryBool(c, "force")

	spec := specFromQuery(c)

	views, err := h.uc.Search(c.Context(), search, filterType, spec, force)
	if err != nil {
		if !errors.Is(err, usecase.ErrFeedUnavailable) || views == nil {
			return middleware.NewAppError(fiber.StatusServiceUnavailable, "Failed to load jobs", nil, err)
		}
	}

	data := map[string]any{
		"jobs":           dto.NewJobResponses(views),
		"total":          len(views),
		"active_filters": filtering.CountActive(spec),
		"stale":          err != nil,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *JobsHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	j, err := h.jobs.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	view := usecase.TransformJob(j, 0, time.Now().UTC())
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(view))
}

// specFromQuery maps the advanced-filter query params onto a Spec.
// Unknown salary or posted-within keys pass through unchanged; the
// predicate engine treats them as inactive.
func specFromQuery(c fiber.Ctx) filtering.Spec {
	spec := filtering.DefaultSpec()
	spec.ExperienceLevels = parseQueryCSV(c.Query("experience_levels"))
	spec.JobTypes = parseQueryCSV(c.Query("job_types"))
	spec.SalaryBucket = strings.TrimSpace(c.Query("salary"))
	if v := strings.TrimSpace(c.Query("posted_within")); v != "" {
		spec.PostedWithin = v
	}
	spec.RemoteOnly = parseQueryBool(c, "remote_only")
	spec.Locations = parseQueryCSV(c.Query("locations"))
	return spec
}

func parseQueryBool(c fiber.Ctx, key string) bool {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return false
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return v
}

func parseQueryCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
