package dto

import (
	"time"

	"jobstream/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"job_id"`
	Status      string    `json:"status"`
	CoverLetter *string   `json:"cover_letter"`
	ResumeURL   *string   `json:"resume_url"`
	Notes       *string   `json:"notes"`
	AppliedAt   time.Time `json:"applied_at"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		Status:      string(a.Status),
		CoverLetter: a.CoverLetter,
		ResumeURL:   a.ResumeURL,
		Notes:       a.Notes,
		AppliedAt:   a.AppliedAt.UTC(),
	}
}

func NewApplicationResponses(items []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, a := range items {
		out = append(out, NewApplicationResponse(a))
	}
	return out
}
