package dto

import (
	"time"

	"jobstream/internal/domain/savedjob"

	"github.com/google/uuid"
)

type SavedJobResponse struct {
	ID        string    `json:"id"`
	JobID     uuid.UUID `json:"job_id"`
	Notes     *string   `json:"notes"`
	Pending   bool      `json:"pending"`
	CreatedAt time.Time `json:"created_at"`
}

func NewSavedJobResponse(s savedjob.SavedJob) SavedJobResponse {
	return SavedJobResponse{
		ID:        s.ID,
		JobID:     s.JobID,
		Notes:     s.Notes,
		Pending:   s.Pending(),
		CreatedAt: s.CreatedAt.UTC(),
	}
}

func NewSavedJobResponses(items []savedjob.SavedJob) []SavedJobResponse {
	out := make([]SavedJobResponse, 0, len(items))
	for _, s := range items {
		out = append(out, NewSavedJobResponse(s))
	}
	return out
}
