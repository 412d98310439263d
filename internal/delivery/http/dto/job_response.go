package dto

import (
	"time"

	"jobstream/internal/domain/job"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	Type            string    `json:"type"`
	Salary          string    `json:"salary"`
	Posted          string    `json:"posted"`
	PostedAt        time.Time `json:"posted_at"`
	Source          string    `json:"source"`
	Logo            string    `json:"logo"`
	Color           string    `json:"color"`
	Applicants      int       `json:"applicants"`
	Description     string    `json:"description"`
	Requirements    []string  `json:"requirements"`
	Benefits        []string  `json:"benefits"`
	Tags            []string  `json:"tags"`
	IsRemote        bool      `json:"is_remote"`
	ExperienceLevel string    `json:"experience_level"`
	ApplicationURL  string    `json:"application_url"`
}

func NewJobResponse(v job.View) JobResponse {
	return JobResponse{
		ID:              v.ID,
		Title:           v.Title,
		Company:         v.Company,
		Location:        v.Location,
		Type:            v.Type,
		Salary:          v.Salary,
		Posted:          v.Posted,
		PostedAt:        v.PostedAt.UTC(),
		Source:          v.Source,
		Logo:            v.Logo,
		Color:           v.Color,
		Applicants:      v.Applicants,
		Description:     v.Description,
		Requirements:    v.Requirements,
		Benefits:        v.Benefits,
		Tags:            v.Tags,
		IsRemote:        v.IsRemote,
		ExperienceLevel: v.ExperienceLevel,
		ApplicationURL:  v.ApplicationURL,
	}
}

func NewJobResponses(views []job.View) []JobResponse {
	out := make([]JobResponse, 0, len(views))
	for _, v := range views {
		out = append(out, NewJobResponse(v))
	}
	return out
}
