package job

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeFullTime   = "Full-time"
	TypePartTime   = "Part-time"
	TypeContract   = "Contract"
	TypeInternship = "Internship"
)

const (
	ExperienceEntry  = "entry"
	ExperienceMid    = "mid"
	ExperienceSenior = "senior"
	ExperienceLead   = "lead"
)

// Job is a row from the remote store. The client never mutates it; a
// refetch replaces the whole listing.
type Job struct {
	ID              uuid.UUID
	Title           string
	CompanyName     string
	Location        string
	JobType         string
	SalaryMin       *int
	SalaryMax       *int
	PostedAt        time.Time
	IsRemote        bool
	ExperienceLevel string
	Tags            []string
	Description     string
	Requirements    []string
	Benefits        []string
	ApplicantsCount *int
	ApplicationURL  string
	IsActive        bool
}
