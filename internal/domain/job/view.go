package job

import (
	"time"

	"github.com/google/uuid"
)

// View is the normalized shape the listing UI consumes. It is derived
// from a Job by the feed transform and carries the presentation fields
// (formatted salary, relative time, logo, gradient) alongside the raw
// values the filter engine matches on.
type View struct {
	ID              uuid.UUID
	Title           string
	Company         string
	Location        string
	Type            string
	Salary          string
	SalaryMin       *int
	SalaryMax       *int
	Posted          string
	PostedAt        time.Time
	Source          string
	Logo            string
	Color           string
	Applicants      int
	Description     string
	Requirements    []string
	Benefits        []string
	Tags            []string
	IsRemote        bool
	ExperienceLevel string
	ApplicationURL  string
}
