package application

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusApplied      Status = "applied"
	StatusViewed       Status = "viewed"
	StatusInterviewing Status = "interviewing"
	StatusOffered      Status = "offered"
	StatusRejected     Status = "rejected"
	StatusWithdrawn    Status = "withdrawn"
)

var ErrInvalidStatus = errors.New("invalid application status")

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusApplied, StatusViewed, StatusInterviewing, StatusOffered, StatusRejected, StatusWithdrawn:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

func (s Status) Terminal() bool {
	return s == StatusOffered || s == StatusRejected || s == StatusWithdrawn
}

// CanTransitionTo encodes the one-way progression
// applied -> viewed -> interviewing -> offered|rejected, with
// withdrawn reachable from any non-terminal status.
func (s Status) CanTransitionTo(next Status) bool {
	if next == StatusWithdrawn {
		return !s.Terminal()
	}
	switch s {
	case StatusApplied:
		return next == StatusViewed
	case StatusViewed:
		return next == StatusInterviewing
	case StatusInterviewing:
		return next == StatusOffered || next == StatusRejected
	}
	return false
}

type Application struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	JobID       uuid.UUID
	Status      Status
	CoverLetter *string
	ResumeURL   *string
	Notes       *string
	AppliedAt   time.Time
}

// Counts holds the per-status totals the applications dashboard shows.
type Counts struct {
	All          int `json:"all"`
	Applied      int `json:"applied"`
	Viewed       int `json:"viewed"`
	Interviewing int `json:"interviewing"`
	Offered      int `json:"offered"`
	Rejected     int `json:"rejected"`
	Withdrawn    int `json:"withdrawn"`
}

func CountByStatus(apps []Application) Counts {
	c := Counts{All: len(apps)}
	for _, a := range apps {
		switch a.Status {
		case StatusApplied:
			c.Applied++
		case StatusViewed:
			c.Viewed++
		case StatusInterviewing:
			c.Interviewing++
		case StatusOffered:
			c.Offered++
		case StatusRejected:
			c.Rejected++
		case StatusWithdrawn:
			c.Withdrawn++
		}
	}
	return c
}
