package savedjob

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("saved job not found")

// TempIDPrefix marks a placeholder record created by an optimistic
// insert before the remote store has assigned a real id.
const TempIDPrefix = "temp_"

type SavedJob struct {
	ID        string
	UserID    uuid.UUID
	JobID     uuid.UUID
	Notes     *string
	CreatedAt time.Time
}

func (s SavedJob) Pending() bool {
	return strings.HasPrefix(s.ID, TempIDPrefix)
}

func NewTempID() string {
	return TempIDPrefix + uuid.NewString()
}
