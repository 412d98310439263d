package notification

import (
	"time"

	"github.com/google/uuid"
)

const TypeNewJob = "new_job"

// MaxEntries caps the ledger; the oldest entries are dropped first.
const MaxEntries = 50

// SchemaVersion tags the persisted blob. A stored blob with a
// different version is discarded instead of being trusted.
const SchemaVersion = 1

type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	JobID     uuid.UUID `json:"job_id"`
	JobTitle  string    `json:"job_title"`
	Company   string    `json:"company"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

// Blob is the JSON document persisted per user under
// notifications_<userId>.
type Blob struct {
	SchemaVersion int            `json:"schema_version"`
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unread_count"`
}
