package ws

import (
	"encoding/json"
	"time"

	"jobstream/internal/domain/job"
)

type NewJobEvent struct {
	Type      string `json:"type"`
	JobID     string `json:"job_id"`
	JobTitle  string `json:"job_title"`
	Company   string `json:"company"`
	Timestamp string `json:"timestamp"`
}

// NotifyNewJob pushes a new-listing event to every connected client.
func NotifyNewJob(h *Hub, j job.Job) {
	if h == nil {
		return
	}

	evt := NewJobEvent{
		Type:      "new_job",
		JobID:     j.ID.String(),
		JobTitle:  j.Title,
		Company:   j.CompanyName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
