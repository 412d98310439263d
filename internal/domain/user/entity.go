package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the job-seeker profile shown on the profile page. Resume
// and avatar contents live in external object storage; only their URLs
// are tracked here.
type Profile struct {
	UserID    uuid.UUID `json:"user_id"`
	FullName  string    `json:"full_name"`
	Headline  string    `json:"headline"`
	Location  string    `json:"location"`
	Phone     string    `json:"phone"`
	Skills    []string  `json:"skills"`
	ResumeURL *string   `json:"resume_url"`
	AvatarURL *string   `json:"avatar_url"`
	UpdatedAt time.Time `json:"updated_at"`
}
