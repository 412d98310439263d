package dto

import (
	"time"

	"jobstream/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC(),
	}
}

type ProfileResponse struct {
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

func NewProfileResponse(p user.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:    p.UserID,
		FullName:  p.FullName,
		Headline:  p.Headline,
		Location:  p.Location,
		Phone:     p.Phone,
		Skills:    p.Skills,
		ResumeURL: p.ResumeURL,
		AvatarURL: p.AvatarURL,
		UpdatedAt: p.UpdatedAt.UTC(),
	}
}
