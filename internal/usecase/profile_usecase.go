package usecase

import (
	"context"
	"errors"
	"log"

	"jobstream/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrProfileUpdateFailed = errors.New("failed to update profile")
)

type ProfileRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (user.Profile, bool, error)
	Upsert(ctx context.Context, p user.Profile) (user.Profile, error)
}

type ProfilePatch struct {
	FullName *string  `json:"full_name"`
	Headline *string  `json:"headline"`
	Location *string  `json:"location"`
	Phone    *string  `json:"phone"`
	Skills   []string `json:"skills"`
}

type ProfileUsecase struct {
	repo   ProfileRepository
	logger *log.Logger
}

func NewProfileUsecase(repo ProfileRepository, logger *log.Logger) *ProfileUsecase {
	return &ProfileUsecase{repo: repo, logger: logger}
}

// Get returns the stored profile, or an empty one keyed to the user
// when nothing has been saved yet.
func (u *ProfileUsecase) Get(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	if userID == uuid.Nil {
		return user.Profile{}, ErrNotAuthenticated
	}
	p, found, err := u.repo.Get(ctx, userID)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("profile fetch failed | user=%s err=%v", userID, err)
		}
		return user.Profile{}, ErrProfileNotFound
	}
	if !found {
		return user.Profile{UserID: userID}, nil
	}
	return p, nil
}

func (u *ProfileUsecase) Update(ctx context.Context, userID uuid.UUID, patch ProfilePatch) (user.Profile, error) {
	current, err := u.Get(ctx, userID)
	if err != nil {
		return user.Profile{}, err
	}

	if patch.FullName != nil {
		current.FullName = *patch.FullName
	}
	if patch.Headline != nil {
		current.Headline = *patch.Headline
	}
	if patch.Location != nil {
		current.Location = *patch.Location
	}
	if patch.Phone != nil {
		current.Phone = *patch.Phone
	}
	if patch.Skills != nil {
		current.Skills = patch.Skills
	}

	return u.save(ctx, current)
}

// SetResumeURL records the object-storage location of the uploaded
// resume; the file itself never passes through this service.
func (u *ProfileUsecase) SetResumeURL(ctx context.Context, userID uuid.UUID, url *string) (user.Profile, error) {
	current, err := u.Get(ctx, userID)
	if err != nil {
		return user.Profile{}, err
	}
	current.ResumeURL = url
	return u.save(ctx, current)
}

func (u *ProfileUsecase) SetAvatarURL(ctx context.Context, userID uuid.UUID, url *string) (user.Profile, error) {
	current, err := u.Get(ctx, userID)
	if err != nil {
		return user.Profile{}, err
	}
	current.AvatarURL = url
	return u.save(ctx, current)
}

func (u *ProfileUsecase) save(ctx context.Context, p user.Profile) (user.Profile, error) {
	saved, err := u.repo.Upsert(ctx, p)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("profile update failed | user=%s err=%v", p.UserID, err)
		}
		return user.Profile{}, ErrProfileUpdateFailed
	}
	return saved, nil
}
