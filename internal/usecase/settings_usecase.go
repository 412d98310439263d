package usecase

import (
	"context"
	"errors"
	"log"

	"jobstream/internal/domain/settings"

	"github.com/google/uuid"
)

var ErrSettingsUpdateFailed = errors.New("failed to save settings")

type SettingsRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (settings.Settings, bool, error)
	Upsert(ctx context.Context, userID uuid.UUID, s settings.Settings) error
}

// SettingsUsecase reads and writes per-user preferences. An
// unauthenticated caller or a failed fetch gets the hardcoded defaults
// silently; only writes surface errors.
type SettingsUsecase struct {
	repo   SettingsRepository
	kv     KVStore
	logger *log.Logger
}

func NewSettingsUsecase(repo SettingsRepository, kv KVStore, logger *log.Logger) *SettingsUsecase {
	return &SettingsUsecase{repo: repo, kv: kv, logger: logger}
}

func settingsKey(userID uuid.UUID) string {
	return "settings_" + userID.String()
}

func (u *SettingsUsecase) Get(ctx context.Context, userID uuid.UUID) settings.Settings {
	if userID == uuid.Nil {
		return settings.Defaults()
	}

	var cached settings.Settings
	if found, err := u.kv.GetJSON(ctx, settingsKey(userID), &cached); err == nil && found {
		return cached
	}

	stored, found, err := u.repo.Get(ctx, userID)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("settings fetch failed, using defaults | user=%s err=%v", userID, err)
		}
		return settings.Defaults()
	}
	if !found {
		return settings.Defaults()
	}

	if err := u.kv.SetJSON(ctx, settingsKey(userID), stored, 0); err != nil && u.logger != nil {
		u.logger.Printf("settings cache write failed | user=%s err=%v", userID, err)
	}
	return stored
}

func (u *SettingsUsecase) Update(ctx context.Context, userID uuid.UUID, patch settings.Patch) (settings.Settings, error) {
	if userID == uuid.Nil {
		return settings.Settings{}, ErrNotAuthenticated
	}

	next := patch.ApplyTo(u.Get(ctx, userID))

	if err := u.repo.Upsert(ctx, userID, next); err != nil {
		if u.logger != nil {
			u.logger.Printf("settings update failed | user=%s err=%v", userID, err)
		}
		return settings.Settings{}, ErrSettingsUpdateFailed
	}

	if err := u.kv.SetJSON(ctx, settingsKey(userID), next, 0); err != nil && u.logger != nil {
		u.logger.Printf("settings cache write failed | user=%s err=%v", userID, err)
	}
	return next, nil
}

func (u *SettingsUsecase) Reset(ctx context.Context, userID uuid.UUID) (settings.Settings, error) {
	if userID == uuid.Nil {
		return settings.Settings{}, ErrNotAuthenticated
	}

	defaults := settings.Defaults()
	if err := u.repo.Upsert(ctx, userID, defaults); err != nil {
		if u.logger != nil {
			u.logger.Printf("settings reset failed | user=%s err=%v", userID, err)
		}
		return settings.Settings{}, ErrSettingsUpdateFailed
	}

	if err := u.kv.SetJSON(ctx, settingsKey(userID), defaults, 0); err != nil && u.logger != nil {
		u.logger.Printf("settings cache write failed | user=%s err=%v", userID, err)
	}
	return defaults, nil
}
