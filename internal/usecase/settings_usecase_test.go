package usecase

import (
	"context"
	"errors"
	"testing"

	"jobstream/internal/domain/settings"

	"github.com/google/uuid"
)

type mockSettingsRepo struct {
	stored map[uuid.UUID]settings.Settings

	getErr    error
	upsertErr error
	gets      int
}

func newMockSettingsRepo() *mockSettingsRepo {
	return &mockSettingsRepo{stored: make(map[uuid.UUID]settings.Settings)}
}

func (m *mockSettingsRepo) Get(_ context.Context, userID uuid.UUID) (settings.Settings, bool, error) {
	m.gets++
	if m.getErr != nil {
		return settings.Settings{}, false, m.getErr
	}
	s, ok := m.stored[userID]
	return s, ok, nil
}

func (m *mockSettingsRepo) Upsert(_ context.Context, userID uuid.UUID, s settings.Settings) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.stored[userID] = s
	return nil
}

func strptr(v string) *string { return &v }
func boolptr(v bool) *bool    { return &v }

func TestSettings_DefaultsForAnonymousUser(t *testing.T) {
	uc := NewSettingsUsecase(newMockSettingsRepo(), newMemoryKVStore(), nil)
	if got := uc.Get(context.Background(), uuid.Nil); got != settings.Defaults() {
		t.Fatalf("anonymous get must return defaults, got %+v", got)
	}
}

func TestSettings_DefaultsWhenFetchFails(t *testing.T) {
	repo := newMockSettingsRepo()
	repo.getErr = errors.New("down")
	uc := NewSettingsUsecase(repo, newMemoryKVStore(), nil)

	if got := uc.Get(context.Background(), uuid.New()); got != settings.Defaults() {
		t.Fatalf("failed fetch must fall back to defaults silently, got %+v", got)
	}
}

func TestSettings_DefaultsWhenNoRow(t *testing.T) {
	uc := NewSettingsUsecase(newMockSettingsRepo(), newMemoryKVStore(), nil)
	if got := uc.Get(context.Background(), uuid.New()); got != settings.Defaults() {
		t.Fatalf("missing row must return defaults, got %+v", got)
	}
}

func TestSettings_UpdateMergesAndCaches(t *testing.T) {
	repo := newMockSettingsRepo()
	uc := NewSettingsUsecase(repo, newMemoryKVStore(), nil)
	userID := uuid.New()

	updated, err := uc.Update(context.Background(), userID, settings.Patch{
		Theme:           strptr("light"),
		MarketingEmails: boolptr(true),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Theme != "light" || !updated.MarketingEmails {
		t.Fatalf("patch fields not applied: %+v", updated)
	}
	if !updated.EmailNotifications || updated.Language != "en" {
		t.Fatalf("untouched fields must keep their defaults: %+v", updated)
	}

	// The next Get must come from the kv cache, not the repository.
	getsBefore := repo.gets
	if got := uc.Get(context.Background(), userID); got != updated {
		t.Fatalf("cached settings mismatch: %+v", got)
	}
	if repo.gets != getsBefore {
		t.Fatalf("get after update should hit the cache")
	}
}

func TestSettings_UpdateFailure(t *testing.T) {
	repo := newMockSettingsRepo()
	repo.upsertErr = errors.New("boom")
	uc := NewSettingsUsecase(repo, newMemoryKVStore(), nil)

	if _, err := uc.Update(context.Background(), uuid.New(), settings.Patch{Theme: strptr("light")}); !errors.Is(err, ErrSettingsUpdateFailed) {
		t.Fatalf("expected ErrSettingsUpdateFailed, got %v", err)
	}
}

func TestSettings_ResetRestoresDefaults(t *testing.T) {
	repo := newMockSettingsRepo()
	uc := NewSettingsUsecase(repo, newMemoryKVStore(), nil)
	userID := uuid.New()

	if _, err := uc.Update(context.Background(), userID, settings.Patch{Theme: strptr("light")}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	restored, err := uc.Reset(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if restored != settings.Defaults() {
		t.Fatalf("reset must restore defaults, got %+v", restored)
	}
	if got := uc.Get(context.Background(), userID); got != settings.Defaults() {
		t.Fatalf("subsequent reads must see defaults, got %+v", got)
	}
}
