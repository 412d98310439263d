package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"jobstream/internal/domain/job"
	"jobstream/internal/domain/notification"

	"github.com/google/uuid"
)

type memoryKVStore struct {
	data map[string][]byte
	sets int
}

func newMemoryKVStore() *memoryKVStore {
	return &memoryKVStore{data: make(map[string][]byte)}
}

func (m *memoryKVStore) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (m *memoryKVStore) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = b
	m.sets++
	return nil
}

func (m *memoryKVStore) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *memoryKVStore) blob(t *testing.T, userID uuid.UUID) notification.Blob {
	t.Helper()
	var blob notification.Blob
	if err := json.Unmarshal(m.data["notifications_"+userID.String()], &blob); err != nil {
		t.Fatalf("persisted blob unreadable: %v", err)
	}
	return blob
}

func TestNotifications_AddDeduplicatesByJobID(t *testing.T) {
	store := newMemoryKVStore()
	uc := NewNotificationsUsecase(store, nil)
	userID, jobID := uuid.New(), uuid.New()

	first, err := uc.Add(context.Background(), userID, notification.Notification{JobID: jobID, Title: "New Job Posted"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if first == nil {
		t.Fatalf("first add should insert")
	}

	dup, err := uc.Add(context.Background(), userID, notification.Notification{JobID: jobID, Title: "New Job Posted"})
	if err != nil {
		t.Fatalf("dedup no-op must not error: %v", err)
	}
	if dup != nil {
		t.Fatalf("duplicate job id must be a no-op")
	}

	entries, unread, err := uc.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if unread != 1 {
		t.Fatalf("duplicate must not bump unread, got %d", unread)
	}
}

func TestNotifications_CapMostRecentFirst(t *testing.T) {
	store := newMemoryKVStore()
	uc := NewNotificationsUsecase(store, nil)
	userID := uuid.New()

	var lastJob uuid.UUID
	for i := 0; i < notification.MaxEntries+10; i++ {
		lastJob = uuid.New()
		if _, err := uc.Add(context.Background(), userID, notification.Notification{JobID: lastJob}); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}

	entries, _, err := uc.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(entries) != notification.MaxEntries {
		t.Fatalf("ledger must cap at %d, got %d", notification.MaxEntries, len(entries))
	}
	if entries[0].JobID != lastJob {
		t.Fatalf("newest entry must be first")
	}
}

func TestNotifications_RehydrateSeedsDedup(t *testing.T) {
	store := newMemoryKVStore()
	userID, jobID := uuid.New(), uuid.New()

	first := NewNotificationsUsecase(store, nil)
	if _, err := first.Add(context.Background(), userID, notification.Notification{JobID: jobID}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// A fresh process hydrates from the same store; the job id must
	// still count as processed.
	second := NewNotificationsUsecase(store, nil)
	dup, err := second.Add(context.Background(), userID, notification.Notification{JobID: jobID})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if dup != nil {
		t.Fatalf("hydrated ledger must deduplicate persisted job ids")
	}
}

func TestNotifications_VersionMismatchDiscarded(t *testing.T) {
	store := newMemoryKVStore()
	userID := uuid.New()

	stale, _ := json.Marshal(notification.Blob{
		SchemaVersion: notification.SchemaVersion + 1,
		Notifications: []notification.Notification{{ID: "n1", JobID: uuid.New()}},
		UnreadCount:   1,
	})
	store.data["notifications_"+userID.String()] = stale

	uc := NewNotificationsUsecase(store, nil)
	entries, unread, err := uc.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(entries) != 0 || unread != 0 {
		t.Fatalf("mismatched blob must be discarded, got %d entries unread=%d", len(entries), unread)
	}
}

func TestNotifications_ReadAccounting(t *testing.T) {
	store := newMemoryKVStore()
	uc := NewNotificationsUsecase(store, nil)
	userID := uuid.New()

	a, _ := uc.Add(context.Background(), userID, notification.Notification{JobID: uuid.New()})
	b, _ := uc.Add(context.Background(), userID, notification.Notification{JobID: uuid.New()})

	if err := uc.MarkRead(context.Background(), userID, a.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, unread, _ := uc.List(context.Background(), userID); unread != 1 {
		t.Fatalf("expected unread=1, got %d", unread)
	}

	// Marking the same entry twice must not double-decrement.
	if err := uc.MarkRead(context.Background(), userID, a.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, unread, _ := uc.List(context.Background(), userID); unread != 1 {
		t.Fatalf("repeated mark-read must not change unread, got %d", unread)
	}

	// Removing a read entry leaves unread untouched; removing an unread
	// one decrements.
	if err := uc.Remove(context.Background(), userID, a.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, unread, _ := uc.List(context.Background(), userID); unread != 1 {
		t.Fatalf("removing a read entry must keep unread, got %d", unread)
	}
	if err := uc.Remove(context.Background(), userID, b.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if entries, unread, _ := uc.List(context.Background(), userID); len(entries) != 0 || unread != 0 {
		t.Fatalf("expected empty ledger, got %d entries unread=%d", len(entries), unread)
	}
}

func TestNotifications_MarkAllReadAndClear(t *testing.T) {
	store := newMemoryKVStore()
	uc := NewNotificationsUsecase(store, nil)
	userID := uuid.New()

	_, _ = uc.Add(context.Background(), userID, notification.Notification{JobID: uuid.New()})
	_, _ = uc.Add(context.Background(), userID, notification.Notification{JobID: uuid.New()})

	if err := uc.MarkAllRead(context.Background(), userID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	entries, unread, _ := uc.List(context.Background(), userID)
	if unread != 0 {
		t.Fatalf("expected unread=0, got %d", unread)
	}
	for _, n := range entries {
		if !n.Read {
			t.Fatalf("all entries must be read")
		}
	}

	if err := uc.ClearAll(context.Background(), userID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if entries, _, _ := uc.List(context.Background(), userID); len(entries) != 0 {
		t.Fatalf("clear must empty the ledger")
	}
	if blob := store.blob(t, userID); len(blob.Notifications) != 0 || blob.SchemaVersion != notification.SchemaVersion {
		t.Fatalf("cleared blob must persist empty at the current version: %+v", blob)
	}
}

func TestNotifications_NewJobGatedOnReadiness(t *testing.T) {
	store := newMemoryKVStore()
	uc := NewNotificationsUsecase(store, nil)
	userID := uuid.New()

	if err := uc.Hydrate(context.Background(), userID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	j := job.Job{ID: uuid.New(), Title: "Go Developer", CompanyName: "Acme", IsActive: true, PostedAt: time.Now()}
	uc.HandleNewJob(context.Background(), j)
	if entries, _, _ := uc.List(context.Background(), userID); len(entries) != 0 {
		t.Fatalf("events before readiness must be dropped")
	}

	uc.SetReady()
	uc.HandleNewJob(context.Background(), j)
	entries, unread, _ := uc.List(context.Background(), userID)
	if len(entries) != 1 || unread != 1 {
		t.Fatalf("expected 1 unread entry, got %d/%d", len(entries), unread)
	}
	if entries[0].Message != "Acme is hiring!" {
		t.Fatalf("unexpected message: %q", entries[0].Message)
	}

	// The same job arriving again stays deduplicated.
	uc.HandleNewJob(context.Background(), j)
	if entries, _, _ := uc.List(context.Background(), userID); len(entries) != 1 {
		t.Fatalf("replayed event must not duplicate")
	}

	// Inactive rows are ignored.
	uc.HandleNewJob(context.Background(), job.Job{ID: uuid.New(), CompanyName: "Ghost", IsActive: false})
	if entries, _, _ := uc.List(context.Background(), userID); len(entries) != 1 {
		t.Fatalf("inactive rows must not notify")
	}
}
