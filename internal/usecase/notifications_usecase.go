package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"jobstream/internal/domain/job"
	"jobstream/internal/domain/notification"

	"github.com/google/uuid"
)

var ErrNotificationNotFound = errors.New("notification not found")

type ledger struct {
	entries   []notification.Notification
	unread    int
	processed map[uuid.UUID]struct{}
	hydrated  bool
}

// NotificationsUsecase maintains one capped, most-recent-first ledger
// per user, persisted as a versioned JSON blob and deduplicated by
// source job id for the lifetime of the process. New-job events are
// dropped until SetReady is called, which the feed does after its
// first successful load; that keeps pre-existing rows from replaying
// as fresh notifications.
type NotificationsUsecase struct {
	store  KVStore
	logger *log.Logger
	now    func() time.Time
	ready  atomic.Bool

	mu      sync.Mutex
	ledgers map[uuid.UUID]*ledger
}

func NewNotificationsUsecase(store KVStore, logger *log.Logger) *NotificationsUsecase {
	return &NotificationsUsecase{
		store:   store,
		logger:  logger,
		now:     time.Now,
		ledgers: make(map[uuid.UUID]*ledger),
	}
}

// SetReady opens the gate for new-job events.
func (u *NotificationsUsecase) SetReady() {
	u.ready.Store(true)
}

func (u *NotificationsUsecase) Ready() bool {
	return u.ready.Load()
}

func blobKey(userID uuid.UUID) string {
	return "notifications_" + userID.String()
}

// Hydrate loads the persisted ledger for a user. A blob with an
// unexpected schema version or shape is discarded rather than trusted.
func (u *NotificationsUsecase) Hydrate(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrNotAuthenticated
	}

	u.mu.Lock()
	if l, ok := u.ledgers[userID]; ok && l.hydrated {
		u.mu.Unlock()
		return nil
	}
	u.mu.Unlock()

	l := &ledger{processed: make(map[uuid.UUID]struct{}), hydrated: true}

	var blob notification.Blob
	found, err := u.store.GetJSON(ctx, blobKey(userID), &blob)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("notifications load failed, starting empty | user=%s err=%v", userID, err)
		}
	} else if found {
		if blob.SchemaVersion != notification.SchemaVersion {
			if u.logger != nil {
				u.logger.Printf("notifications blob version mismatch, discarding | user=%s version=%d", userID, blob.SchemaVersion)
			}
		} else {
			l.entries = blob.Notifications
			if len(l.entries) > notification.MaxEntries {
				l.entries = l.entries[:notification.MaxEntries]
			}
			l.unread = blob.UnreadCount
			for _, n := range l.entries {
				if n.JobID != uuid.Nil {
					l.processed[n.JobID] = struct{}{}
				}
			}
		}
	}

	u.mu.Lock()
	u.ledgers[userID] = l
	u.mu.Unlock()
	return nil
}

func (u *NotificationsUsecase) persistLocked(ctx context.Context, userID uuid.UUID, l *ledger) {
	blob := notification.Blob{
		SchemaVersion: notification.SchemaVersion,
		Notifications: l.entries,
		UnreadCount:   l.unread,
	}
	if err := u.store.SetJSON(ctx, blobKey(userID), blob, 0); err != nil && u.logger != nil {
		u.logger.Printf("notifications persist failed | user=%s err=%v", userID, err)
	}
}

func (u *NotificationsUsecase) ledgerFor(ctx context.Context, userID uuid.UUID) (*ledger, error) {
	if err := u.Hydrate(ctx, userID); err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.ledgers[userID], nil
}

// Add appends a notification unless its source job id was already
// recorded this session. Returns nil for a deduplicated no-op.
func (u *NotificationsUsecase) Add(ctx context.Context, userID uuid.UUID, n notification.Notification) (*notification.Notification, error) {
	if _, err := u.ledgerFor(ctx, userID); err != nil {
		return nil, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	l := u.ledgers[userID]

	if n.JobID != uuid.Nil {
		if _, seen := l.processed[n.JobID]; seen {
			return nil, nil
		}
		l.processed[n.JobID] = struct{}{}
	}

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Type == "" {
		n.Type = notification.TypeNewJob
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = u.now()
	}
	n.Read = false

	l.entries = append([]notification.Notification{n}, l.entries...)
	if len(l.entries) > notification.MaxEntries {
		l.entries = l.entries[:notification.MaxEntries]
	}
	l.unread++

	u.persistLocked(ctx, userID, l)
	return &n, nil
}

func (u *NotificationsUsecase) List(ctx context.Context, userID uuid.UUID) ([]notification.Notification, int, error) {
	l, err := u.ledgerFor(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]notification.Notification(nil), l.entries...), l.unread, nil
}

func (u *NotificationsUsecase) MarkRead(ctx context.Context, userID uuid.UUID, id string) error {
	l, err := u.ledgerFor(ctx, userID)
	if err != nil {
		return err
	}
	u.mu.Lock()
	defer u.mu.Unlock()

	for i := range l.entries {
		if l.entries[i].ID == id {
			if !l.entries[i].Read {
				l.entries[i].Read = true
				if l.unread > 0 {
					l.unread--
				}
				u.persistLocked(ctx, userID, l)
			}
			return nil
		}
	}
	return ErrNotificationNotFound
}

func (u *NotificationsUsecase) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	l, err := u.ledgerFor(ctx, userID)
	if err != nil {
		return err
	}
	u.mu.Lock()
	defer u.mu.Unlock()

	for i := range l.entries {
		l.entries[i].Read = true
	}
	l.unread = 0
	u.persistLocked(ctx, userID, l)
	return nil
}

// Remove deletes one entry, decrementing the unread counter only when
// the removed entry was unread.
func (u *NotificationsUsecase) Remove(ctx context.Context, userID uuid.UUID, id string) error {
	l, err := u.ledgerFor(ctx, userID)
	if err != nil {
		return err
	}
	u.mu.Lock()
	defer u.mu.Unlock()

	for i := range l.entries {
		if l.entries[i].ID == id {
			if !l.entries[i].Read && l.unread > 0 {
				l.unread--
			}
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			u.persistLocked(ctx, userID, l)
			return nil
		}
	}
	return ErrNotificationNotFound
}

func (u *NotificationsUsecase) ClearAll(ctx context.Context, userID uuid.UUID) error {
	l, err := u.ledgerFor(ctx, userID)
	if err != nil {
		return err
	}
	u.mu.Lock()
	defer u.mu.Unlock()

	l.entries = nil
	l.unread = 0
	u.persistLocked(ctx, userID, l)
	return nil
}

// HandleNewJob fans a pushed job insert out to every hydrated ledger.
// Events arriving before readiness, and rows that are not active, are
// discarded.
func (u *NotificationsUsecase) HandleNewJob(ctx context.Context, j job.Job) {
	if !u.ready.Load() {
		if u.logger != nil {
			u.logger.Printf("new job event before initial load, dropped | job=%s", j.ID)
		}
		return
	}
	if !j.IsActive {
		return
	}

	u.mu.Lock()
	users := make([]uuid.UUID, 0, len(u.ledgers))
	for userID := range u.ledgers {
		users = append(users, userID)
	}
	u.mu.Unlock()

	for _, userID := range users {
		_, err := u.Add(ctx, userID, notification.Notification{
			ID:        fmt.Sprintf("job_%s_%d", j.ID, u.now().UnixMilli()),
			Type:      notification.TypeNewJob,
			Title:     "New Job Posted",
			Message:   fmt.Sprintf("%s is hiring!", j.CompanyName),
			JobID:     j.ID,
			JobTitle:  j.Title,
			Company:   j.CompanyName,
			Timestamp: j.PostedAt,
		})
		if err != nil && u.logger != nil {
			u.logger.Printf("new job notification failed | user=%s job=%s err=%v", userID, j.ID, err)
		}
	}
}
