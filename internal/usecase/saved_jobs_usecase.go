package usecase

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"jobstream/internal/domain/savedjob"

	"github.com/google/uuid"
)

var (
	ErrSaveJobFailed    = errors.New("failed to save job")
	ErrUnsaveJobFailed  = errors.New("failed to unsave job")
	ErrSavedJobsFailed  = errors.New("failed to load saved jobs")
	ErrNotAuthenticated = errors.New("not authenticated")
)

type SavedJobRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]savedjob.SavedJob, error)
	Insert(ctx context.Context, userID, jobID uuid.UUID, notes *string) (savedjob.SavedJob, error)
	UpdateNotes(ctx context.Context, userID, jobID uuid.UUID, notes *string) (savedjob.SavedJob, error)
	Delete(ctx context.Context, userID, jobID uuid.UUID) error
}

type savedSession struct {
	ids    map[uuid.UUID]struct{}
	list   []savedjob.SavedJob
	loaded bool
}

type savedSnapshot struct {
	ids  map[uuid.UUID]struct{}
	list []savedjob.SavedJob
}

// SavedJobsUsecase keeps a per-user saved-set and most-recent-first
// list, mutated optimistically ahead of the remote round-trip.
// Overlapping toggles on the same job are not serialized; the second
// call observes whatever local state the first already produced.
type SavedJobsUsecase struct {
	repo   SavedJobRepository
	logger *log.Logger
	now    func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*savedSession
}

func NewSavedJobsUsecase(repo SavedJobRepository, logger *log.Logger) *SavedJobsUsecase {
	return &SavedJobsUsecase{
		repo:     repo,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*savedSession),
	}
}

// Load replaces the session state with the remote list.
func (u *SavedJobsUsecase) Load(ctx context.Context, userID uuid.UUID) ([]savedjob.SavedJob, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	list, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("saved jobs load failed | user=%s err=%v", userID, err)
		}
		return nil, ErrSavedJobsFailed
	}

	ids := make(map[uuid.UUID]struct{}, len(list))
	for _, item := range list {
		ids[item.JobID] = struct{}{}
	}

	u.mu.Lock()
	u.sessions[userID] = &savedSession{ids: ids, list: list, loaded: true}
	u.mu.Unlock()

	return append([]savedjob.SavedJob(nil), list...), nil
}

func (u *SavedJobsUsecase) ensureLoaded(ctx context.Context, userID uuid.UUID) error {
	u.mu.Lock()
	s, ok := u.sessions[userID]
	loaded := ok && s.loaded
	u.mu.Unlock()
	if loaded {
		return nil
	}
	_, err := u.Load(ctx, userID)
	return err
}

// List returns a copy of the session's saved list.
func (u *SavedJobsUsecase) List(ctx context.Context, userID uuid.UUID) ([]savedjob.SavedJob, error) {
	if err := u.ensureLoaded(ctx, userID); err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]savedjob.SavedJob(nil), u.sessions[userID].list...), nil
}

func (u *SavedJobsUsecase) IsSaved(userID, jobID uuid.UUID) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	s, ok := u.sessions[userID]
	if !ok {
		return false
	}
	_, saved := s.ids[jobID]
	return saved
}

func (u *SavedJobsUsecase) Count(userID uuid.UUID) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	s, ok := u.sessions[userID]
	if !ok {
		return 0
	}
	return len(s.ids)
}

// Toggle flips membership locally first, then reconciles with the
// remote store. Returns whether the job is saved after the operation.
func (u *SavedJobsUsecase) Toggle(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, ErrNotAuthenticated
	}
	if err := u.ensureLoaded(ctx, userID); err != nil {
		return false, err
	}

	u.mu.Lock()
	_, wasSaved := u.sessions[userID].ids[jobID]
	u.mu.Unlock()

	if wasSaved {
		if err := u.unsave(ctx, userID, jobID); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := u.save(ctx, userID, jobID); err != nil {
		return false, err
	}
	return true, nil
}

func (u *SavedJobsUsecase) save(ctx context.Context, userID, jobID uuid.UUID) error {
	txn := Optimistic[savedSnapshot, savedjob.SavedJob]{
		Apply: func() savedSnapshot {
			u.mu.Lock()
			defer u.mu.Unlock()
			s := u.sessions[userID]
			snap := snapshotSession(s)
			s.ids[jobID] = struct{}{}
			placeholder := savedjob.SavedJob{
				ID:        savedjob.NewTempID(),
				UserID:    userID,
				JobID:     jobID,
				CreatedAt: u.now(),
			}
			s.list = append([]savedjob.SavedJob{placeholder}, s.list...)
			return snap
		},
		Attempt: func(ctx context.Context) (savedjob.SavedJob, error) {
			return u.repo.Insert(ctx, userID, jobID, nil)
		},
		Reconcile: func(created savedjob.SavedJob) {
			u.mu.Lock()
			defer u.mu.Unlock()
			s := u.sessions[userID]
			for i, item := range s.list {
				if item.JobID == jobID && item.Pending() {
					item.ID = created.ID
					item.CreatedAt = created.CreatedAt
					s.list[i] = item
					break
				}
			}
		},
		Revert: func(snap savedSnapshot) {
			u.mu.Lock()
			defer u.mu.Unlock()
			u.sessions[userID].ids = snap.ids
			u.sessions[userID].list = snap.list
		},
	}

	if err := txn.Run(ctx); err != nil {
		if u.logger != nil {
			u.logger.Printf("save job failed | user=%s job=%s err=%v", userID, jobID, err)
		}
		return ErrSaveJobFailed
	}
	return nil
}

func (u *SavedJobsUsecase) unsave(ctx context.Context, userID, jobID uuid.UUID) error {
	txn := Optimistic[savedSnapshot, struct{}]{
		Apply: func() savedSnapshot {
			u.mu.Lock()
			defer u.mu.Unlock()
			s := u.sessions[userID]
			snap := snapshotSession(s)
			delete(s.ids, jobID)
			filtered := make([]savedjob.SavedJob, 0, len(s.list))
			for _, item := range s.list {
				if item.JobID != jobID {
					filtered = append(filtered, item)
				}
			}
			s.list = filtered
			return snap
		},
		Attempt: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, u.repo.Delete(ctx, userID, jobID)
		},
		Revert: func(snap savedSnapshot) {
			u.mu.Lock()
			u.sessions[userID].ids = snap.ids
			u.sessions[userID].list = snap.list
			u.mu.Unlock()
		},
	}

	if err := txn.Run(ctx); err != nil {
		if u.logger != nil {
			u.logger.Printf("unsave job failed | user=%s job=%s err=%v", userID, jobID, err)
		}
		// A failed removal leaves local and remote potentially split;
		// reload the whole list from the store to settle it.
		if _, lerr := u.Load(ctx, userID); lerr != nil && u.logger != nil {
			u.logger.Printf("saved jobs reload after failed unsave | user=%s err=%v", userID, lerr)
		}
		return ErrUnsaveJobFailed
	}
	return nil
}

// SetNote writes the note straight through; notes are secondary data,
// so no optimistic placeholder is worth the bookkeeping.
func (u *SavedJobsUsecase) SetNote(ctx context.Context, userID, jobID uuid.UUID, notes *string) (savedjob.SavedJob, error) {
	if userID == uuid.Nil {
		return savedjob.SavedJob{}, ErrNotAuthenticated
	}
	if err := u.ensureLoaded(ctx, userID); err != nil {
		return savedjob.SavedJob{}, err
	}

	updated, err := u.repo.UpdateNotes(ctx, userID, jobID, notes)
	if err != nil {
		if errors.Is(err, savedjob.ErrNotFound) {
			return savedjob.SavedJob{}, err
		}
		if u.logger != nil {
			u.logger.Printf("saved job note update failed | user=%s job=%s err=%v", userID, jobID, err)
		}
		return savedjob.SavedJob{}, ErrSaveJobFailed
	}

	u.mu.Lock()
	s := u.sessions[userID]
	for i := range s.list {
		if s.list[i].JobID == jobID {
			s.list[i] = updated
			break
		}
	}
	u.mu.Unlock()

	return updated, nil
}

func snapshotSession(s *savedSession) savedSnapshot {
	ids := make(map[uuid.UUID]struct{}, len(s.ids))
	for id := range s.ids {
		ids[id] = struct{}{}
	}
	return savedSnapshot{
		ids:  ids,
		list: append([]savedjob.SavedJob(nil), s.list...),
	}
}
