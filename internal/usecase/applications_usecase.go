package usecase

import (
	"context"
	"errors"
	"log"
	"sync"

	"jobstream/internal/domain/application"

	"github.com/google/uuid"
)

var (
	ErrApplicationsFailed    = errors.New("failed to load applications")
	ErrApplicationNotFound   = errors.New("application not found")
	ErrStatusNotAllowed      = errors.New("status transition not allowed")
	ErrApplicationSubmission = errors.New("failed to submit application")
)

// RemoteError carries the server-provided message for a failed
// submission so the UI can surface it verbatim.
type RemoteError struct {
	Message string
	Cause   error
}

func (e *RemoteError) Error() string { return e.Message }
func (e *RemoteError) Unwrap() error { return e.Cause }

type ApplicationRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]application.Application, error)
	Insert(ctx context.Context, userID, jobID uuid.UUID, coverLetter, resumeURL *string) (application.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status, notes *string) (application.Application, error)
}

type appSession struct {
	list   []application.Application
	jobIDs map[uuid.UUID]struct{}
	loaded bool
}

// ApplicationsUsecase tracks a user's applications. Submitting is
// deliberately not optimistic: the insert has side effects that must
// not be assumed to have succeeded, so the list is refetched wholesale
// after a confirmed submission.
type ApplicationsUsecase struct {
	repo   ApplicationRepository
	logger *log.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*appSession
}

func NewApplicationsUsecase(repo ApplicationRepository, logger *log.Logger) *ApplicationsUsecase {
	return &ApplicationsUsecase{
		repo:     repo,
		logger:   logger,
		sessions: make(map[uuid.UUID]*appSession),
	}
}

func (u *ApplicationsUsecase) Load(ctx context.Context, userID uuid.UUID) ([]application.Application, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	list, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("applications load failed | user=%s err=%v", userID, err)
		}
		return nil, ErrApplicationsFailed
	}

	jobIDs := make(map[uuid.UUID]struct{}, len(list))
	for _, a := range list {
		jobIDs[a.JobID] = struct{}{}
	}

	u.mu.Lock()
	u.sessions[userID] = &appSession{list: list, jobIDs: jobIDs, loaded: true}
	u.mu.Unlock()

	return append([]application.Application(nil), list...), nil
}

func (u *ApplicationsUsecase) ensureLoaded(ctx context.Context, userID uuid.UUID) error {
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

// List returns the session's applications, optionally narrowed to one
// status ("all" or empty returns everything).
func (u *ApplicationsUsecase) List(ctx context.Context, userID uuid.UUID, status string) ([]application.Application, error) {
	if err := u.ensureLoaded(ctx, userID); err != nil {
		return nil, err
	}

	u.mu.Lock()
	list := append([]application.Application(nil), u.sessions[userID].list...)
	u.mu.Unlock()

	if status == "" || status == "all" {
		return list, nil
	}
	filtered := make([]application.Application, 0, len(list))
	for _, a := range list {
		if string(a.Status) == status {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

func (u *ApplicationsUsecase) HasApplied(userID, jobID uuid.UUID) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	s, ok := u.sessions[userID]
	if !ok {
		return false
	}
	_, applied := s.jobIDs[jobID]
	return applied
}

func (u *ApplicationsUsecase) ForJob(userID, jobID uuid.UUID) (application.Application, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	s, ok := u.sessions[userID]
	if !ok {
		return application.Application{}, false
	}
	for _, a := range s.list {
		if a.JobID == jobID {
			return a, true
		}
	}
	return application.Application{}, false
}

// Lookup is the loading variant of ForJob for callers that may arrive
// before the session list has been fetched.
func (u *ApplicationsUsecase) Lookup(ctx context.Context, userID, jobID uuid.UUID) (application.Application, bool, error) {
	if err := u.ensureLoaded(ctx, userID); err != nil {
		return application.Application{}, false, err
	}
	a, ok := u.ForJob(userID, jobID)
	return a, ok, nil
}

func (u *ApplicationsUsecase) Counts(ctx context.Context, userID uuid.UUID) (application.Counts, error) {
	if err := u.ensureLoaded(ctx, userID); err != nil {
		return application.Counts{}, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return application.CountByStatus(u.sessions[userID].list), nil
}

// Apply submits an application. No local state changes until the
// remote store confirms; afterwards the list is refreshed in full.
// Duplicate submissions are rejected server-side, not here.
func (u *ApplicationsUsecase) Apply(ctx context.Context, userID, jobID uuid.UUID, coverLetter, resumeURL *string) (application.Application, error) {
	if userID == uuid.Nil {
		return application.Application{}, ErrNotAuthenticated
	}

	created, err := u.repo.Insert(ctx, userID, jobID, coverLetter, resumeURL)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("application submit failed | user=%s job=%s err=%v", userID, jobID, err)
		}
		return application.Application{}, &RemoteError{Message: err.Error(), Cause: errors.Join(ErrApplicationSubmission, err)}
	}

	if _, err := u.Load(ctx, userID); err != nil && u.logger != nil {
		u.logger.Printf("applications refresh after submit | user=%s err=%v", userID, err)
	}

	return created, nil
}

// UpdateStatus moves an application along the one-way progression.
func (u *ApplicationsUsecase) UpdateStatus(ctx context.Context, userID, id uuid.UUID, next application.Status, notes *string) (application.Application, error) {
	if err := u.ensureLoaded(ctx, userID); err != nil {
		return application.Application{}, err
	}

	u.mu.Lock()
	var current *application.Application
	for i := range u.sessions[userID].list {
		if u.sessions[userID].list[i].ID == id {
			current = &u.sessions[userID].list[i]
			break
		}
	}
	u.mu.Unlock()

	if current == nil {
		return application.Application{}, ErrApplicationNotFound
	}
	if !current.Status.CanTransitionTo(next) {
		return application.Application{}, ErrStatusNotAllowed
	}

	updated, err := u.repo.UpdateStatus(ctx, id, next, notes)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("application status update failed | id=%s err=%v", id, err)
		}
		return application.Application{}, &RemoteError{Message: err.Error(), Cause: errors.Join(ErrApplicationsFailed, err)}
	}

	u.mu.Lock()
	for i := range u.sessions[userID].list {
		if u.sessions[userID].list[i].ID == id {
			u.sessions[userID].list[i] = updated
			break
		}
	}
	u.mu.Unlock()

	return updated, nil
}

// Withdraw is the only status transition the client initiates on its
// own; it is legal from any non-terminal state.
func (u *ApplicationsUsecase) Withdraw(ctx context.Context, userID, id uuid.UUID) (application.Application, error) {
	return u.UpdateStatus(ctx, userID, id, application.StatusWithdrawn, nil)
}
