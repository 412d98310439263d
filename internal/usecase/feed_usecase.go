package usecase

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"jobstream/internal/domain/filtering"
	"jobstream/internal/domain/job"
)

var ErrFeedUnavailable = errors.New("failed to load jobs")

type JobReader interface {
	ListActive(ctx context.Context) ([]job.Job, error)
}

// FeedUsecase owns the job listing: remote fetch, transform, the
// shared listing cache, and the filter pass. onFirstLoad fires once
// after the first successful remote fetch; the notification layer uses
// it as its readiness signal so historical rows are never replayed as
// new.
type FeedUsecase struct {
	jobs   JobReader
	cache  *ListingCache
	logger *log.Logger
	now    func() time.Time

	firstLoad   sync.Once
	onFirstLoad func()
}

func NewFeedUsecase(jobs JobReader, cache *ListingCache, logger *log.Logger) *FeedUsecase {
	return &FeedUsecase{
		jobs:   jobs,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// OnFirstLoad registers the readiness callback. Must be called before
// the first Listing call.
func (u *FeedUsecase) OnFirstLoad(fn func()) {
	u.onFirstLoad = fn
}

// Listing serves from cache while it is fresh unless force is set. On
// a failed remote fetch any previously cached listing is returned
// alongside the error instead of being cleared.
func (u *FeedUsecase) Listing(ctx context.Context, force bool) ([]job.View, error) {
	if !force {
		if views, ok := u.cache.Get(); ok {
			return views, nil
		}
	}

	rows, err := u.jobs.ListActive(ctx)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("feed fetch failed | err=%v", err)
		}
		if stale, ok := u.cache.Stale(); ok {
			return stale, ErrFeedUnavailable
		}
		return nil, ErrFeedUnavailable
	}

	now := u.now()
	views := make([]job.View, 0, len(rows))
	for i, r := range rows {
		views = append(views, TransformJob(r, i, now))
	}
	u.cache.Put(views)

	u.firstLoad.Do(func() {
		if u.onFirstLoad != nil {
			u.onFirstLoad()
		}
	})

	return views, nil
}

// Search runs the filter engine over the (possibly cached) listing.
// Stale data still filters; the error travels with it.
func (u *FeedUsecase) Search(ctx context.Context, term, filterType string, spec filtering.Spec, force bool) ([]job.View, error) {
	views, err := u.Listing(ctx, force)
	if views == nil {
		return nil, err
	}
	return filtering.Apply(views, term, filterType, spec, u.now()), err
}

// Invalidate drops the cached listing so the next request refetches.
func (u *FeedUsecase) Invalidate() {
	u.cache.Invalidate()
}
