package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"jobstream/internal/config"
	"jobstream/internal/database"
	"jobstream/internal/database/migration"
	dbpostgres "jobstream/internal/database/postgres"
	"jobstream/internal/delivery/http/handler"
	"jobstream/internal/delivery/http/middleware"
	"jobstream/internal/delivery/http/routes"
	"jobstream/internal/domain/job"
	"jobstream/internal/infrastructure/cache"
	"jobstream/internal/pkg/jwt"
	"jobstream/internal/realtime"
	"jobstream/internal/repository"
	"jobstream/internal/usecase"
	"jobstream/internal/ws"
)

// Container wires configuration, storage, usecases, and delivery
// together. Everything downstream receives its dependencies from here.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis

	Feed          *usecase.FeedUsecase
	Notifications *usecase.NotificationsUsecase

	Hub      *ws.Hub
	Listener *realtime.Listener

	Routes *routes.Registry

	subs []*realtime.Subscription
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	runner := migration.Runner{Dir: cfg.Database.MigrationsDir}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	kv := cache.NewRedis(cfg.Redis, logger)

	jobRepo := repository.NewPostgresJobRepository(db)
	savedRepo := repository.NewPostgresSavedJobRepository(db)
	appRepo := repository.NewPostgresApplicationRepository(db)
	settingsRepo := repository.NewPostgresSettingsRepository(db)
	profileRepo := repository.NewPostgresProfileRepository(db)
	userRepo := repository.NewPostgresUserRepository(db)

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	listingCache := usecase.NewListingCache(cfg.Feed.ListingTTL)
	feedUC := usecase.NewFeedUsecase(jobRepo, listingCache, logger)
	savedUC := usecase.NewSavedJobsUsecase(savedRepo, logger)
	appsUC := usecase.NewApplicationsUsecase(appRepo, logger)
	notifUC := usecase.NewNotificationsUsecase(kv, logger)
	settingsUC := usecase.NewSettingsUsecase(settingsRepo, kv, logger)
	profileUC := usecase.NewProfileUsecase(profileRepo, logger)
	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)

	// New-job alerts stay suppressed until the feed has loaded once.
	feedUC.OnFirstLoad(notifUC.SetReady)

	hub := ws.NewHub(logger)
	listener := realtime.NewListener(dbpostgres.DSN(cfg.Database), jobRepo, logger)

	c := &Container{
		Config:        cfg,
		Logger:        logger,
		DB:            db,
		Cache:         kv,
		Feed:          feedUC,
		Notifications: notifUC,
		Hub:           hub,
		Listener:      listener,
	}

	c.subs = append(c.subs,
		listener.Subscribe(func(ctx context.Context, j job.Job) {
			feedUC.Invalidate()
		}),
		listener.Subscribe(notifUC.HandleNewJob),
		listener.Subscribe(func(ctx context.Context, j job.Job) {
			ws.NotifyNewJob(hub, j)
		}),
	)

	c.Routes = &routes.Registry{
		Health:         handler.NewHealthHandler(db, kv),
		Auth:           handler.NewAuthHandler(authUC),
		Jobs:           handler.NewJobsHandler(feedUC, jobRepo),
		SavedJobs:      handler.NewSavedJobsHandler(savedUC),
		Applications:   handler.NewApplicationsHandler(appsUC),
		Notifications:  handler.NewNotificationsHandler(notifUC),
		Settings:       handler.NewSettingsHandler(settingsUC),
		Profile:        handler.NewProfileHandler(profileUC),
		WS:             ws.NewHandler(hub, logger),
		AuthMiddleware: middleware.NewAuthMiddleware(jwtSvc),
	}

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	for _, s := range c.subs {
		s.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
