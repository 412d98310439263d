package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"jobstream/internal/config"
	"jobstream/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap assembles the container, the fiber app, and the background
// workers. The returned cleanup stops the realtime listener and closes
// every connection the container owns.
func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registerGlobalMiddleware(f, logger)
	c.Routes.Register(f)

	listenerCtx, stopListener := context.WithCancel(context.Background())
	go c.Hub.Run()
	go func() {
		if err := c.Listener.Run(listenerCtx); err != nil {
			logger.Printf("Realtime listener stopped | error=%v", err)
		}
	}()

	cleanup := func() error {
		stopListener()
		return c.Close()
	}

	return &App{Fiber: f, Container: c}, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware().Middleware())
	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
