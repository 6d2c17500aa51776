package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"appointments-api/core/config"
	"appointments-api/core/database"
	"appointments-api/core/logger"
	"appointments-api/core/middleware"
	"appointments-api/core/utils"
	"appointments-api/modules/calendar"
	"appointments-api/modules/event"
	evservice "appointments-api/modules/event/service"
	"appointments-api/modules/occurrence"
	"appointments-api/modules/period"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Run boots the API server and blocks until shutdown
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	conn, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to init database: %w", err)
	}
	db := &conn
	defer db.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: utils.GenerateID,
	}))

	mw := middleware.NewMiddleware()

	// Deployments can swap these for custom policies.
	canEdit := evservice.PermissionFunc(evservice.DefaultCheckPermission)
	var selector evservice.EventSelector

	calendar.Init(e, db, mw)
	event.Init(e, db, mw, canEdit)
	occurrence.Init(e, db, mw, canEdit)
	period.Init(e, db, selector)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		logger.Info("server starting", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}
