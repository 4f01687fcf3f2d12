package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/venue-booking-directory/internal/config"
	"github.com/iliyamo/venue-booking-directory/internal/database"
	"github.com/iliyamo/venue-booking-directory/internal/flash"
	"github.com/iliyamo/venue-booking-directory/internal/handler"
	"github.com/iliyamo/venue-booking-directory/internal/logger"
	"github.com/iliyamo/venue-booking-directory/internal/middleware"
	"github.com/iliyamo/venue-booking-directory/internal/queue"
	"github.com/iliyamo/venue-booking-directory/internal/repository"
	"github.com/iliyamo/venue-booking-directory/internal/router"
	"github.com/iliyamo/venue-booking-directory/internal/service"
	"github.com/iliyamo/venue-booking-directory/internal/view"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Open(database.Options{
		User:            cfg.DB.User,
		Pass:            cfg.DB.Pass,
		Host:            cfg.DB.Host,
		Port:            cfg.DB.Port,
		Name:            cfg.DB.Name,
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	log.Info("database connected", zap.String("host", cfg.DB.Host), zap.String("name", cfg.DB.Name))

	if cfg.DB.Migrate {
		if err := database.Migrate(db, log); err != nil {
			return err
		}
	}

	// Redis is optional: without it writes are not rate limited and
	// flashes live in cookies.
	rdb, err := config.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, continuing without it", zap.Error(err))
	} else {
		defer rdb.Close()
	}

	var store flash.Store = flash.NewCookieStore(cfg.Flash.TTL)
	if cfg.Flash.Store == "redis" {
		if rdb != nil {
			store = flash.NewRedisStore(rdb, cfg.Flash.TTL)
		} else {
			log.Warn("FLASH_STORE=redis but redis is unavailable, using cookies")
		}
	}

	var events service.EventPublisher
	if cfg.Activity.Enabled {
		events = queue.NewPublisher(cfg.Activity.RabbitMQURL, log)
	}

	dir := service.New(
		repository.NewVenueRepo(db),
		repository.NewArtistRepo(db),
		repository.NewShowRepo(db),
		events,
		log,
	)

	renderer, err := view.New()
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.HTTPErrorHandler = router.ErrorHandler(log)
	e.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		echomw.Recover(),
		middleware.LoadFlashes(store, log),
	)
	h := handler.NewHandler(dir, store, log)
	router.RegisterRoutes(e, h, middleware.NewTokenBucket(cfg.RateLimit, rdb, log))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := e.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err, ok := <-errCh:
		if ok {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
