// Package app wires configuration, storage and transport into a running
// contracts service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadp "auto-loan-contracts/internal/adapter/http"
	appmw "auto-loan-contracts/internal/adapter/middleware"
	"auto-loan-contracts/internal/adapter/repository/gormrepo"
	"auto-loan-contracts/internal/config"
	"auto-loan-contracts/internal/infrastructure/cache"
	"auto-loan-contracts/internal/infrastructure/db"
	"auto-loan-contracts/internal/platform/logger"
	contractuc "auto-loan-contracts/internal/usecase/contract"
	noteuc "auto-loan-contracts/internal/usecase/note"
	"auto-loan-contracts/internal/usecase/schedule"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// NewServer builds the Echo instance. rdb may be nil, which turns off
// idempotent replay and the per-application schedule lock.
func NewServer(cfg *config.Config, gdb *gorm.DB, rdb *redis.Client, log *logger.Logger) (*echo.Echo, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}

	tx := gormrepo.NewGormUoW(gdb)
	contracts := contractuc.NewUsecase(gormrepo.NewContractRepository(gdb), tx, log)
	notes := noteuc.NewUsecase(gormrepo.NewNoteRepository(gdb), tx, schedule.NewCalculator(), log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.RequestID(), middleware.Logger(), middleware.Recover())

	if rdb != nil {
		e.Use(appmw.IdempotencyMiddleware(rdb, cfg.IdempotencyTTL(), log))
		notes.WithLocker(cache.NewKeyLock(rdb, cfg.ScheduleLockTTL()))
	}

	httpadp.Register(e, httpadp.NewHandler(sqlDB), httpadp.NewContractHandler(contracts, log), httpadp.NewNoteHandler(notes, log))
	return e, nil
}

func openDB(cfg *config.Config, log *logger.Logger) (*gorm.DB, error) {
	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBDriver, err)
	}
	log.Info("database connected", "driver", cfg.DBDriver)
	return gdb, nil
}

// Migrate creates or updates the schema and returns.
func Migrate(cfg *config.Config, log *logger.Logger) error {
	gdb, err := openDB(cfg, log)
	if err != nil {
		return err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := db.Migrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info("schema migrated")
	return nil
}

// Serve runs the HTTP server until ctx is cancelled or a shutdown signal
// arrives.
func Serve(ctx context.Context, cfg *config.Config, log *logger.Logger, migrate bool) error {
	gdb, err := openDB(cfg, log)
	if err != nil {
		return err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer sqlDB.Close()
	}
	if migrate {
		if err := db.Migrate(gdb); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info("schema migrated")
	}

	var rdb *redis.Client
	if cfg.RedisEnabled {
		rdb, err = cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return fmt.Errorf("open redis %s: %w", cfg.RedisAddr, err)
		}
		defer rdb.Close()
		log.Info("redis connected", "addr", cfg.RedisAddr)
	} else {
		log.Warn("redis disabled: no idempotent replay, schedule generation not locked")
	}

	e, err := NewServer(cfg, gdb, rdb, log)
	if err != nil {
		return err
	}

	addr := ":" + cfg.AppPort
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting HTTP server", "address", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			log.Info("received shutdown signal", "signal", sig.String())
		case <-gCtx.Done():
			log.Info("context cancelled, initiating shutdown")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error("http server shutdown error", "err", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("application error", "err", err)
		return err
	}
	log.Info("server stopped")
	return nil
}
