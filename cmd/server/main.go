package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/opergia/energia-backend/internal/auth"
	"github.com/opergia/energia-backend/internal/config"
	"github.com/opergia/energia-backend/internal/database"
	"github.com/opergia/energia-backend/internal/handler"
	applog "github.com/opergia/energia-backend/internal/logger"
	"github.com/opergia/energia-backend/internal/pdfreader"
	"github.com/opergia/energia-backend/internal/queue"
	"github.com/opergia/energia-backend/internal/repository"
	"github.com/opergia/energia-backend/internal/router"
	"github.com/opergia/energia-backend/internal/validate"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	zlog := applog.New()
	defer func() { _ = zlog.Sync() }()

	pool := database.NewPool(cfg)
	defer pool.Close()

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := pool.Acquire(startCtx)
	if err != nil {
		zlog.Fatalw("database unreachable", "err", err)
	}
	if err := database.Migrate(db); err != nil {
		zlog.Fatalw("migrations failed", "err", err)
	}

	users := repository.NewUserRepo(pool)
	sessions := repository.NewSessionRepo(pool)
	people := repository.NewPersonRepo(pool)
	units := repository.NewConsumptionUnitRepo(pool)
	plants := repository.NewPowerPlantRepo(pool)
	dists := repository.NewDistributorRepo(pool)
	operators := repository.NewOperatorRepo(pool)
	invoices := repository.NewInvoiceRepo(pool)

	authSvc := auth.NewService(users, sessions, cfg.JWTSecret, cfg.JWTTTL, cfg.BcryptCost, zlog)

	// Sessions issued by a previous process cannot be replayed.
	if err := authSvc.InvalidateAllSessions(startCtx); err != nil {
		zlog.Fatalw("startup session invalidation failed", "err", err)
	}

	pdfClient := pdfreader.New(cfg.PDFWorkerURL, cfg.RequestTimeout)
	rdb := config.NewRedisClient()
	rlCfg := config.LoadRateLimitConfig()

	e := echo.New()
	e.HideBanner = true
	e.Validator = validate.New()

	router.Register(e, router.Handlers{
		Auth:     handler.NewAuthHandler(authSvc, zlog),
		People:   handler.NewPersonHandler(people, zlog),
		Units:    handler.NewConsumptionUnitHandler(units, zlog),
		Plants:   handler.NewPowerPlantHandler(plants, zlog),
		Dists:    handler.NewDistributorHandler(dists, zlog),
		Operator: handler.NewOperatorHandler(operators, zlog),
		Invoices: handler.NewInvoiceHandler(invoices, units, pdfClient, cfg.UploadDir, zlog),
	}, authSvc, rlCfg, rdb)

	go func() {
		if err := queue.StartInvoiceConsumer(); err != nil {
			zlog.Errorw("invoice consumer stopped", "err", err)
		}
	}()

	go func() {
		addr := ":" + cfg.Port
		zlog.Infow("listening", "addr", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			zlog.Fatalw("server failed", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Infow("shutting down")
	shutCtx, shutCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutCancel()
	if err := e.Shutdown(shutCtx); err != nil {
		zlog.Errorw("shutdown failed", "err", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
