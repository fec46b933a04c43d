package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vyaha-be/internal/auth"
	"vyaha-be/internal/cart"
	"vyaha-be/internal/category"
	"vyaha-be/internal/config"
	"vyaha-be/internal/db"
	"vyaha-be/internal/handler"
	"vyaha-be/internal/logger"
	"vyaha-be/internal/middleware"
	"vyaha-be/internal/notifier"
	"vyaha-be/internal/order"
	"vyaha-be/internal/pricing"
	"vyaha-be/internal/product"
	"vyaha-be/internal/report"
	"vyaha-be/internal/user"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	initDBFunc      = db.InitDB
	startServerFunc = startServer
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	addr := ":" + cfg.AppPort
	logger.L().Info("http server starting", zap.String("addr", addr), zap.String("env", cfg.AppEnv))
	return startServerFunc(addr, newServer(cfg, database))
}

// newServer wires repositories, services and the middleware chain.
func newServer(cfg *config.Config, database *sql.DB) http.Handler {
	policy := pricing.FromConfig(cfg.Pricing)
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	categorySvc := category.NewService(category.NewRepository(database))

	cartSvc := cart.NewService(cart.NewRepository(database), productRepo, policy)
	orderSvc := order.NewService(order.NewRepository(database), cartSvc, policy)

	userSvc := user.NewService(user.NewRepository(database), issuer, notifier.New(cfg), user.Options{
		OTPTTL:    cfg.OTPTTL,
		ClientURL: cfg.ClientURL,
	})

	h := handler.New(handler.Deps{
		Users:        userSvc,
		Products:     productSvc,
		Categories:   categorySvc,
		Carts:        cartSvc,
		Orders:       orderSvc,
		Reports:      report.NewService(productSvc, orderSvc),
		TokenTTL:     cfg.JWTTTL,
		SecureCookie: cfg.AppEnv == "production",
	})

	var root http.Handler = h.Router(cfg.CORSOrigins)
	root = middleware.RateLimitMiddleware(cfg.InternalKey)(root)
	root = middleware.AuthMiddleware(issuer)(root)
	root = logger.LoggingMiddleware(root)
	root = logger.RequestIDMiddleware(root)
	return root
}

// startServer serves until SIGINT/SIGTERM, then drains in-flight requests.
func startServer(addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
