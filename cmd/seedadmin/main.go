package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"vyaha-be/internal/auth"
	"vyaha-be/internal/config"
	"vyaha-be/internal/db"
	"vyaha-be/internal/logger"
	"vyaha-be/internal/notifier"
	"vyaha-be/internal/user"

	"go.uber.org/zap"
)

type adminSeeder interface {
	SeedAdmin(ctx context.Context, name, email, password string) (*user.User, bool, error)
}

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	name := flag.String("name", envOr("ADMIN_NAME", "Administrator"), "admin display name")
	email := flag.String("email", os.Getenv("ADMIN_EMAIL"), "admin email")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password")
	flag.Parse()

	database := db.InitDB(cfg)
	defer database.Close()

	svc := user.NewService(
		user.NewRepository(database),
		auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL),
		notifier.New(cfg),
		user.Options{OTPTTL: cfg.OTPTTL, ClientURL: cfg.ClientURL},
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := seed(ctx, svc, *name, *email, *password); err != nil {
		logger.L().Fatal("seeding admin failed", zap.Error(err))
	}
}

func seed(ctx context.Context, svc adminSeeder, name, email, password string) error {
	if email == "" || password == "" {
		return errors.New("admin email and password are required (-email/-password or ADMIN_EMAIL/ADMIN_PASSWORD)")
	}

	u, created, err := svc.SeedAdmin(ctx, name, email, password)
	if err != nil {
		return err
	}

	log := logger.L().With(zap.String("email", u.Email))
	if !created {
		log.Info("admin already exists, nothing to do")
		return nil
	}
	log.Info("admin created", zap.String("user_id", u.ID))
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
