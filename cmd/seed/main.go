package main

import (
	"context"
	_ "embed"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"toiletfinder/internal/auth"
	"toiletfinder/internal/config"
	"toiletfinder/internal/db"
	"toiletfinder/internal/logging"
	"toiletfinder/internal/repository"
	"toiletfinder/internal/service"
)

//go:embed fixtures.json
var defaultFixtures []byte

func main() {
	source := flag.String("source", os.Getenv("SEED_SOURCE"), "fixture file path or http(s) URL; empty uses the built-in fixtures")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	logger := logging.New(cfg.AppName+"-seed", cfg.Env)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, logger)
	if err != nil {
		logger.WithError(err).Fatal("database init")
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.WithError(err).Fatal("migrate")
	}
	logger.Info("database migrations completed")

	ctx := context.Background()
	fixture, err := loadFixture(ctx, *source, defaultFixtures)
	if err != nil {
		logger.WithError(err).Fatal("load fixtures")
	}

	store := repository.NewStore(gormDB)
	// Seeding never logs in, so sessions need no Redis.
	seeder := &Seeder{
		store:         store,
		authService:   service.NewAuthService(store, auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL), auth.NewTokenStore(nil), logger),
		toiletService: service.NewToiletService(store, logger),
		logger:        logger,
	}

	stats, err := seeder.Seed(ctx, fixture)
	if err != nil {
		logger.WithError(err).Fatal("seed")
	}

	logger.WithFields(logrus.Fields{
		"users_created":   stats.UsersCreated,
		"users_existing":  stats.UsersExisting,
		"toilets_created": stats.ToiletsCreated,
		"reviews_created": stats.ReviewsCreated,
	}).Info("seed completed")
}
