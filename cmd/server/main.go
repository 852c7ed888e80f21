package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"toiletfinder/docs"
	"toiletfinder/internal/auth"
	"toiletfinder/internal/cache"
	"toiletfinder/internal/config"
	"toiletfinder/internal/db"
	"toiletfinder/internal/handler"
	"toiletfinder/internal/logging"
	"toiletfinder/internal/repository"
	"toiletfinder/internal/router"
	"toiletfinder/internal/service"
)

// @title Toilet Finder API
// @version 1.0
// @description Crowd-sourced public toilet directory with consensus ratings.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := logging.New(cfg.AppName, cfg.Env)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, logger)
	if err != nil {
		logger.WithError(err).Fatal("database init")
	}

	if cfg.ResetDB {
		logger.Warn("RESET_DB=true detected, dropping all tables")
		db.Reset(gormDB, logger)
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.WithError(err).Fatal("migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, logger)
	defer cacheClient.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		logger.WithError(err).Warn("redis unreachable, logout revocation disabled until it recovers")
	}
	cancelPing()

	store := repository.NewStore(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	tokenStore := auth.NewTokenStore(cacheClient)

	authService := service.NewAuthService(store, jwtService, tokenStore, logger)
	toiletService := service.NewToiletService(store, logger)
	queryService := service.NewQueryService(store, logger)

	cookies := handler.NewCookieManager(cfg.CookieDomain, cfg.CookieSecure)
	authHandler := handler.NewAuthHandler(authService, cookies)
	toiletHandler := handler.NewToiletHandler(toiletService, queryService, cookies)
	apiHandler := handler.NewAPIHandler(toiletService, queryService)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, logger, jwtService, tokenStore, authHandler, toiletHandler, apiHandler)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
	logger.WithField("url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html").Info("swagger documentation available")

	go func() {
		addr := ":" + cfg.ServerPort
		logger.WithField("addr", addr).Info("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("server forced to shutdown")
	}
	logger.Info("server exited")
}
