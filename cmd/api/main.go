package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ClaudesonRodrigo/english-turbo/internal/adapter/repo"
	"github.com/ClaudesonRodrigo/english-turbo/internal/authz"
	"github.com/ClaudesonRodrigo/english-turbo/internal/course"
	"github.com/ClaudesonRodrigo/english-turbo/internal/http/handlers"
	"github.com/ClaudesonRodrigo/english-turbo/internal/http/httpapi"
	"github.com/ClaudesonRodrigo/english-turbo/internal/infra"
	"github.com/ClaudesonRodrigo/english-turbo/internal/infra/geoip"
	"github.com/ClaudesonRodrigo/english-turbo/internal/infra/google"
	"github.com/ClaudesonRodrigo/english-turbo/internal/middleware"
	"github.com/ClaudesonRodrigo/english-turbo/internal/progress"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	redisClient, err := infra.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect redis")
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error().Err(err).Msg("redis close failed")
			}
		}()
	}

	var feed progress.Feed
	if redisClient != nil {
		feed = progress.NewRedisFeed(redisClient)
	} else {
		logger.Warn().Msg("redis not configured, completion feed is single-replica")
		feed = progress.NewMemoryFeed()
	}

	countryResolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open geoip database")
	}
	var countryLookup middleware.CountryLookup
	if countryResolver != nil {
		countryLookup = countryResolver.CountryCode
		defer func() { _ = countryResolver.Close() }()
	}

	lessons := repo.NewLessonRepository(dbpool)
	profiles := repo.NewProfileRepository(dbpool)
	progressRepo := repo.NewProgressRepository(dbpool)

	app := &handlers.App{
		Logger:     logger,
		Lessons:    lessons,
		Profiles:   profiles,
		Progress:   progressRepo,
		Sessions:   course.NewSessionStore(),
		Resolver:   authz.NewResolver(cfg.SuperAdminEmails, profiles, logger),
		Recorder:   progress.NewRecorder(progressRepo, feed, logger),
		Feed:       feed,
		Google:     google.NewVerifier(cfg.GoogleIssuer, cfg.GoogleClientID),
		JWTSecret:  cfg.JWTSecret,
		JWTIssuer:  "english-turbo",
		SessionTTL: cfg.SessionTTL,
	}

	router := httpapi.NewRouter(app, cfg, countryLookup)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
