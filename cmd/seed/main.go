package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"

	"github.com/ClaudesonRodrigo/english-turbo/internal/adapter/repo"
	"github.com/ClaudesonRodrigo/english-turbo/internal/infra"
	"github.com/ClaudesonRodrigo/english-turbo/internal/seed"
)

func main() {
	path := flag.String("file", "internal/seed/lessons.json", "path to the lesson catalog JSON file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	lessons, err := seed.Load(*path)
	if err != nil {
		logger.Fatal().Err(err).Str("file", *path).Msg("failed to load lesson catalog")
	}

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	if err := repo.NewLessonRepository(dbpool).UpsertAll(ctx, lessons); err != nil {
		logger.Fatal().Err(err).Msg("failed to upsert lessons")
	}
	logger.Info().Int("count", len(lessons)).Msg("lesson catalog seeded")
}
