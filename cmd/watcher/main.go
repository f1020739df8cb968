// Package main запускает сборщик каталога фильмов.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"moviewatch/internal/config"
	"moviewatch/internal/fetcher"
	"moviewatch/internal/model"
	"moviewatch/internal/omdb"
	"moviewatch/internal/pipeline"
	"moviewatch/internal/storage"
	"moviewatch/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// Инициализация логгера
	log := logger.New()
	defer func() { _ = log.Sync() }()

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Создание контекста
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Обработка сигналов
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("Shutdown signal received")
		cancel()
	}()

	// Подключение к базе данных, одна сессия на весь прогон
	db, err := storage.New(cfg.DBPath, log)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	pageFetcher := fetcher.New(fetcher.Config{
		Mode:             cfg.FetchMode,
		BrowserURL:       cfg.BrowserURL,
		RequestDelay:     cfg.RequestDelay,
		DebugDir:         cfg.AppDataDir,
		HTTPClientConfig: cfg.HTTPClientConfig,
	}, log)

	resolver := omdb.NewClient(omdb.Config{
		BaseURL:          cfg.OMDBBaseURL,
		APIKey:           cfg.OMDBAPIKey,
		Timeout:          cfg.OMDBTimeout,
		HTTPClientConfig: cfg.HTTPClientConfig,
	}, log)

	pipe := pipeline.New(cfg, pageFetcher, resolver, db.GetMovieRepository(), log)

	// Любой аргумент включает режим одного кандидата
	if len(os.Args) > 1 {
		if _, err := pipe.RunSingle(ctx, singleCandidate(cfg, os.Args[1:])); err != nil {
			log.Error("Force run failed", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	if _, err := pipe.Run(ctx); err != nil {
		log.Error("Batch run failed", zap.Error(err))
		os.Exit(1)
	}
}

// singleCandidate собирает кандидата для принудительной проверки:
// либо из аргументов (название и URL страницы), либо проверенный вручную
// фильм по умолчанию
func singleCandidate(cfg *config.Config, args []string) model.Candidate {
	candidate := model.Candidate{
		Title:     "Lee",
		DetailURL: cfg.ListingBaseURL + "/movie/lee-1630857643.html",
	}

	if len(args) > 0 && args[0] != "" {
		candidate.Title = args[0]
	}
	if len(args) > 1 && args[1] != "" {
		candidate.DetailURL = args[1]
	}

	return candidate
}
