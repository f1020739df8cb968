// Package storage содержит работу с базой данных.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"moviewatch/internal/model"
	"moviewatch/internal/storage/repository"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
	"go.uber.org/zap"
)

// SQLite представляет подключение к базе данных каталога
type SQLite struct {
	db     *bun.DB
	logger *zap.Logger
}

// New открывает базу данных и проверяет соединение.
// Одно соединение живет весь прогон: конкурентного доступа нет,
// а лишние открытия на каждую операцию ничего не дают.
func New(path string, logger *zap.Logger) (*SQLite, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite: один писатель
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	// Добавляем отладку в режиме разработки
	if logger.Core().Enabled(zap.DebugLevel) {
		db.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(true),
			bundebug.FromEnv("BUNDEBUG"),
		))
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Connected to SQLite database with Bun ORM", zap.String("path", path))

	return &SQLite{
		db:     db,
		logger: logger,
	}, nil
}

// dsn готовит строку подключения. Готовые DSN вида file: пропускаются как есть.
func dsn(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	return "file:" + path + "?_pragma=busy_timeout(5000)"
}

// Close закрывает соединение с базой данных
func (s *SQLite) Close() error {
	return s.db.Close()
}

// GetDB возвращает подключение к базе данных
func (s *SQLite) GetDB() *bun.DB {
	return s.db
}

// GetMovieRepository возвращает репозиторий фильмов
func (s *SQLite) GetMovieRepository() model.MovieRepository {
	return repository.NewMovieRepository(s.db, s.logger)
}
