// Package repository содержит репозитории для работы с базой данных.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strings"
	"time"

	"moviewatch/internal/model"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// MovieRepository реализует интерфейс для работы с фильмами
type MovieRepository struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewMovieRepository создает новый репозиторий фильмов
func NewMovieRepository(db *bun.DB, logger *zap.Logger) *MovieRepository {
	return &MovieRepository{
		db:     db,
		logger: logger,
	}
}

// EnsureSchema идемпотентно создает таблицу фильмов
func (r *MovieRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.NewCreateTable().
		Model((*model.Movie)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return &PersistenceError{Op: "create table", Err: err}
	}

	return nil
}

// GetByTitleAndID возвращает фильм по названию и внешнему ID.
// Отсутствие записи не ошибка: возвращается nil.
func (r *MovieRepository) GetByTitleAndID(ctx context.Context, title, imdbID string) (*model.Movie, error) {
	movie := new(model.Movie)

	err := r.db.NewSelect().
		Model(movie).
		Where("title = ?", title).
		Where("imdb_id = ?", imdbID).
		Limit(1).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "lookup", Err: err}
	}

	return movie, nil
}

// DaysSinceUpdate возвращает число дней с последнего обновления записи
// с данным названием. Второй результат сообщает, есть ли такая запись вообще.
func (r *MovieRepository) DaysSinceUpdate(ctx context.Context, title string) (int, bool, error) {
	var days sql.NullFloat64

	err := r.db.NewSelect().
		Model((*model.Movie)(nil)).
		ColumnExpr("julianday('now') - julianday(updated_at)").
		Where("title = ?", title).
		Limit(1).
		Scan(ctx, &days)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, &PersistenceError{Op: "freshness check", Err: err}
	}
	if !days.Valid {
		return 0, false, nil
	}

	return int(math.Round(days.Float64)), true, nil
}

// Upsert сохраняет запись по ключу (title, imdb_id): существующая строка
// перезаписывается целиком с обновлением updated_at, новая вставляется
// с created_at = updated_at = now. Дата первой вставки при обновлении
// сохраняется.
func (r *MovieRepository) Upsert(ctx context.Context, movie *model.Movie) (model.UpsertResult, error) {
	existing, err := r.GetByTitleAndID(ctx, movie.Title, movie.IMDBID)
	if err != nil {
		return 0, err
	}

	now := time.Now()

	if existing != nil {
		movie.ID = existing.ID
		movie.CreatedAt = existing.CreatedAt
		movie.UpdatedAt = now

		// watch_status не в списке колонок: его меняет только слой просмотра
		_, err := r.db.NewUpdate().
			Model(movie).
			Column("release_date", "genre", "rating", "plot", "poster",
				"source_url", "box_office", "runtime", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return 0, &PersistenceError{Op: "update", Err: err}
		}

		r.logger.Info("Updated movie",
			zap.String("title", movie.Title),
			zap.String("imdb_id", movie.IMDBID))

		return model.ResultUpdated, nil
	}

	movie.CreatedAt = now
	movie.UpdatedAt = now

	if _, err := r.db.NewInsert().Model(movie).Exec(ctx); err != nil {
		return 0, &PersistenceError{Op: "insert", Err: err}
	}

	r.logger.Info("Inserted new movie",
		zap.String("title", movie.Title),
		zap.String("imdb_id", movie.IMDBID))

	return model.ResultInserted, nil
}

// List возвращает выборку каталога для слоя просмотра
func (r *MovieRepository) List(ctx context.Context, filter model.ListFilter) ([]model.Movie, error) {
	var movies []model.Movie

	query := r.db.NewSelect().Model(&movies)

	if filter.WatchlistOnly {
		query = query.Where("watch_status = ?", model.StatusWant)
	} else if filter.MinRating > 0 {
		query = query.Where("CAST(rating AS REAL) >= ?", filter.MinRating)
	}

	if filter.Genre != "" {
		query = query.Where("genre LIKE ?", "%"+strings.ToLower(filter.Genre)+"%")
	}

	if filter.BoxOfficeHits {
		query = query.Where("box_office > ?", 1000000)
	}

	if filter.Title != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Title)+"%")
	} else {
		query = query.Where("watch_status NOT IN (?)", bun.In([]model.WatchStatus{
			model.StatusSeen, model.StatusDismissed,
		}))
	}

	// Короткометражки не показываем, но runtime = 0 у старых записей пропускаем
	query = query.Where("(runtime >= 60 OR runtime = 0)")

	// Свежие по году выпуска, внутри года по оценке
	query = query.
		OrderExpr("strftime('%Y', release_date) DESC").
		OrderExpr("CAST(rating AS REAL) DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	query = query.Limit(limit)

	if err := query.Scan(ctx); err != nil {
		return nil, &PersistenceError{Op: "list", Err: err}
	}

	return movies, nil
}

// SetWatchStatus обновляет статус просмотра по внешнему ID
func (r *MovieRepository) SetWatchStatus(ctx context.Context, imdbID string, status model.WatchStatus) error {
	if !status.Valid() {
		return &PersistenceError{Op: "set status", Err: errors.New("unknown watch status")}
	}

	res, err := r.db.NewUpdate().
		Model((*model.Movie)(nil)).
		Set("watch_status = ?", status).
		Where("imdb_id = ?", imdbID).
		Exec(ctx)
	if err != nil {
		return &PersistenceError{Op: "set status", Err: err}
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		r.logger.Warn("No movie found for status update", zap.String("imdb_id", imdbID))
	}

	return nil
}
