// Package model содержит модели данных.
//
// Группа: ENTITIES - Основные сущности
// Содержит: Movie, Candidate, MovieRepository
package model

import (
	"context"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// WatchStatus представляет статус просмотра фильма.
// Меняется только слоем просмотра каталога, конвейер загрузки его не трогает.
type WatchStatus string

const (
	StatusNone      WatchStatus = ""
	StatusWant      WatchStatus = "w"
	StatusSeen      WatchStatus = "s"
	StatusDismissed WatchStatus = "d"
)

// Valid проверяет, что статус входит в допустимый набор
func (s WatchStatus) Valid() bool {
	switch s {
	case StatusNone, StatusWant, StatusSeen, StatusDismissed:
		return true
	}
	return false
}

// Candidate представляет фильм со страницы списка, еще не сверенный с метаданными
type Candidate struct {
	Title        string
	DetailURL    string
	ThumbnailURL string
}

// Movie представляет фильм
type Movie struct {
	bun.BaseModel `bun:"table:movies"`

	ID          int64       `bun:"id,pk,autoincrement" json:"id"`
	Title       string      `bun:"title,notnull" json:"title"`
	IMDBID      string      `bun:"imdb_id,unique" json:"imdb_id"`
	ReleaseDate time.Time   `bun:"release_date,nullzero" json:"release_date"`
	Genre       string      `bun:"genre" json:"genre"` // Нормализованный нижний регистр
	Rating      string      `bun:"rating,notnull,default:'0'" json:"rating"`
	Plot        string      `bun:"plot" json:"plot"`
	Poster      string      `bun:"poster" json:"poster"`
	SourceURL   string      `bun:"source_url" json:"source_url"` // Страница фильма на источнике списка
	WatchStatus WatchStatus `bun:"watch_status,notnull,default:''" json:"watch_status"`
	BoxOffice   int64       `bun:"box_office,notnull,default:0" json:"box_office"`
	Runtime     int         `bun:"runtime,notnull,default:0" json:"runtime"` // Минуты
	CreatedAt   time.Time   `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time   `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// Validate проверяет валидность записи перед сохранением
func (m *Movie) Validate() error {
	var errors ValidationErrors

	if err := ValidateRequired("title", m.Title); err != nil {
		errors = append(errors, err.(ValidationError))
	}

	if err := ValidateRequired("imdb_id", m.IMDBID); err != nil {
		errors = append(errors, err.(ValidationError))
	}

	if m.Rating == "" {
		errors = append(errors, ValidationError{Field: "rating", Message: "rating must be a numeric string or \"0\""})
	}

	if !m.WatchStatus.Valid() {
		errors = append(errors, ValidationError{Field: "watch_status", Message: "unknown watch status"})
	}

	if errors.HasErrors() {
		return errors
	}

	return nil
}

// NormalizeGenre приводит жанр к нормализованному виду для хранения
func NormalizeGenre(genre string) string {
	return strings.ToLower(strings.TrimSpace(genre))
}

// UpsertResult показывает, была ли запись вставлена или обновлена
type UpsertResult int

const (
	ResultInserted UpsertResult = iota
	ResultUpdated
)

// ListFilter представляет фильтр выборки каталога для слоя просмотра
type ListFilter struct {
	Genre         string
	Title         string
	MinRating     float64
	BoxOfficeHits bool
	WatchlistOnly bool
	Limit         int
}

// MovieRepository определяет интерфейс для работы с фильмами
type MovieRepository interface {
	EnsureSchema(ctx context.Context) error
	GetByTitleAndID(ctx context.Context, title, imdbID string) (*Movie, error)
	DaysSinceUpdate(ctx context.Context, title string) (int, bool, error)
	Upsert(ctx context.Context, movie *Movie) (UpsertResult, error)
	List(ctx context.Context, filter ListFilter) ([]Movie, error)
	SetWatchStatus(ctx context.Context, imdbID string, status WatchStatus) error
}
