// Package pipeline содержит оркестратор загрузки каталога.
package pipeline

import (
	"context"

	"moviewatch/internal/omdb"
)

// Counters представляет итоги одного прогона.
// Никакого глобального состояния: аккумулятор живет в рамках прогона
// и возвращается вызывающему.
type Counters struct {
	New     int
	Updated int
	Skipped int
	Errors  int
}

// MetadataResolver определяет интерфейс источника канонических метаданных
type MetadataResolver interface {
	Resolve(ctx context.Context, title string, year int) (*omdb.Metadata, error)
}
