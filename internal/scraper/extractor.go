// Package scraper содержит структурное извлечение полей из HTML страниц.
//
// Хрупкая логика селекторов и регулярных выражений изолирована здесь,
// чтобы ее можно было тестировать на сохраненных образцах страниц.
package scraper

import (
	"go.uber.org/zap"
)

// Extractor извлекает кандидатов, год выпуска и оценку из страниц источников
type Extractor struct {
	minRatingVotes int
	logger         *zap.Logger
}

// NewExtractor создает новый экземпляр Extractor
func NewExtractor(minRatingVotes int, logger *zap.Logger) *Extractor {
	return &Extractor{
		minRatingVotes: minRatingVotes,
		logger:         logger,
	}
}
