package scraper

import (
	"regexp"
	"strconv"

	"moviewatch/internal/model"

	"go.uber.org/zap"
)

// Пример блока structured data на странице оценок:
// aggregateRating":{"@type":"AggregateRating","ratingCount":83,"bestRating":10,"worstRating":1,"ratingValue":4.6
var ratingPattern = regexp.MustCompile(`ratingCount":(\d+),.*?ratingValue":([\d.]+)`)

// ExtractRating извлекает оценку и число голосов со страницы оценок.
// Отсутствие совпадения не ошибка: возвращается "0".
// Оценки с числом голосов ниже порога неотличимы от шума и тоже зануляются.
func (e *Extractor) ExtractRating(html string) (string, int) {
	match := ratingPattern.FindStringSubmatch(html)
	if match == nil {
		e.logger.Warn("No rating block found on ratings page")
		return model.DefaultRating, 0
	}

	votes, err := strconv.Atoi(match[1])
	if err != nil {
		votes = 0
	}
	rating := match[2]

	e.logger.Debug("Extracted rating",
		zap.String("rating", rating),
		zap.Int("votes", votes))

	if votes < e.minRatingVotes {
		e.logger.Info("Rating below confidence floor, forcing to 0",
			zap.Int("votes", votes),
			zap.Int("min_votes", e.minRatingVotes))
		return model.DefaultRating, votes
	}

	return rating, votes
}
