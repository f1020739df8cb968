package scraper

import (
	"regexp"
	"strconv"

	"moviewatch/internal/model"

	"go.uber.org/zap"
)

// Пример на странице фильма:
// <p> <strong>Release:</strong><a href="https://.../release/2024.html">2024</a></p>
var releaseYearPattern = regexp.MustCompile(`<strong>Release:</strong> *?<a href=".*?">(\d+)</a>`)

// ExtractYear извлекает год выпуска со страницы фильма.
// Это подсказка для поиска метаданных, а не авторитетное значение:
// при отсутствии совпадения возвращается текущий год.
func (e *Extractor) ExtractYear(html string) int {
	match := releaseYearPattern.FindStringSubmatch(html)
	if match == nil {
		year := model.DefaultYear()
		e.logger.Warn("No release year found on detail page, using current year",
			zap.Int("year", year))
		return year
	}

	year, err := strconv.Atoi(match[1])
	if err != nil {
		return model.DefaultYear()
	}

	return year
}
