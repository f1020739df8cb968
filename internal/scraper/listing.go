package scraper

import (
	"fmt"
	"strings"

	"moviewatch/internal/model"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// ParseListing извлекает кандидатов со страницы списка в порядке документа.
// Элементы без названия, ссылки или постера молча пропускаются.
func (e *Extractor) ParseListing(html string) ([]model.Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing HTML: %w", err)
	}

	var candidates []model.Candidate

	doc.Find(".ml-item").Each(func(i int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Find(".mli-info h2").Text())
		href, _ := sel.Find("a.ml-mask").Attr("href")
		// Настоящий URL постера лежит в lazy-load атрибуте
		thumb, _ := sel.Find("img.mli-thumb").Attr("data-original")

		if title == "" || href == "" || thumb == "" {
			e.logger.Debug("Dropping incomplete listing item",
				zap.Int("index", i),
				zap.String("title", title))
			return
		}

		candidates = append(candidates, model.Candidate{
			Title:        norm.NFC.String(title),
			DetailURL:    href,
			ThumbnailURL: thumb,
		})
	})

	e.logger.Info("Parsed listing page", zap.Int("candidates", len(candidates)))

	return candidates, nil
}
