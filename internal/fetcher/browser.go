package fetcher

import (
	"context"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// BrowserFetcher получает страницы через уже запущенный браузер с включенной
// удаленной отладкой. Браузер должен быть запущен заранее, например:
//
//	chrome --remote-debugging-port=9222
type BrowserFetcher struct {
	config Config
	logger *zap.Logger
}

// NewBrowserFetcher создает новый экземпляр BrowserFetcher
func NewBrowserFetcher(config Config, logger *zap.Logger) *BrowserFetcher {
	return &BrowserFetcher{
		config: config,
		logger: logger,
	}
}

// Fetch загружает страницу в новой вкладке и возвращает итоговый HTML
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	allocCtx, cancelAlloc := chromedp.NewRemoteAllocator(ctx, f.config.BrowserURL)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	f.logger.Debug("Fetching page via browser", zap.String("url", url))

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}

	f.logger.Debug("Received page",
		zap.String("url", url),
		zap.Int("size", len(html)))

	saveDebugCopy(f.config.DebugDir, html, f.logger)

	return html, nil
}
