package fetcher

import (
	"context"
	"errors"
	"net/http"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// HTTPFetcher получает страницы обычным HTTP запросом без браузера.
// Подходит для источников без JS-рендеринга.
type HTTPFetcher struct {
	config    Config
	logger    *zap.Logger
	transport *http.Transport
}

// NewHTTPFetcher создает новый экземпляр HTTPFetcher
func NewHTTPFetcher(config Config, logger *zap.Logger) *HTTPFetcher {
	transport := &http.Transport{
		MaxIdleConns:          config.HTTPClientConfig.MaxIdleConns,
		MaxIdleConnsPerHost:   config.HTTPClientConfig.MaxIdleConnsPerHost,
		IdleConnTimeout:       config.HTTPClientConfig.IdleConnTimeout,
		TLSHandshakeTimeout:   config.HTTPClientConfig.TLSHandshakeTimeout,
		ResponseHeaderTimeout: config.HTTPClientConfig.ResponseHeaderTimeout,
		DisableKeepAlives:     config.HTTPClientConfig.DisableKeepAlives,
	}

	return &HTTPFetcher{
		config:    config,
		logger:    logger,
		transport: transport,
	}
}

// newCollector creates a new Colly collector with configured middleware
func (f *HTTPFetcher) newCollector() *colly.Collector {
	collector := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.MaxDepth(1),
	)

	collector.WithTransport(f.transport)

	// Настраиваем задержки
	_ = collector.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 1,
		Delay:       f.config.RequestDelay,
	})

	collector.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.5")
		f.logger.Debug("Making request", zap.String("url", r.URL.String()))
	})

	collector.OnResponse(func(r *colly.Response) {
		f.logger.Debug("Received response",
			zap.String("url", r.Request.URL.String()),
			zap.Int("status", r.StatusCode),
			zap.Int("size", len(r.Body)))
	})

	return collector
}

// Fetch загружает страницу и возвращает ее HTML
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	select {
	case <-ctx.Done():
		return "", &FetchError{URL: url, Err: ctx.Err()}
	default:
	}

	collector := f.newCollector()

	var html string
	var fetchErr error

	collector.OnResponse(func(r *colly.Response) {
		html = string(r.Body)
	})

	collector.OnError(func(r *colly.Response, err error) {
		fetchErr = err
	})

	if err := collector.Visit(url); err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	collector.Wait()

	if fetchErr != nil {
		return "", &FetchError{URL: url, Err: fetchErr}
	}

	if html == "" {
		return "", &FetchError{URL: url, Err: errors.New("empty response body")}
	}

	saveDebugCopy(f.config.DebugDir, html, f.logger)

	return html, nil
}
