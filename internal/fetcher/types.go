// Package fetcher содержит получение отрисованных HTML страниц.
package fetcher

import (
	"context"
	"time"

	"moviewatch/internal/config"
)

// Fetcher определяет интерфейс для получения HTML страницы по URL
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Config представляет конфигурацию получения страниц
type Config struct {
	Mode             string
	BrowserURL       string
	RequestDelay     time.Duration
	DebugDir         string
	HTTPClientConfig config.HTTPClientConfig
}
