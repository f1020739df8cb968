package fetcher

import (
	"moviewatch/internal/config"

	"go.uber.org/zap"
)

// New создает Fetcher в зависимости от режима конфигурации
func New(cfg Config, logger *zap.Logger) Fetcher {
	if cfg.Mode == config.FetchModeHTTP {
		logger.Info("Using plain HTTP fetcher")
		return NewHTTPFetcher(cfg, logger)
	}

	logger.Info("Using remote browser fetcher", zap.String("browser_url", cfg.BrowserURL))
	return NewBrowserFetcher(cfg, logger)
}
