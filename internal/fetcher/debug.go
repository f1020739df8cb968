package fetcher

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// saveDebugCopy пишет последнюю полученную страницу в каталог данных.
// Только для ручной отладки селекторов, никем больше не читается.
func saveDebugCopy(dir, html string, logger *zap.Logger) {
	if dir == "" {
		return
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Warn("Failed to create debug dir", zap.String("dir", dir), zap.Error(err))
		return
	}

	path := filepath.Join(dir, "last_page.html")
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		logger.Warn("Failed to save debug page copy", zap.String("path", path), zap.Error(err))
	}
}
