package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// ErrNotFound означает, что источник метаданных не нашел фильм
// даже после повторного запроса без года
var ErrNotFound = errors.New("movie not found in metadata source")

// Client представляет клиент API метаданных
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient создает новый клиент API метаданных
func NewClient(config Config, logger *zap.Logger) *Client {
	transport := &http.Transport{
		MaxIdleConns:          config.HTTPClientConfig.MaxIdleConns,
		MaxIdleConnsPerHost:   config.HTTPClientConfig.MaxIdleConnsPerHost,
		IdleConnTimeout:       config.HTTPClientConfig.IdleConnTimeout,
		TLSHandshakeTimeout:   config.HTTPClientConfig.TLSHandshakeTimeout,
		ResponseHeaderTimeout: config.HTTPClientConfig.ResponseHeaderTimeout,
		DisableKeepAlives:     config.HTTPClientConfig.DisableKeepAlives,
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		logger: logger,
	}
}

// Resolve запрашивает метаданные по названию и году.
// Год со страницы списка часто неточен, поэтому при неудаче
// выполняется один повторный запрос без года.
func (c *Client) Resolve(ctx context.Context, title string, year int) (*Metadata, error) {
	data, err := c.query(ctx, title, year)
	if err != nil {
		return nil, err
	}

	if data == nil {
		c.logger.Debug("No match with year, retrying without year",
			zap.String("title", title),
			zap.Int("year", year))

		data, err = c.query(ctx, title, 0)
		if err != nil {
			return nil, err
		}
		if data == nil {
			c.logger.Info("No metadata found",
				zap.String("title", title),
				zap.Int("year", year))
			return nil, fmt.Errorf("%q (%d): %w", title, year, ErrNotFound)
		}
	}

	return c.extract(title, data), nil
}

// query выполняет один запрос к API. Возвращает nil без ошибки,
// если конверт ответа сообщает об отсутствии совпадения.
func (c *Client) query(ctx context.Context, title string, year int) (*response, error) {
	params := url.Values{}
	params.Set("t", title)
	if year > 0 {
		params.Set("y", strconv.Itoa(year))
	}
	params.Set("apikey", c.config.APIKey)

	requestURL := c.config.BaseURL + "/?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query metadata API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metadata API returned status %d", resp.StatusCode)
	}

	var data response
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode metadata response: %w", err)
	}

	if data.Response != "True" {
		return nil, nil
	}

	return &data, nil
}

// extract разбирает поля ответа, подставляя значения по умолчанию
// для нечитаемых сборов и хронометража
func (c *Client) extract(title string, data *response) *Metadata {
	releaseDate, err := time.Parse("02 Jan 2006", data.Released)
	if err != nil {
		c.logger.Debug("Unparseable release date",
			zap.String("title", title),
			zap.String("released", data.Released))
		releaseDate = time.Time{}
	}

	if data.IMDBID == "" {
		// Без внешнего ID запись позже уткнется в уникальный индекс.
		// Сигнал о ненадежных данных источника, а не повод падать здесь.
		c.logger.Warn("Metadata source returned no IMDB ID", zap.String("title", title))
	}

	meta := &Metadata{
		ReleaseDate: releaseDate,
		Genre:       data.Genre,
		IMDBID:      data.IMDBID,
		Plot:        data.Plot,
		Poster:      data.Poster,
		BoxOffice:   parseBoxOffice(data.BoxOffice),
		Runtime:     parseRuntime(data.Runtime),
	}

	c.logger.Info("Resolved metadata",
		zap.String("title", title),
		zap.String("imdb_id", meta.IMDBID),
		zap.String("genre", meta.Genre),
		zap.Int64("box_office", meta.BoxOffice),
		zap.Int("runtime", meta.Runtime))

	return meta
}
