// Package omdb содержит клиент внешнего API метаданных фильмов.
package omdb

import (
	"time"

	"moviewatch/internal/config"
)

// Config представляет конфигурацию клиента
type Config struct {
	BaseURL          string
	APIKey           string
	Timeout          time.Duration
	HTTPClientConfig config.HTTPClientConfig
}

// Metadata представляет канонические поля фильма из внешнего источника
type Metadata struct {
	ReleaseDate time.Time
	Genre       string
	IMDBID      string
	Plot        string
	Poster      string
	BoxOffice   int64
	Runtime     int
}

// response представляет конверт ответа API
type response struct {
	Response  string `json:"Response"`
	Error     string `json:"Error"`
	Released  string `json:"Released"`
	Genre     string `json:"Genre"`
	IMDBID    string `json:"imdbID"`
	Plot      string `json:"Plot"`
	Poster    string `json:"Poster"`
	BoxOffice string `json:"BoxOffice"`
	Runtime   string `json:"Runtime"`
}
