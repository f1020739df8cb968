package pipeline

import (
	"context"
	"fmt"
	"math/rand/v2"

	"moviewatch/internal/config"
	"moviewatch/internal/fetcher"
	"moviewatch/internal/model"
	"moviewatch/internal/omdb"
	"moviewatch/internal/scraper"

	"go.uber.org/zap"
)

// Pipeline выполняет один прогон сборки каталога: список кандидатов,
// затем для каждого по очереди проверка свежести, три внешних источника
// и сохранение. Кандидаты обрабатываются строго последовательно,
// это и есть ограничение нагрузки на источники.
type Pipeline struct {
	config    *config.Config
	fetcher   fetcher.Fetcher
	extractor *scraper.Extractor
	metadata  MetadataResolver
	repo      model.MovieRepository
	logger    *zap.Logger
}

// New создает новый экземпляр Pipeline
func New(cfg *config.Config, f fetcher.Fetcher, metadata MetadataResolver, repo model.MovieRepository, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		config:    cfg,
		fetcher:   f,
		extractor: scraper.NewExtractor(cfg.MinRatingVotes, logger),
		metadata:  metadata,
		repo:      repo,
		logger:    logger,
	}
}

// Run выполняет полный прогон по случайной странице списка.
// Единственная фатальная ошибка прогона: невозможность получить
// саму страницу списка.
func (p *Pipeline) Run(ctx context.Context) (Counters, error) {
	var counters Counters

	if err := p.repo.EnsureSchema(ctx); err != nil {
		return counters, err
	}

	page := rand.IntN(p.config.ListingPages) + 1
	listingURL := fmt.Sprintf("%s/movie/filter/movies/page/%d.html", p.config.ListingBaseURL, page)

	p.logger.Info("Starting batch run", zap.String("url", listingURL))

	html, err := p.fetcher.Fetch(ctx, listingURL)
	if err != nil {
		return counters, fmt.Errorf("failed to fetch listing page: %w", err)
	}

	candidates, err := p.extractor.ParseListing(html)
	if err != nil {
		return counters, fmt.Errorf("failed to parse listing page: %w", err)
	}

	for i, candidate := range candidates {
		select {
		case <-ctx.Done():
			return counters, ctx.Err()
		default:
		}

		p.logger.Info("Processing candidate",
			zap.Int("index", i),
			zap.String("title", candidate.Title),
			zap.String("url", candidate.DetailURL))

		p.processCandidate(ctx, candidate, false, &counters)
	}

	p.logSummary(counters)

	return counters, nil
}

// RunSingle прогоняет одного кандидата через общий путь слияния и
// сохранения, минуя страницу списка. Для ручной проверки и добивки.
func (p *Pipeline) RunSingle(ctx context.Context, candidate model.Candidate) (Counters, error) {
	var counters Counters

	if err := p.repo.EnsureSchema(ctx); err != nil {
		return counters, err
	}

	p.logger.Info("Processing single candidate in force mode",
		zap.String("title", candidate.Title),
		zap.String("url", candidate.DetailURL))

	p.processCandidate(ctx, candidate, true, &counters)

	p.logSummary(counters)

	return counters, nil
}

// processCandidate обрабатывает одного кандидата от проверки свежести
// до сохранения. Любая ошибка изолируется здесь: один кандидат
// не срывает весь прогон.
func (p *Pipeline) processCandidate(ctx context.Context, candidate model.Candidate, force bool, counters *Counters) {
	days, exists, err := p.repo.DaysSinceUpdate(ctx, candidate.Title)
	if err != nil {
		p.logger.Error("Freshness check failed",
			zap.String("title", candidate.Title),
			zap.Error(err))
		counters.Errors++
		return
	}

	if !force && exists && days < p.config.FreshnessDays {
		p.logger.Info("Skipping recently updated movie",
			zap.String("title", candidate.Title),
			zap.Int("days_since", days))
		counters.Skipped++
		return
	}

	result, err := p.resolveAndPersist(ctx, candidate)
	if err != nil {
		p.logger.Error("Failed to process candidate",
			zap.String("title", candidate.Title),
			zap.Error(err))
		counters.Errors++
		return
	}

	if result == model.ResultInserted {
		counters.New++
	} else {
		counters.Updated++
	}
}

// resolveAndPersist сливает данные трех источников и сохраняет запись.
// Частичная запись не пишется никогда: любой сбой до сохранения
// отбрасывает кандидата целиком.
func (p *Pipeline) resolveAndPersist(ctx context.Context, candidate model.Candidate) (model.UpsertResult, error) {
	// Год со страницы фильма: подсказка для поиска метаданных
	detailHTML, err := p.fetcher.Fetch(ctx, candidate.DetailURL)
	if err != nil {
		return 0, err
	}
	year := p.extractor.ExtractYear(detailHTML)

	meta, err := p.metadata.Resolve(ctx, candidate.Title, year)
	if err != nil {
		return 0, err
	}

	// Оценка со страницы оценок, адресуемой внешним ID
	ratingsURL := fmt.Sprintf("%s/title/%s/", p.config.RatingsBaseURL, meta.IMDBID)
	ratingsHTML, err := p.fetcher.Fetch(ctx, ratingsURL)
	if err != nil {
		return 0, err
	}
	rating, votes := p.extractor.ExtractRating(ratingsHTML)

	p.logger.Info("Fused candidate",
		zap.String("title", candidate.Title),
		zap.Int("year", year),
		zap.String("imdb_id", meta.IMDBID),
		zap.String("rating", rating),
		zap.Int("votes", votes))

	return p.repo.Upsert(ctx, p.fuse(candidate, meta, rating))
}

// fuse собирает итоговую запись из кандидата, метаданных и оценки
func (p *Pipeline) fuse(candidate model.Candidate, meta *omdb.Metadata, rating string) *model.Movie {
	return &model.Movie{
		Title:       candidate.Title,
		IMDBID:      meta.IMDBID,
		ReleaseDate: meta.ReleaseDate,
		Genre:       model.NormalizeGenre(meta.Genre),
		Rating:      rating,
		Plot:        meta.Plot,
		Poster:      meta.Poster,
		SourceURL:   candidate.DetailURL,
		BoxOffice:   meta.BoxOffice,
		Runtime:     meta.Runtime,
	}
}

// logSummary выводит итоги прогона
func (p *Pipeline) logSummary(counters Counters) {
	p.logger.Info("Run summary",
		zap.Int("new", counters.New),
		zap.Int("updated", counters.Updated),
		zap.Int("skipped", counters.Skipped),
		zap.Int("errors", counters.Errors))
}
