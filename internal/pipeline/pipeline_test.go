package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"moviewatch/internal/config"
	"moviewatch/internal/fetcher"
	"moviewatch/internal/model"
	"moviewatch/internal/omdb"

	"go.uber.org/zap"
)

// fakeFetcher отдает заранее заданные страницы по подстроке URL
type fakeFetcher struct {
	pages map[string]string
	errs  map[string]error
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.calls = append(f.calls, url)
	for key, err := range f.errs {
		if strings.Contains(url, key) {
			return "", err
		}
	}
	for key, html := range f.pages {
		if strings.Contains(url, key) {
			return html, nil
		}
	}
	return "", &fetcher.FetchError{URL: url, Err: errors.New("no fixture for url")}
}

// fakeResolver отдает фиксированные метаданные или ошибку
type fakeResolver struct {
	meta  *omdb.Metadata
	err   error
	calls int
}

func (r *fakeResolver) Resolve(_ context.Context, title string, year int) (*omdb.Metadata, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.meta, nil
}

// fakeRepo хранит записи в памяти
type fakeRepo struct {
	movies    map[string]*model.Movie // key: title+imdbID
	daysSince map[string]int
	upserts   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		movies:    make(map[string]*model.Movie),
		daysSince: make(map[string]int),
	}
}

func (r *fakeRepo) EnsureSchema(context.Context) error { return nil }

func (r *fakeRepo) GetByTitleAndID(_ context.Context, title, imdbID string) (*model.Movie, error) {
	return r.movies[title+"|"+imdbID], nil
}

func (r *fakeRepo) DaysSinceUpdate(_ context.Context, title string) (int, bool, error) {
	days, ok := r.daysSince[title]
	return days, ok, nil
}

func (r *fakeRepo) Upsert(_ context.Context, movie *model.Movie) (model.UpsertResult, error) {
	r.upserts++
	key := movie.Title + "|" + movie.IMDBID
	if _, ok := r.movies[key]; ok {
		r.movies[key] = movie
		return model.ResultUpdated, nil
	}
	r.movies[key] = movie
	return model.ResultInserted, nil
}

func (r *fakeRepo) List(context.Context, model.ListFilter) ([]model.Movie, error) { return nil, nil }

func (r *fakeRepo) SetWatchStatus(context.Context, string, model.WatchStatus) error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		ListingBaseURL: "https://example.org",
		RatingsBaseURL: "https://ratings.example.com",
		ListingPages:   1,
		FreshnessDays:  3,
		MinRatingVotes: 1000,
	}
}

const testListingHTML = `
<div class="ml-item">
  <a class="ml-mask" href="https://example.org/movie/dune-part-two-123.html"></a>
  <img class="mli-thumb" data-original="https://example.org/thumb/dune.jpg">
  <div class="mli-info"><h2>Dune: Part Two</h2></div>
</div>`

const testDetailHTML = `<p> <strong>Release:</strong><a href="https://example.org/release/2024.html">2024</a></p>`

const testRatingsHTML = `"aggregateRating":{"@type":"AggregateRating","ratingCount":50000,"bestRating":10,"worstRating":1,"ratingValue":8.4}`

func testMeta() *omdb.Metadata {
	return &omdb.Metadata{
		ReleaseDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Genre:       "Action, Adventure, Drama",
		IMDBID:      "tt0001",
		Plot:        "Paul Atreides unites with Chani and the Fremen.",
		Poster:      "https://example.com/dune2.jpg",
		BoxOffice:   714444358,
		Runtime:     166,
	}
}

func TestPipeline_Run_NewMovie(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"/movie/filter/movies/page/": testListingHTML,
		"dune-part-two":              testDetailHTML,
		"/title/tt0001/":             testRatingsHTML,
	}}
	repo := newFakeRepo()
	resolver := &fakeResolver{meta: testMeta()}

	p := New(testConfig(), f, resolver, repo, zap.NewNop())

	counters, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if counters.New != 1 {
		t.Errorf("Expected new counter 1, got %d", counters.New)
	}
	if counters.Errors != 0 || counters.Skipped != 0 || counters.Updated != 0 {
		t.Errorf("Unexpected counters %+v", counters)
	}

	stored := repo.movies["Dune: Part Two|tt0001"]
	if stored == nil {
		t.Fatal("Expected movie to be persisted")
	}
	if stored.Rating != "8.4" {
		t.Errorf("Expected rating '8.4', got %q", stored.Rating)
	}
	if stored.Runtime != 166 {
		t.Errorf("Expected runtime 166, got %d", stored.Runtime)
	}
	if stored.Genre != "action, adventure, drama" {
		t.Errorf("Expected normalized genre, got %q", stored.Genre)
	}
	if stored.SourceURL != "https://example.org/movie/dune-part-two-123.html" {
		t.Errorf("Unexpected source URL %q", stored.SourceURL)
	}
}

func TestPipeline_Run_SkipsFreshRecord(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"/movie/filter/movies/page/": testListingHTML,
	}}
	repo := newFakeRepo()
	repo.daysSince["Dune: Part Two"] = 2
	resolver := &fakeResolver{meta: testMeta()}

	p := New(testConfig(), f, resolver, repo, zap.NewNop())

	counters, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if counters.Skipped != 1 {
		t.Errorf("Expected skipped counter 1, got %d", counters.Skipped)
	}

	// Кроме страницы списка внешних обращений быть не должно
	if len(f.calls) != 1 {
		t.Errorf("Expected 1 fetch (listing only), got %d: %v", len(f.calls), f.calls)
	}
	if resolver.calls != 0 {
		t.Errorf("Expected no metadata calls, got %d", resolver.calls)
	}
	if repo.upserts != 0 {
		t.Errorf("Expected no store writes, got %d", repo.upserts)
	}
}

func TestPipeline_Run_StaleRecordProceeds(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"/movie/filter/movies/page/": testListingHTML,
		"dune-part-two":              testDetailHTML,
		"/title/tt0001/":             testRatingsHTML,
	}}
	repo := newFakeRepo()
	repo.daysSince["Dune: Part Two"] = 4

	p := New(testConfig(), f, &fakeResolver{meta: testMeta()}, repo, zap.NewNop())

	counters, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if counters.Skipped != 0 {
		t.Errorf("Expected no skip for stale record, got %d", counters.Skipped)
	}
	if counters.New != 1 {
		t.Errorf("Expected new counter 1, got %d", counters.New)
	}
}

func TestPipeline_Run_MetadataNotFound(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"/movie/filter/movies/page/": testListingHTML,
		"dune-part-two":              testDetailHTML,
	}}
	repo := newFakeRepo()
	resolver := &fakeResolver{err: omdb.ErrNotFound}

	p := New(testConfig(), f, resolver, repo, zap.NewNop())

	counters, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if counters.Errors != 1 {
		t.Errorf("Expected error counter 1, got %d", counters.Errors)
	}
	// Частичная запись без внешнего ID не пишется
	if repo.upserts != 0 {
		t.Errorf("Expected no store writes, got %d", repo.upserts)
	}
}

func TestPipeline_Run_DetailFetchErrorIsIsolated(t *testing.T) {
	f := &fakeFetcher{
		pages: map[string]string{
			"/movie/filter/movies/page/": testListingHTML,
		},
		errs: map[string]error{
			"dune-part-two": &fetcher.FetchError{URL: "x", Err: errors.New("navigation timeout")},
		},
	}
	repo := newFakeRepo()

	p := New(testConfig(), f, &fakeResolver{meta: testMeta()}, repo, zap.NewNop())

	counters, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v (batch must survive one candidate failure)", err)
	}

	if counters.Errors != 1 {
		t.Errorf("Expected error counter 1, got %d", counters.Errors)
	}
}

func TestPipeline_Run_ListingFetchErrorIsFatal(t *testing.T) {
	f := &fakeFetcher{errs: map[string]error{
		"/movie/filter/movies/page/": &fetcher.FetchError{URL: "x", Err: errors.New("browser session unavailable")},
	}}

	p := New(testConfig(), f, &fakeResolver{meta: testMeta()}, newFakeRepo(), zap.NewNop())

	if _, err := p.Run(context.Background()); err == nil {
		t.Fatal("Expected run to abort when listing page cannot be fetched")
	}
}

func TestPipeline_RunSingle_ForceBypassesFreshness(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"dune-part-two":  testDetailHTML,
		"/title/tt0001/": testRatingsHTML,
	}}
	repo := newFakeRepo()
	// Запись свежая, но force ее игнорирует
	repo.daysSince["Dune: Part Two"] = 1

	p := New(testConfig(), f, &fakeResolver{meta: testMeta()}, repo, zap.NewNop())

	counters, err := p.RunSingle(context.Background(), model.Candidate{
		Title:     "Dune: Part Two",
		DetailURL: "https://example.org/movie/dune-part-two-123.html",
	})
	if err != nil {
		t.Fatalf("RunSingle() error = %v", err)
	}

	if counters.Skipped != 0 {
		t.Errorf("Expected force mode to bypass freshness gate, got %d skips", counters.Skipped)
	}
	if counters.New != 1 {
		t.Errorf("Expected new counter 1, got %d", counters.New)
	}
}

func TestPipeline_Run_LowVoteRatingZeroed(t *testing.T) {
	lowVotes := `"aggregateRating":{"@type":"AggregateRating","ratingCount":999,"bestRating":10,"worstRating":1,"ratingValue":9.9}`

	f := &fakeFetcher{pages: map[string]string{
		"/movie/filter/movies/page/": testListingHTML,
		"dune-part-two":              testDetailHTML,
		"/title/tt0001/":             lowVotes,
	}}
	repo := newFakeRepo()

	p := New(testConfig(), f, &fakeResolver{meta: testMeta()}, repo, zap.NewNop())

	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	stored := repo.movies["Dune: Part Two|tt0001"]
	if stored == nil {
		t.Fatal("Expected movie to be persisted")
	}
	if stored.Rating != "0" {
		t.Errorf("Expected low-vote rating forced to '0', got %q", stored.Rating)
	}
}
