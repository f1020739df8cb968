package scraper

import (
	"testing"

	"go.uber.org/zap"
)

const listingFixture = `
<html><body>
<div class="movies-list">
  <div class="ml-item">
    <a class="ml-mask" href="https://example.org/movie/dune-part-two-123.html"></a>
    <img class="mli-thumb" data-original="https://example.org/thumb/dune.jpg">
    <div class="mli-info"><h2>Dune: Part Two</h2></div>
  </div>
  <div class="ml-item">
    <a class="ml-mask" href="https://example.org/movie/broken-456.html"></a>
    <img class="mli-thumb" data-original="https://example.org/thumb/broken.jpg">
    <div class="mli-info"><h2></h2></div>
  </div>
  <div class="ml-item">
    <a class="ml-mask" href="https://example.org/movie/no-thumb-789.html"></a>
    <img class="mli-thumb" src="https://example.org/placeholder.jpg">
    <div class="mli-info"><h2>No Thumbnail</h2></div>
  </div>
  <div class="ml-item">
    <a class="ml-mask" href="https://example.org/movie/lee-1630857643.html"></a>
    <img class="mli-thumb" data-original="https://example.org/thumb/lee.jpg">
    <div class="mli-info"><h2>Lee</h2></div>
  </div>
</div>
</body></html>`

func TestExtractor_ParseListing(t *testing.T) {
	e := NewExtractor(1000, zap.NewNop())

	candidates, err := e.ParseListing(listingFixture)
	if err != nil {
		t.Fatalf("ParseListing() error = %v", err)
	}

	// Два из четырех блоков неполные и должны быть отброшены
	if len(candidates) != 2 {
		t.Fatalf("Expected 2 candidates, got %d", len(candidates))
	}

	if candidates[0].Title != "Dune: Part Two" {
		t.Errorf("Expected first candidate 'Dune: Part Two', got %q", candidates[0].Title)
	}

	if candidates[0].DetailURL != "https://example.org/movie/dune-part-two-123.html" {
		t.Errorf("Unexpected detail URL %q", candidates[0].DetailURL)
	}

	if candidates[0].ThumbnailURL != "https://example.org/thumb/dune.jpg" {
		t.Errorf("Unexpected thumbnail URL %q", candidates[0].ThumbnailURL)
	}

	// Порядок документа сохраняется
	if candidates[1].Title != "Lee" {
		t.Errorf("Expected second candidate 'Lee', got %q", candidates[1].Title)
	}
}

func TestExtractor_ParseListing_Empty(t *testing.T) {
	e := NewExtractor(1000, zap.NewNop())

	candidates, err := e.ParseListing("<html><body><p>nothing here</p></body></html>")
	if err != nil {
		t.Fatalf("ParseListing() error = %v", err)
	}

	if len(candidates) != 0 {
		t.Errorf("Expected no candidates, got %d", len(candidates))
	}
}
