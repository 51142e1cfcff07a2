package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"mwdl/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mangaPage = `<!DOCTYPE html>
<html>
<body>
	<div class="chapters-wrapper">
		<a class="chap" title="Chapter 3" href="/read/2045/chapter-3"><span>Capitolo 3</span></a>
		<a class="chap" title="Chapter 2" href="/read/2045/chapter-2"><span>Capitolo 2</span></a>
		<a class="chap" title="Chapter 1" href="/read/2045/chapter-1"><span>Capitolo 1</span></a>
		<a class="chap" title="Volume 1" href="/volume/2045/volume-1"><span>Volume 1</span></a>
	</div>
</body>
</html>`

const readerPage = `<!DOCTYPE html>
<html>
<body>
	<select class="page custom-select">
		<option selected>1/18</option>
		<option>2/18</option>
	</select>
	<img class="img-fluid" src="https://cdn.example.org/chapters/abc/1.png">
</body>
</html>`

func TestExtractMangaInfo(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantID    string
		wantTitle string
		wantErr   bool
	}{
		{
			name:      "canonical url",
			url:       "https://www.mangaworld.ac/manga/2045/one-piece",
			wantID:    "2045",
			wantTitle: "One Piece",
		},
		{
			name:      "trailing slash",
			url:       "https://www.mangaworld.ac/manga/2045/one-piece/",
			wantID:    "2045",
			wantTitle: "One Piece",
		},
		{
			name:      "dotted slug",
			url:       "https://www.mangaworld.ac/manga/77/dr.-stone",
			wantID:    "77",
			wantTitle: "Dr. Stone",
		},
		{
			name:    "missing slug",
			url:     "https://www.mangaworld.ac/manga/2045",
			wantErr: true,
		},
		{
			name:    "not a manga path",
			url:     "https://www.mangaworld.ac/archive/2045/one-piece",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, title, err := ExtractMangaInfo(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantTitle, title)
		})
	}
}

func TestValidateInput(t *testing.T) {
	assert.NoError(t, NewMangaWorld("https://www.mangaworld.ac/manga/2045/one-piece").ValidateInput())
	assert.Error(t, NewMangaWorld("https://www.mangaworld.ac/2045/one-piece").ValidateInput())
}

func TestGetManga(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/manga/2045/one-piece" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, mangaPage)
	}))
	defer srv.Close()

	src := NewMangaWorld(srv.URL + "/manga/2045/one-piece")
	manga, err := src.GetManga(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2045", manga.ID)
	assert.Equal(t, "One Piece", manga.Title)

	// the page lists newest first, the catalog is oldest first, and
	// non-chapter anchors never make it in
	require.Len(t, manga.Chapters, 3)
	for i, chapter := range manga.Chapters {
		assert.Equal(t, i+1, chapter.Number)
		assert.Equal(t, fmt.Sprintf("2045-%d", i+1), chapter.ID)
		assert.Equal(t, fmt.Sprintf("%s/read/2045/chapter-%d", srv.URL, i+1), chapter.URL)
	}
}

func TestGetMangaNoChapters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>nothing here</p></body></html>")
	}))
	defer srv.Close()

	src := NewMangaWorld(srv.URL + "/manga/2045/one-piece")
	_, err := src.GetManga(context.Background())
	assert.ErrorContains(t, err, "failed to get chapters")
}

func TestGetManifest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/read/2045/chapter-1/1" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, readerPage)
	}))
	defer srv.Close()

	src := NewMangaWorld(srv.URL + "/manga/2045/one-piece")
	chapter := domain.Chapter{ID: "2045-1", URL: srv.URL + "/read/2045/chapter-1", Number: 1}

	manifest, err := src.GetManifest(context.Background(), chapter)
	require.NoError(t, err)

	require.Len(t, manifest.Pages, 18)
	for i, page := range manifest.Pages {
		assert.Equal(t, i, page.Index)
		assert.Equal(t, fmt.Sprintf("https://cdn.example.org/chapters/abc/%d", i+1), page.URL)
	}
}

func TestGetManifestMissingSelectors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>reader is down</p></body></html>")
	}))
	defer srv.Close()

	src := NewMangaWorld(srv.URL + "/manga/2045/one-piece")
	chapter := domain.Chapter{ID: "2045-1", URL: srv.URL + "/read/2045/chapter-1", Number: 1}

	_, err := src.GetManifest(context.Background(), chapter)
	require.Error(t, err)

	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, chapter.URL+"/1", fetchErr.URL)
}
