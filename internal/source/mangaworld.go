package source

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"mwdl/internal/domain"
	"mwdl/internal/sanitize"

	"github.com/gocolly/colly"
	"github.com/gocolly/colly/extensions"
	"github.com/pkg/errors"
)

// trailing "1.<ext>" of the first page image, stripped to get the base
// download link for the whole chapter
var firstPagePattern = regexp.MustCompile(`1\.(png|gif|jpg|webp)$`)

type mangaworld struct {
	MangaURL  string
	Collector colly.Collector
}

func NewMangaWorld(mangaURL string) domain.Source {
	collector := colly.NewCollector(
		colly.AllowURLRevisit(),
	)
	extensions.RandomUserAgent(collector)

	collector.SetRequestTimeout(20 * time.Second)

	return &mangaworld{
		MangaURL:  mangaURL,
		Collector: *collector,
	}
}

func (m *mangaworld) String() string {
	return "MangaWorld"
}

func (m *mangaworld) ValidateInput() error {
	if _, _, err := ExtractMangaInfo(m.MangaURL); err != nil {
		return err
	}

	return nil
}

// ExtractMangaInfo pulls the manga id and display name out of a
// "/manga/<id>/<slug>" URL. The name is the slug with every word
// capitalized.
func ExtractMangaInfo(mangaURL string) (string, string, error) {
	parsed, err := url.Parse(mangaURL)
	if err != nil {
		return "", "", err
	}

	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) < 3 || parts[0] != "manga" {
		return "", "", fmt.Errorf("invalid manga url %q: expected /manga/<id>/<name>", mangaURL)
	}

	id := parts[1]

	words := strings.Split(strings.ReplaceAll(parts[2], "-", " "), " ")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}

	return id, sanitize.Filename(strings.Join(words, " ")), nil
}

func (m *mangaworld) GetManga(_ context.Context) (domain.Manga, error) {
	id, title, err := ExtractMangaInfo(m.MangaURL)
	if err != nil {
		return domain.Manga{}, err
	}

	c := m.Collector.Clone()

	var chapterURLs []string

	c.OnHTML("a.chap[title]", func(e *colly.HTMLElement) {
		chapterURL := e.Request.AbsoluteURL(e.Attr("href"))
		if strings.Contains(chapterURL, "/read/") {
			chapterURLs = append(chapterURLs, chapterURL)
		}
	})

	if err := c.Visit(m.MangaURL); err != nil {
		return domain.Manga{}, errors.Wrapf(err, "failed to get manga page for %s", m.MangaURL)
	}

	if len(chapterURLs) == 0 {
		return domain.Manga{}, fmt.Errorf("failed to get chapters for manga: %s", title)
	}

	// the site lists newest first
	manga := domain.Manga{
		URL:      m.MangaURL,
		ID:       id,
		Title:    title,
		Chapters: make([]domain.Chapter, 0, len(chapterURLs)),
	}

	for i := len(chapterURLs) - 1; i >= 0; i-- {
		num := len(chapterURLs) - i
		manga.Chapters = append(manga.Chapters, domain.Chapter{
			ID:     fmt.Sprintf("%s-%d", id, num),
			URL:    chapterURLs[i],
			Number: num,
		})
	}

	return manga, nil
}

// GetManifest resolves the ordered page list of one chapter. The page count
// comes from the pagination dropdown and the download link from the first
// page image, with its "1.<ext>" suffix stripped so that every page shares
// the same extensionless base.
func (m *mangaworld) GetManifest(_ context.Context, chapter domain.Chapter) (domain.Manifest, error) {
	c := m.Collector.Clone()

	var (
		numPages int
		baseLink string
	)

	c.OnHTML("select.page.custom-select option", func(e *colly.HTMLElement) {
		if numPages > 0 {
			return
		}

		parts := strings.Split(e.Text, "/")
		if n, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			numPages = n
		}
	})

	c.OnHTML("img.img-fluid", func(e *colly.HTMLElement) {
		if src := e.Attr("src"); firstPagePattern.MatchString(src) {
			baseLink = firstPagePattern.ReplaceAllString(src, "")
		}
	})

	pageURL := chapter.URL + "/1"
	if err := c.Visit(pageURL); err != nil {
		return domain.Manifest{}, &domain.FetchError{URL: pageURL, Err: err}
	}

	if numPages == 0 || baseLink == "" {
		return domain.Manifest{}, &domain.FetchError{URL: pageURL, Err: errors.New("no pages found on chapter page")}
	}

	manifest := domain.Manifest{Pages: make([]domain.Page, 0, numPages)}
	for i := 0; i < numPages; i++ {
		manifest.Pages = append(manifest.Pages, domain.Page{
			Index: i,
			URL:   baseLink + strconv.Itoa(i+1),
		})
	}

	return manifest, nil
}
