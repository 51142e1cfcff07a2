package domain

import "context"

// Source resolves a manga URL into its chapter catalog and per-chapter
// image manifests.
type Source interface {
	String() string
	ValidateInput() error
	GetManga(context.Context) (Manga, error)
	GetManifest(context.Context, Chapter) (Manifest, error)
}

type Manga struct {
	URL      string
	ID       string
	Title    string
	Chapters []Chapter
}

type Chapter struct {
	ID     string
	URL    string
	Number int
	Title  string
}

// Manifest holds the ordered page list of one chapter. Page indices are
// contiguous starting at 0.
type Manifest struct {
	Pages []Page
}

// Page is one manifest entry. The URL carries no file extension; the
// downloader probes the supported extensions against it.
type Page struct {
	Index int
	URL   string
}

// DownloadResult is the single outcome of one page fetch, produced exactly
// once per manifest entry regardless of retries.
type DownloadResult struct {
	Index int
	Path  string
	Bytes int64
	Err   error
}

// ChapterOutcome aggregates the download results of one chapter.
type ChapterOutcome struct {
	Chapter       Chapter
	Total         int
	Succeeded     int
	FailedIndices []int
	// ImagePaths holds the successfully written files ordered by page index.
	ImagePaths []string
	// Err is a chapter-level failure (manifest fetch or setup); when set, no
	// image downloads were attempted.
	Err     error
	Skipped bool
}

// Complete reports whether every page of the chapter was downloaded.
func (o ChapterOutcome) Complete() bool {
	return o.Err == nil && len(o.FailedIndices) == 0
}

// Partial reports whether some but not all pages were downloaded.
func (o ChapterOutcome) Partial() bool {
	return o.Err == nil && len(o.FailedIndices) > 0
}

// Failed reports whether the chapter produced nothing at all.
func (o ChapterOutcome) Failed() bool {
	return o.Err != nil
}

// Summary is the final aggregate of one orchestrator run.
type Summary struct {
	RunID    string
	Manga    int
	Chapters int
	Complete int
	Partial  int
	Failed   int
	Skipped  int
}
