package download

import (
	"context"
	"sync"

	"mwdl/internal/domain"
	"mwdl/internal/faillog"
	"mwdl/internal/logger"
	"mwdl/internal/parse"
	"mwdl/internal/progress"
	"mwdl/internal/source"

	"github.com/google/uuid"
)

// Service drives manga downloads. One instance covers a whole run: its
// limiter and progress state are the only resources shared between the
// chapters and manga it processes.
type Service struct {
	cfg      *domain.Config
	log      logger.Logger
	limiter  *Limiter
	progress *progress.State
	flog     *faillog.Log
	runID    string

	newSource func(mangaURL string) domain.Source
}

func NewService(cfg *domain.Config, log logger.Logger, state *progress.State, flog *faillog.Log) *Service {
	return &Service{
		cfg:       cfg,
		log:       log,
		limiter:   NewLimiter(cfg.ConcurrencyLimit),
		progress:  state,
		flog:      flog,
		runID:     uuid.New().String(),
		newSource: source.NewMangaWorld,
	}
}

func (s *Service) RunID() string {
	return s.runID
}

// MangaResult aggregates the chapter outcomes of one manga.
type MangaResult struct {
	Title    string
	Chapters int
	Complete int
	Partial  int
	Failed   int
	Skipped  int
}

// Manga resolves one manga URL, applies the chapter range and downloads the
// selected chapters concurrently. Only configuration and resolve errors are
// returned; chapter failures land in the result.
func (s *Service) Manga(ctx context.Context, mangaURL string, rng parse.ChapterRange) (MangaResult, error) {
	src := s.newSource(mangaURL)

	if err := src.ValidateInput(); err != nil {
		return MangaResult{}, err
	}

	manga, err := src.GetManga(ctx)
	if err != nil {
		return MangaResult{}, err
	}

	lo, hi, err := parse.ClampRange(rng, len(manga.Chapters))
	if err != nil {
		return MangaResult{}, err
	}

	chapters := manga.Chapters[lo:hi]
	s.progress.AddChapters(len(chapters))

	mLog := s.log.With().Str("manga", manga.Title).Logger()
	mLog.Info().Msgf("downloading %d chapters", len(chapters))

	outcomes := make([]domain.ChapterOutcome, len(chapters))

	var wg sync.WaitGroup
	for i, chapter := range chapters {
		wg.Add(1)

		go func(i int, chapter domain.Chapter) {
			defer wg.Done()
			outcomes[i] = s.Chapter(ctx, src, manga, chapter)
		}(i, chapter)
	}
	wg.Wait()

	result := MangaResult{Title: manga.Title, Chapters: len(chapters)}

	for _, outcome := range outcomes {
		switch {
		case outcome.Skipped:
			result.Skipped++
		case outcome.Complete():
			result.Complete++
		case outcome.Partial():
			result.Partial++
		default:
			result.Failed++
		}
	}

	mLog.Info().Msgf("finished: %d complete, %d partial, %d failed, %d skipped", result.Complete, result.Partial, result.Failed, result.Skipped)

	return result, nil
}

// Batch processes a list of manga URLs sequentially. A failed manga never
// aborts the batch; only configuration errors do, and those surface before
// any network activity.
func (s *Service) Batch(ctx context.Context, mangaURLs []string, rng parse.ChapterRange) (domain.Summary, error) {
	summary := domain.Summary{RunID: s.runID}
	defer s.progress.Finish()

	if err := parse.ValidateBounds(rng); err != nil {
		return summary, err
	}

	if len(mangaURLs) == 0 {
		return summary, parse.ErrEmptyBatch
	}

	for _, mangaURL := range mangaURLs {
		result, err := s.Manga(ctx, mangaURL, rng)
		if err != nil {
			s.log.Error().Err(err).Msgf("failed to process manga %q", mangaURL)
			summary.Manga++
			summary.Failed++
			continue
		}

		summary.Manga++
		summary.Chapters += result.Chapters
		summary.Complete += result.Complete
		summary.Partial += result.Partial
		summary.Failed += result.Failed
		summary.Skipped += result.Skipped
	}

	return summary, nil
}
