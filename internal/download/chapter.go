package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"mwdl/internal/domain"
	"mwdl/internal/files"
	"mwdl/internal/sanitize"
	"mwdl/internal/templater"
)

// Chapter downloads every page of one chapter and aggregates the outcome.
// This is the synchronization point: all page downloads finish, successfully
// or not, before the outcome exists and before any document is assembled.
// The outer progress counter advances exactly once on every path out of
// here.
func (s *Service) Chapter(ctx context.Context, src domain.Source, manga domain.Manga, chapter domain.Chapter) domain.ChapterOutcome {
	outcome := domain.ChapterOutcome{Chapter: chapter}

	t := templater.New(manga, chapter)
	chapterName := sanitize.Filename(t.ExecTemplate(s.cfg.NamingTemplate))
	chapterDir := filepath.Join(s.cfg.DownloadLocation, manga.Title, chapterName)

	if s.alreadyDownloaded(chapterDir) {
		s.log.Debug().Msgf("chapter has already been downloaded, skipping %q", chapterName)
		outcome.Skipped = true
		s.progress.ChapterProcessed()
		return outcome
	}

	manifest, err := src.GetManifest(ctx, chapter)
	if err != nil {
		outcome.Err = err
		s.flog.Manifest(s.runID, chapter.ID, err)
		s.progress.ChapterProcessed()
		return outcome
	}

	if err := os.MkdirAll(chapterDir, os.ModePerm); err != nil {
		outcome.Err = err
		s.flog.Manifest(s.runID, chapter.ID, err)
		s.progress.ChapterProcessed()
		return outcome
	}

	outcome.Total = len(manifest.Pages)
	tracker := s.progress.StartChapter(chapter.ID, chapterName, len(manifest.Pages))

	results := make([]domain.DownloadResult, len(manifest.Pages))

	var wg sync.WaitGroup
	for i, page := range manifest.Pages {
		wg.Add(1)

		go func(i int, page domain.Page) {
			defer wg.Done()

			results[i] = s.downloadImage(ctx, imageJob{
				page:    page,
				destDir: chapterDir,
				tracker: tracker,
			})
		}(i, page)
	}
	wg.Wait()

	// results carry manifest order, so the surviving paths do too
	for _, res := range results {
		if res.Err != nil {
			outcome.FailedIndices = append(outcome.FailedIndices, res.Index)
			s.flog.Image(s.runID, chapter.ID, res.Index, res.Err)
			continue
		}

		outcome.Succeeded++
		outcome.ImagePaths = append(outcome.ImagePaths, res.Path)
	}

	s.progress.FinishChapter(chapter.ID)

	if outcome.Partial() {
		s.log.Warn().Msgf("chapter %q is missing %d of %d pages, keeping images and skipping document", chapterName, len(outcome.FailedIndices), outcome.Total)
		return outcome
	}

	if s.cfg.DocumentFormat != "" {
		if err := s.assemble(manga, chapterName, chapterDir, outcome.ImagePaths); err != nil {
			s.log.Error().Err(err).Msgf("failed to assemble %s for chapter %q", s.cfg.DocumentFormat, chapterName)
		}
	}

	return outcome
}

// alreadyDownloaded reports whether the chapter's artifact is on disk: the
// assembled document when one is requested, the image directory otherwise.
func (s *Service) alreadyDownloaded(chapterDir string) bool {
	target := chapterDir
	if s.cfg.DocumentFormat != "" {
		target = chapterDir + "." + s.cfg.DocumentFormat
	}

	_, err := os.Stat(target)
	return err == nil
}

func (s *Service) assemble(manga domain.Manga, chapterName, chapterDir string, imagePaths []string) error {
	outputPath := chapterDir + "." + s.cfg.DocumentFormat

	switch s.cfg.DocumentFormat {
	case "pdf":
		return files.CreatePDF(imagePaths, outputPath)
	case "cbz":
		return files.CreateCbz(imagePaths, outputPath)
	case "epub":
		return files.CreateEpub(manga.Title, chapterName, imagePaths, outputPath)
	default:
		return fmt.Errorf("unknown document format: %s", s.cfg.DocumentFormat)
	}
}
