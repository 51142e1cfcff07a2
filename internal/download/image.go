package download

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"mwdl/internal/domain"
	"mwdl/internal/progress"
	"mwdl/internal/sharedhttp"
	"mwdl/internal/utils"

	"github.com/avast/retry-go"
)

// pageWidth is the zero-padding width of page filenames, so lexicographic
// and numeric order coincide
const pageWidth = 3

// pageExtensions are probed in order against the extensionless page URL;
// the site serves every page under exactly one of them.
var pageExtensions = []string{".jpg", ".png", ".gif", ".webp"}

type imageJob struct {
	page    domain.Page
	destDir string
	tracker *progress.Chapter
}

// downloadImage fetches one page and writes it under its index-encoded
// filename. It always produces a result: a failure after the retry budget is
// exhausted is recorded in the result, never raised. The inner progress
// counter advances exactly once whatever the outcome.
func (s *Service) downloadImage(ctx context.Context, job imageJob) domain.DownloadResult {
	result := domain.DownloadResult{Index: job.page.Index}

	defer func() {
		var written int64
		if result.Err == nil {
			written = result.Bytes
		}
		job.tracker.ImageDone(written)
	}()

	if err := s.limiter.Acquire(ctx); err != nil {
		result.Err = &domain.ImageError{Index: job.page.Index, URL: job.page.URL, Err: err}
		return result
	}
	defer s.limiter.Release()

	retryErr := retry.Do(func() error {
		path, written, err := s.fetchPage(ctx, job)
		if err != nil {
			return err
		}

		result.Path = path
		result.Bytes = written
		return nil
	},
		retry.Attempts(uint(s.cfg.RetryLimit)),
		retry.Delay(time.Second),
		retry.MaxJitter(time.Second),
		retry.LastErrorOnly(true),
	)

	if retryErr != nil {
		result.Err = &domain.ImageError{Index: job.page.Index, URL: job.page.URL, Err: retryErr}
	}

	return result
}

// fetchPage probes the supported extensions for one page and streams the
// first hit to disk.
func (s *Service) fetchPage(ctx context.Context, job imageJob) (string, int64, error) {
	var lastErr error

	for _, ext := range pageExtensions {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, job.page.URL+ext, nil)
		if err != nil {
			return "", 0, retry.Unrecoverable(fmt.Errorf("failed to create request: %w", err))
		}

		req.Header.Set("User-Agent", "mwdl")

		resp, err := sharedhttp.Client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("failed to get image: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusNotFound {
			// wrong extension, probe the next one
			resp.Body.Close()
			lastErr = fmt.Errorf("image not found under %s%s", job.page.URL, ext)
			continue
		}

		if err := sharedhttp.CheckStatusCode(resp.StatusCode); err != nil {
			resp.Body.Close()
			return "", 0, err
		}

		path, written, err := writePage(resp.Body, job.destDir, job.page.Index, ext)
		resp.Body.Close()
		return path, written, err
	}

	return "", 0, lastErr
}

func writePage(body io.Reader, destDir string, index int, ext string) (string, int64, error) {
	path := filepath.Join(destDir, utils.PadInt(index+1, pageWidth)+ext)

	out, err := os.Create(path)
	if err != nil {
		return "", 0, retry.Unrecoverable(err)
	}
	defer out.Close()

	writeBuf := bufio.NewWriter(out)

	written, err := io.Copy(writeBuf, bufio.NewReader(body))
	if err != nil {
		return "", 0, err
	}

	if err := writeBuf.Flush(); err != nil {
		return "", 0, err
	}

	return path, written, nil
}
