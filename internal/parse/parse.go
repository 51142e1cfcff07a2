package parse

import (
	"strings"

	"mwdl/internal/domain"

	"github.com/pkg/errors"
)

// ErrEmptyBatch rejects batch input that contains no URLs at all.
var ErrEmptyBatch = errors.Wrap(domain.ErrConfiguration, "batch input contains no URLs")

// ChapterRange is an inclusive 1-based chapter window. A zero bound is
// open-ended.
type ChapterRange struct {
	Start int
	End   int
}

// ValidateBounds rejects ranges that are wrong on their face, before any
// network activity happens.
func ValidateBounds(rng ChapterRange) error {
	if rng.Start < 0 || rng.End < 0 {
		return errors.Wrap(domain.ErrConfiguration, "chapter bounds must be positive")
	}

	if rng.Start > 0 && rng.End > 0 && rng.Start > rng.End {
		return errors.Wrapf(domain.ErrConfiguration, "start chapter %d is greater than end chapter %d", rng.Start, rng.End)
	}

	return nil
}

// ClampRange resolves a validated range against the available chapter count
// and returns a 0-based [lo, hi) window. Start must fall inside the catalog;
// an end past the last chapter is clamped to it.
func ClampRange(rng ChapterRange, numChapters int) (int, int, error) {
	if err := ValidateBounds(rng); err != nil {
		return 0, 0, err
	}

	if rng.Start > numChapters {
		return 0, 0, errors.Wrapf(domain.ErrConfiguration, "start chapter must be between 1 and %d, got %d", numChapters, rng.Start)
	}

	lo := 0
	if rng.Start > 0 {
		lo = rng.Start - 1
	}

	hi := numChapters
	if rng.End > 0 && rng.End < numChapters {
		hi = rng.End
	}

	return lo, hi, nil
}

// URLList splits newline-delimited batch input into manga URLs, ignoring
// blank lines. An input without a single URL is a configuration error.
func URLList(input string) ([]string, error) {
	var urls []string

	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}

	if len(urls) == 0 {
		return nil, ErrEmptyBatch
	}

	return urls, nil
}
