package faillog

import (
	"os"

	"github.com/rs/zerolog"
)

// Log is the append-only record of everything a run could not download: one
// line per failed manifest fetch and one per image that exhausted its retry
// budget. It is the only persisted trace of partial failures.
type Log struct {
	f   *os.File
	log zerolog.Logger
}

func New(path string) (*Log, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	return &Log{
		f:   f,
		log: zerolog.New(f).With().Timestamp().Logger(),
	}, nil
}

// Manifest records a chapter whose page manifest could not be fetched.
func (l *Log) Manifest(runID, chapterID string, err error) {
	if l == nil {
		return
	}

	l.log.Error().
		Str("run", runID).
		Str("chapter", chapterID).
		Str("kind", "manifest").
		Err(err).
		Msg("chapter page could not be fetched")
}

// Image records a single page that failed after every retry.
func (l *Log) Image(runID, chapterID string, index int, err error) {
	if l == nil {
		return
	}

	l.log.Error().
		Str("run", runID).
		Str("chapter", chapterID).
		Str("kind", "image").
		Int("page", index+1).
		Err(err).
		Msg("image exceeded its retry budget")
}

func (l *Log) Close() error {
	if l == nil {
		return nil
	}
	return l.f.Close()
}
