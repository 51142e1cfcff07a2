package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrConfiguration marks errors that abort an invocation before any network
// activity, e.g. an invalid chapter range or an empty batch input.
var ErrConfiguration = errors.New("configuration error")

// FetchError reports an unreachable or unparseable chapter page. It fails a
// whole chapter without issuing any image downloads.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching chapter page %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ImageError reports a single page download that exhausted its retry budget.
// It marks the page failed and leaves the rest of the chapter alone.
type ImageError struct {
	Index int
	URL   string
	Err   error
}

func (e *ImageError) Error() string {
	return fmt.Sprintf("downloading page %d from %s: %v", e.Index+1, e.URL, e.Err)
}

func (e *ImageError) Unwrap() error {
	return e.Err
}
