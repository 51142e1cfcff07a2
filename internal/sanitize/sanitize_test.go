package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilename(t *testing.T) {
	assert.Equal(t, "Chapter 001", Filename("Chapter 001"))
	assert.Equal(t, "Whats Up", Filename(`Whats\ Up?`))
	assert.Equal(t, "ab", Filename(`a<>:"/\|?*b`))
	assert.Equal(t, "trimmed", Filename("  trimmed . "))
}
