package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPadInt(t *testing.T) {
	assert.Equal(t, "001", PadInt(1, 3))
	assert.Equal(t, "042", PadInt(42, 3))
	assert.Equal(t, "100", PadInt(100, 3))
	assert.Equal(t, "1234", PadInt(1234, 3))
	assert.Equal(t, "7", PadInt(7, 0))
}
