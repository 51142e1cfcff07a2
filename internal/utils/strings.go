package utils

import (
	"strconv"
	"strings"
)

// PadInt formats a number with zeros up to the requested width so that
// lexicographic and numeric order coincide.
func PadInt(num int, width int) string {
	str := strconv.Itoa(num)

	if padding := width - len(str); padding > 0 {
		return strings.Repeat("0", padding) + str
	}
	return str
}
