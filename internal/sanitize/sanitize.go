package sanitize

import (
	"regexp"
	"strings"
)

var illegalChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// Filename removes characters that are not safe in manga and chapter
// directory names.
func Filename(name string) string {
	name = strings.Trim(name, " .")
	return illegalChars.ReplaceAllString(name, "")
}
