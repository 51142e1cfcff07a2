package templater

import (
	"testing"

	"mwdl/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestExecTemplate(t *testing.T) {
	manga := domain.Manga{Title: "One Piece"}
	chapter := domain.Chapter{Number: 7, Title: "The Crew"}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{name: "padded number", template: "Chapter {num:3}", want: "Chapter 007"},
		{name: "bare number", template: "Chapter {num}", want: "Chapter 7"},
		{name: "manga and title", template: "{manga:<.>} Ch. {num:3}{title: - <.>}", want: "One Piece Ch. 007 - The Crew"},
		{name: "no placeholders", template: "static", want: "static"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(manga, chapter).ExecTemplate(tt.template)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExecTemplateEmptyChapterTitle(t *testing.T) {
	manga := domain.Manga{Title: "One Piece"}
	chapter := domain.Chapter{Number: 12}

	got := New(manga, chapter).ExecTemplate("Chapter {num:3}{title: - <.>}")
	assert.Equal(t, "Chapter 012", got)
}
