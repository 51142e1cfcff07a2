package files

import (
	"archive/zip"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, dir string, name string) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 6))
	for x := 0; x < 4; x++ {
		for y := 0; y < 6; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 40), A: 255})
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, png.Encode(f, img))
	return path
}

func testPages(t *testing.T, count int) []string {
	t.Helper()

	dir := t.TempDir()
	paths := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		paths = append(paths, writeTestPNG(t, dir, fmt.Sprintf("%03d.png", i)))
	}
	return paths
}

func TestIsValidLocation(t *testing.T) {
	assert.NoError(t, IsValidLocation(t.TempDir()))
	assert.Error(t, IsValidLocation(filepath.Join(t.TempDir(), "missing")))
}

func TestCreatePDF(t *testing.T) {
	pdfPath := filepath.Join(t.TempDir(), "Manga", "Chapter 001.pdf")
	require.NoError(t, CreatePDF(testPages(t, 3), pdfPath))

	info, err := os.Stat(pdfPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestCreateCbz(t *testing.T) {
	cbzPath := filepath.Join(t.TempDir(), "Manga", "Chapter 001.cbz")
	pages := testPages(t, 4)
	require.NoError(t, CreateCbz(pages, cbzPath))

	reader, err := zip.OpenReader(cbzPath)
	require.NoError(t, err)
	defer reader.Close()

	// archive entries keep the input order
	require.Len(t, reader.File, 4)
	for i, f := range reader.File {
		assert.Equal(t, filepath.Base(pages[i]), f.Name)
	}
}

func TestCreateEpub(t *testing.T) {
	epubPath := filepath.Join(t.TempDir(), "Manga", "Chapter 001.epub")
	require.NoError(t, CreateEpub("Manga", "Chapter 001", testPages(t, 2), epubPath))

	info, err := os.Stat(epubPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// an epub is a zip container, it has to open as one
	reader, err := zip.OpenReader(epubPath)
	require.NoError(t, err)
	defer reader.Close()
	assert.NotEmpty(t, reader.File)
}

func TestURLFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "URLs.txt")
	require.NoError(t, os.WriteFile(path, []byte("https://example.org/manga/1/a\nhttps://example.org/manga/2/b\n"), 0o644))

	content, err := ReadURLFile(path)
	require.NoError(t, err)
	assert.Contains(t, content, "/manga/1/a")
	assert.Contains(t, content, "/manga/2/b")

	require.NoError(t, ClearURLFile(path))

	content, err = ReadURLFile(path)
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestReadURLFileMissing(t *testing.T) {
	_, err := ReadURLFile(filepath.Join(t.TempDir(), "URLs.txt"))
	assert.Error(t, err)
}
