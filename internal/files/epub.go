package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-shiori/go-epub"
)

// CreateEpub bundles the given images into a one-chapter EPUB, pages in
// exactly the order given.
func CreateEpub(mangaTitle, chapterName string, imagePaths []string, epubPath string) error {
	if err := os.MkdirAll(filepath.Dir(epubPath), os.ModePerm); err != nil {
		return err
	}

	e, err := epub.NewEpub(fmt.Sprintf("%s - %s", mangaTitle, chapterName))
	if err != nil {
		return err
	}

	e.SetAuthor("MangaWorld")
	e.SetLang("en")

	var htmlContent strings.Builder
	htmlContent.WriteString(fmt.Sprintf("<h1>%s</h1>\n", chapterName))

	for i, imgPath := range imagePaths {
		internalPath, err := e.AddImage(imgPath, "")
		if err != nil {
			return fmt.Errorf("failed to add image %s: %w", filepath.Base(imgPath), err)
		}

		htmlContent.WriteString(fmt.Sprintf(
			`<div class="page"><img src="%s" alt="Page %d" style="width:100%%;height:auto;"/></div>%s`,
			internalPath, i+1, "\n",
		))
	}

	if _, err := e.AddSection(htmlContent.String(), chapterName, "", ""); err != nil {
		return fmt.Errorf("failed to add section: %w", err)
	}

	return e.Write(epubPath)
}
