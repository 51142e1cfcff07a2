package files

import (
	"archive/zip"
	"bufio"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/webp"
)

func IsValidLocation(location string) error {
	if _, err := os.Stat(location); err != nil {
		return err
	}

	return nil
}

// CreatePDF bundles the given images into a single PDF, one page per image,
// in exactly the order given.
func CreatePDF(imagePaths []string, pdfPath string) error {
	if err := os.MkdirAll(filepath.Dir(pdfPath), os.ModePerm); err != nil {
		return err
	}

	// fpdf cannot embed webp, those pages pass through a png re-encode
	temp, err := os.MkdirTemp("", "mwdl-pdf-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(temp)

	pdf := fpdf.New(fpdf.OrientationPortrait, fpdf.UnitMillimeter, "", "")

	for _, imgPath := range imagePaths {
		pagePath, err := normalizeForPDF(imgPath, temp)
		if err != nil {
			return err
		}

		pdfInfo := pdf.RegisterImageOptions(pagePath, fpdf.ImageOptions{})
		if pdf.Err() {
			return pdf.Error()
		}

		imgWidth, imgHeight := pdfInfo.Extent()

		pdf.AddPageFormat(fpdf.OrientationPortrait, fpdf.SizeType{Wd: imgWidth, Ht: imgHeight})

		pdf.ImageOptions(pagePath, 0, 0, imgWidth, imgHeight, false, fpdf.ImageOptions{}, 0, "")
	}

	return pdf.OutputFileAndClose(pdfPath)
}

func normalizeForPDF(imgPath, tempDir string) (string, error) {
	if strings.ToLower(filepath.Ext(imgPath)) != ".webp" {
		return imgPath, nil
	}

	imgFile, err := os.Open(imgPath)
	if err != nil {
		return "", err
	}
	defer imgFile.Close()

	img, err := webp.Decode(bufio.NewReader(imgFile))
	if err != nil {
		return "", err
	}

	pngPath := filepath.Join(tempDir, strings.TrimSuffix(filepath.Base(imgPath), filepath.Ext(imgPath))+".png")

	out, err := os.Create(pngPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		return "", err
	}

	return pngPath, nil
}

// CreateCbz creates a zip archive named cbzPath holding the given images in
// exactly the order given.
func CreateCbz(imagePaths []string, cbzPath string) error {
	if err := os.MkdirAll(filepath.Dir(cbzPath), os.ModePerm); err != nil {
		return err
	}

	cbzFile, err := os.Create(cbzPath)
	if err != nil {
		return err
	}
	defer cbzFile.Close()

	writeBuf := bufio.NewWriter(cbzFile)
	defer writeBuf.Flush()

	zipWriter := zip.NewWriter(writeBuf)
	defer zipWriter.Close()

	for _, imgPath := range imagePaths {
		if err := addFileToZip(zipWriter, imgPath, filepath.Base(imgPath)); err != nil {
			return err
		}
	}

	return nil
}

// addFileToZip adds a single file to the zip archive
func addFileToZip(zipWriter *zip.Writer, filePath, fileName string) error {
	fileToZip, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer fileToZip.Close()

	writer, err := zipWriter.Create(fileName)
	if err != nil {
		return err
	}

	readerBuf := bufio.NewReader(fileToZip)

	_, err = io.Copy(writer, readerBuf)
	return err
}

// ReadURLFile returns the raw contents of a batch URL file.
func ReadURLFile(path string) (string, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return string(f), nil
}

// ClearURLFile truncates a batch URL file once its URLs have been processed.
func ClearURLFile(path string) error {
	return os.WriteFile(path, nil, 0o644)
}
