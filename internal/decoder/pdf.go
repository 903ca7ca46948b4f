package decoder

import (
	"fmt"
	"io"
	"os"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/structify/outliner/internal/outline"
)

// PDFDecoder reads styled text runs per page, preserving the measured font
// size of each run. This is the only decoder that produces real glyph sizes.
type PDFDecoder struct{}

func (d *PDFDecoder) Decode(r io.Reader, filename string) ([]outline.Fragment, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "outliner-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	return decodePDF(tmpPath)
}

func decodePDF(path string) ([]outline.Fragment, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var frags []outline.Fragment
	numPages := reader.NumPage()
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			// Pages that fail text extraction are skipped, not fatal.
			continue
		}
		order := 0
		for _, row := range rows {
			for _, word := range row.Content {
				frags = append(frags, outline.Fragment{
					Text:     word.S,
					FontSize: word.FontSize,
					Page:     pageNum,
					Order:    order,
					Bold:     strings.Contains(strings.ToLower(word.Font), "bold"),
				})
				order++
			}
		}
	}
	return frags, nil
}
