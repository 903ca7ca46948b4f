// Package decoder turns raw document bytes into the page-ordered fragment
// stream consumed by the outline pipeline. The pipeline never knows which
// decoder produced its fragments.
package decoder

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/structify/outliner/internal/outline"
)

// Decoder converts raw document bytes into outline fragments.
type Decoder interface {
	Decode(r io.Reader, filename string) ([]outline.Fragment, error)
}

// Synthetic font sizes for formats that carry structural markup instead of
// measured glyph sizes. They only need to rank correctly relative to each
// other for the profile builder; the values mirror common print sizes.
const (
	sizeTitle = 32.0
	sizeH1    = 24.0
	sizeH2    = 18.0
	sizeH3    = 14.0
	sizeBody  = 10.0
)

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".docx":     true,
	".html":     true,
	".htm":      true,
	".md":       true,
	".markdown": true,
}

// ForFile returns the appropriate decoder for a filename.
func ForFile(filename string) (Decoder, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFDecoder{}, nil
	case ".docx":
		return &DOCXDecoder{}, nil
	case ".html", ".htm":
		return &HTMLDecoder{}, nil
	case ".md", ".markdown":
		return &MarkdownDecoder{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
