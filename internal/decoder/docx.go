package decoder

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/structify/outliner/internal/outline"
)

// DOCXDecoder maps Word paragraph styles to synthetic font sizes: the Title
// style and Heading1-3 carry structural rank, everything else is body text.
type DOCXDecoder struct{}

func (d *DOCXDecoder) Decode(r io.Reader, filename string) ([]outline.Fragment, error) {
	// go-docx needs a ReadSeeker+size, so write to a temp file.
	tmp, err := os.CreateTemp("", "outliner-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, int64(size))
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var frags []outline.Fragment
	order := 0
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := paragraphText(para)
		if text == "" {
			continue
		}
		frags = append(frags, outline.Fragment{
			Text:     text,
			FontSize: styleSize(para),
			Page:     1,
			Order:    order,
		})
		order++
	}
	return frags, nil
}

func styleSize(para *docx.Paragraph) float64 {
	if para.Properties == nil || para.Properties.Style == nil {
		return sizeBody
	}
	style := para.Properties.Style.Val
	switch {
	case strings.EqualFold(style, "Title"):
		return sizeTitle
	case strings.EqualFold(style, "Heading1") || strings.EqualFold(style, "heading 1"):
		return sizeH1
	case strings.EqualFold(style, "Heading2") || strings.EqualFold(style, "heading 2"):
		return sizeH2
	case strings.EqualFold(style, "Heading3") || strings.EqualFold(style, "heading 3"):
		return sizeH3
	}
	return sizeBody
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
