package decoder

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/structify/outliner/internal/outline"
)

// MarkdownDecoder maps goldmark heading levels to synthetic font sizes. The
// first level-1 heading supplies the document title; later headings keep
// their structural rank.
type MarkdownDecoder struct{}

func (d *MarkdownDecoder) Decode(r io.Reader, filename string) ([]outline.Fragment, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var frags []outline.Fragment
	order := 0
	emit := func(text string, size float64) {
		if strings.TrimSpace(text) == "" {
			return
		}
		frags = append(frags, outline.Fragment{Text: text, FontSize: size, Page: 1, Order: order})
		order++
	}

	sawTitle := false
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			var size float64 = sizeBody
			switch node.Level {
			case 1:
				if !sawTitle {
					sawTitle = true
					size = sizeTitle
				} else {
					size = sizeH1
				}
			case 2:
				size = sizeH2
			case 3:
				size = sizeH3
			}
			emit(string(node.Text(src)), size)
		default:
			emit(extractText(n, src), sizeBody)
		}
	}
	return frags, nil
}

// extractText gets the text content of a goldmark AST node. Block nodes with
// source lines use them directly; inline children are only walked otherwise,
// since both carry the same bytes.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
