package decoder

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/structify/outliner/internal/outline"
)

// HTMLDecoder maps heading tags to synthetic font sizes. HTML has no pages,
// so every fragment lands on page 1.
type HTMLDecoder struct{}

func (d *HTMLDecoder) Decode(r io.Reader, filename string) ([]outline.Fragment, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var frags []outline.Fragment
	order := 0
	emit := func(text string, size float64) {
		if strings.TrimSpace(text) == "" {
			return
		}
		frags = append(frags, outline.Fragment{Text: text, FontSize: size, Page: 1, Order: order})
		order++
	}

	if title := findTitle(doc); title != "" {
		emit(title, sizeTitle)
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "h1":
				emit(textContent(n), sizeH1)
				return
			case "h2":
				emit(textContent(n), sizeH2)
				return
			case "h3":
				emit(textContent(n), sizeH3)
				return
			case "h4", "h5", "h6":
				// Outline depth is capped at H3; deeper headings rank with
				// body text.
				emit(textContent(n), sizeBody)
				return
			case "p", "li", "td", "blockquote":
				emit(textContent(n), sizeBody)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	return frags, nil
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
