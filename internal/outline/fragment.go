package outline

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Fragment is the smallest decoded unit of styled text. Decoders produce
// fragments in reading order; the pipeline treats font size, page and order
// index as ground truth and never re-derives them.
type Fragment struct {
	Text     string
	FontSize float64
	Page     int // 1-based page number
	Order    int // reading order within the page
	Bold     bool

	// endOrder is the order index of the last constituent fragment after
	// hyphen merging. Set by Normalize; the grouper uses it to keep merged
	// fragments adjacent to their successors.
	endOrder int
}

// InvalidFragmentError reports a malformed fragment from the decoder. This is
// a caller-correctable input error: the whole document run aborts rather than
// producing partial output.
type InvalidFragmentError struct {
	Index  int
	Reason string
}

func (e *InvalidFragmentError) Error() string {
	return fmt.Sprintf("invalid fragment at index %d: %s", e.Index, e.Reason)
}

func validateFragments(frags []Fragment) error {
	for i, f := range frags {
		switch {
		case f.FontSize <= 0:
			return &InvalidFragmentError{Index: i, Reason: fmt.Sprintf("non-positive font size %.2f", f.FontSize)}
		case f.Page < 1:
			return &InvalidFragmentError{Index: i, Reason: fmt.Sprintf("page %d out of range", f.Page)}
		case f.Order < 0:
			return &InvalidFragmentError{Index: i, Reason: fmt.Sprintf("negative order index %d", f.Order)}
		}
	}
	return nil
}

var hyphenBreak = regexp.MustCompile(`(\w)-\s+(\w)`)

// cleanText collapses whitespace runs to single spaces, trims, and repairs
// hyphenated word breaks inside a single fragment ("under- standing" becomes
// "understanding").
func cleanText(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return hyphenBreak.ReplaceAllString(s, "$1$2")
}

// Normalize cleans each fragment's text, drops fragments that normalize to
// empty, and fuses hyphen-broken pairs: a fragment ending in "-" followed on
// the same page at the adjacent order index by a lowercase-starting fragment
// becomes one fragment with the hyphen removed and no space inserted.
func Normalize(frags []Fragment) []Fragment {
	cleaned := make([]Fragment, 0, len(frags))
	for _, f := range frags {
		f.Text = cleanText(f.Text)
		if f.Text == "" {
			continue
		}
		f.endOrder = f.Order
		cleaned = append(cleaned, f)
	}

	out := make([]Fragment, 0, len(cleaned))
	for i := 0; i < len(cleaned); i++ {
		f := cleaned[i]
		for i+1 < len(cleaned) && joinsHyphenBreak(f, cleaned[i+1]) {
			next := cleaned[i+1]
			f.Text = strings.TrimSuffix(f.Text, "-") + next.Text
			f.endOrder = next.endOrder
			i++
		}
		out = append(out, f)
	}
	return out
}

func joinsHyphenBreak(cur, next Fragment) bool {
	if !strings.HasSuffix(cur.Text, "-") {
		return false
	}
	if next.Page != cur.Page || next.Order != cur.endOrder+1 {
		return false
	}
	r := []rune(next.Text)
	return len(r) > 0 && unicode.IsLower(r[0])
}
