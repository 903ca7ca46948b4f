package outline

import (
	"regexp"
	"strings"
	"unicode"
)

// Rule reports whether a block is noise. Rules run before both title
// extraction and outline building; new rules can be added through
// Config.Rules without touching the outline builder.
type Rule func(Block) bool

var pureNumber = regexp.MustCompile(`^[0-9]+$`)

var boilerplate = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^page\s+\d+(\s+of\s+\d+)?$`),
	regexp.MustCompile(`(?i)^\d+\s+of\s+\d+$`),
	regexp.MustCompile(`(?i)^(copyright\b|\(c\)\s|©)`),
	regexp.MustCompile(`(?i)all rights reserved`),
}

// PureNumberRule drops page-number artifacts.
func PureNumberRule(b Block) bool {
	return pureNumber.MatchString(strings.TrimSpace(b.Text))
}

// ShortTextRule drops blocks with fewer than min non-space runes.
func ShortTextRule(min int) Rule {
	return func(b Block) bool {
		n := 0
		for _, r := range b.Text {
			if !unicode.IsSpace(r) {
				n++
			}
		}
		return n < min
	}
}

// BoilerplateRule drops known header and footer phrases.
func BoilerplateRule(b Block) bool {
	t := strings.TrimSpace(b.Text)
	for _, re := range boilerplate {
		if re.MatchString(t) {
			return true
		}
	}
	return false
}

// RepeatedTextRule drops blocks whose text appears verbatim on more than
// limit distinct pages. Running headers and footers carry no structural
// meaning, so every occurrence is dropped, not just the duplicates.
func RepeatedTextRule(blocks []Block, limit int) Rule {
	pages := make(map[string]map[int]struct{})
	for _, b := range blocks {
		key := strings.ToLower(b.Text)
		if pages[key] == nil {
			pages[key] = make(map[int]struct{})
		}
		pages[key][b.Page] = struct{}{}
	}
	repeated := make(map[string]bool)
	for key, seen := range pages {
		if len(seen) > limit {
			repeated[key] = true
		}
	}
	return func(b Block) bool {
		return repeated[strings.ToLower(b.Text)]
	}
}

func applyRules(blocks []Block, rules []Rule) []Block {
	kept := make([]Block, 0, len(blocks))
next:
	for _, b := range blocks {
		for _, rule := range rules {
			if rule(b) {
				continue next
			}
		}
		kept = append(kept, b)
	}
	return kept
}
