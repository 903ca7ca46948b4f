// Package outline infers a document title and hierarchical heading outline
// (H1–H3 with page numbers) from a page-ordered stream of styled text
// fragments. The pipeline is pure and deterministic: fragments are
// normalized, grouped into blocks, noise-filtered, and classified against a
// font-size profile built from the document itself.
package outline

import (
	"sort"
	"strings"
)

// Level is a heading level in the inferred outline.
type Level string

const (
	LevelH1 Level = "H1"
	LevelH2 Level = "H2"
	LevelH3 Level = "H3"
)

// Entry is one classified heading in the final outline.
type Entry struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Result is the terminal artifact of one document run.
type Result struct {
	Title   string  `json:"title"`
	Outline []Entry `json:"outline"`
}

// Config controls the heuristic thresholds of the pipeline. The tolerance and
// repetition limit are deliberately configuration, not constants: both are
// approximations and callers tune them per corpus.
type Config struct {
	// SizeTolerance is the maximum difference in points for two font sizes
	// to count as the same size, used for grouping, profile clustering and
	// level matching alike.
	SizeTolerance float64
	// RepeatPageLimit is the number of distinct pages a verbatim text may
	// appear on before every occurrence is dropped as a running header.
	RepeatPageLimit int
	// MinTextRunes is the minimum number of non-space runes a block needs
	// to survive the noise filter.
	MinTextRunes int
	// Rules are additional noise predicates applied after the built-ins.
	Rules []Rule
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		SizeTolerance:   0.5,
		RepeatPageLimit: 3,
		MinTextRunes:    2,
	}
}

// Extractor runs the heading-inference pipeline. An Extractor is stateless
// and safe for concurrent use; each Extract call owns all of its
// intermediate state, so documents may be processed in parallel by
// independent calls.
type Extractor struct {
	cfg Config
}

// New creates an extractor, filling unset config fields with defaults.
func New(cfg Config) *Extractor {
	def := DefaultConfig()
	if cfg.SizeTolerance <= 0 {
		cfg.SizeTolerance = def.SizeTolerance
	}
	if cfg.RepeatPageLimit <= 0 {
		cfg.RepeatPageLimit = def.RepeatPageLimit
	}
	if cfg.MinTextRunes <= 0 {
		cfg.MinTextRunes = def.MinTextRunes
	}
	return &Extractor{cfg: cfg}
}

// Extract runs the full pipeline over one document's fragments: validate,
// normalize, group, noise-filter, extract the title, build the font profile
// and emit the outline. Every stage degrades gracefully — an empty title,
// an empty outline and fewer than three levels are all valid results — and
// the only error is malformed decoder input.
func (e *Extractor) Extract(frags []Fragment) (*Result, error) {
	if err := validateFragments(frags); err != nil {
		return nil, err
	}

	blocks := Group(Normalize(frags), e.cfg.SizeTolerance)

	rules := []Rule{
		PureNumberRule,
		ShortTextRule(e.cfg.MinTextRunes),
		BoilerplateRule,
		RepeatedTextRule(blocks, e.cfg.RepeatPageLimit),
	}
	rules = append(rules, e.cfg.Rules...)
	kept := applyRules(blocks, rules)

	title, titleBlocks, titleSize := extractTitle(kept, e.cfg.SizeTolerance)
	body := excludeBlocks(kept, titleBlocks)

	profile := BuildProfile(body, titleSize, e.cfg.SizeTolerance)
	return &Result{Title: title, Outline: e.buildOutline(body, profile)}, nil
}

// buildOutline classifies blocks against the profile, keeps the first
// occurrence of each (level, text) pair, and orders entries by
// (page, first order index).
func (e *Extractor) buildOutline(blocks []Block, profile FontProfile) []Entry {
	sorted := make([]Block, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Page != sorted[j].Page {
			return sorted[i].Page < sorted[j].Page
		}
		return sorted[i].FirstOrder < sorted[j].FirstOrder
	})

	type dedupKey struct {
		level Level
		text  string
	}
	seen := make(map[dedupKey]bool)
	entries := []Entry{}
	for _, b := range sorted {
		level, ok := profile.LevelFor(b.FontSize, e.cfg.SizeTolerance)
		if !ok {
			continue
		}
		key := dedupKey{level, strings.ToLower(b.Text)}
		if seen[key] {
			continue
		}
		seen[key] = true
		entries = append(entries, Entry{Level: level, Text: b.Text, Page: b.Page})
	}
	return entries
}

// excludeBlocks removes the title's constituent blocks, identified by their
// first order index on page one.
func excludeBlocks(blocks, title []Block) []Block {
	if len(title) == 0 {
		return blocks
	}
	titleOrders := make(map[int]bool, len(title))
	for _, b := range title {
		titleOrders[b.FirstOrder] = true
	}
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		if b.Page == 1 && titleOrders[b.FirstOrder] {
			continue
		}
		out = append(out, b)
	}
	return out
}
