package outline

import (
	"math"
	"sort"
	"strings"
)

// extractTitle selects the maximal-font block on page one plus any
// order-adjacent blocks sharing that size, joined with single spaces in
// ascending order (multi-line titles). It returns the title text, the
// constituent blocks, and the rounded title font size. A first page with no
// eligible blocks yields an empty title and a zero size; that is an absent
// title, not an error.
func extractTitle(blocks []Block, tol float64) (string, []Block, float64) {
	var page1 []Block
	for _, b := range blocks {
		if b.Page == 1 {
			page1 = append(page1, b)
		}
	}
	if len(page1) == 0 {
		return "", nil, 0
	}
	sort.SliceStable(page1, func(i, j int) bool {
		return page1[i].FirstOrder < page1[j].FirstOrder
	})

	max := 0.0
	for _, b := range page1 {
		if b.FontSize > max {
			max = b.FontSize
		}
	}

	// Collect the first run of max-size blocks; a smaller block in between
	// ends the title.
	var parts []string
	var used []Block
	started := false
	for _, b := range page1 {
		if math.Abs(b.FontSize-max) <= tol {
			parts = append(parts, b.Text)
			used = append(used, b)
			started = true
			continue
		}
		if started {
			break
		}
	}
	return strings.Join(parts, " "), used, roundSize(max)
}
