package outline

import (
	"math"
	"sort"
	"strings"
)

// Block is a merged run of fragments sharing a page and, within tolerance, a
// font size. Blocks are created once by the grouper and read-only afterward;
// they never span a page boundary.
type Block struct {
	Text       string
	FontSize   float64
	Page       int
	FirstOrder int
}

// Group folds normalized fragments into blocks. A pending block accumulates
// until the continuation predicate fails — page boundary crossed, font size
// drifts past tol, or the order index is not contiguous — then it is flushed;
// the final pending block is flushed at stream end. FirstOrder is always the
// minimum order index of the constituents, so sorting blocks by
// (Page, FirstOrder) preserves document order.
func Group(frags []Fragment, tol float64) []Block {
	sorted := make([]Fragment, len(frags))
	copy(sorted, frags)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Page != sorted[j].Page {
			return sorted[i].Page < sorted[j].Page
		}
		return sorted[i].Order < sorted[j].Order
	})

	var blocks []Block
	var pending strings.Builder
	var cur Block
	lastEnd := 0
	open := false

	flush := func() {
		if !open {
			return
		}
		cur.Text = pending.String()
		blocks = append(blocks, cur)
		pending.Reset()
		open = false
	}

	for _, f := range sorted {
		if open && f.Page == cur.Page && math.Abs(f.FontSize-cur.FontSize) <= tol && f.Order == lastEnd+1 {
			pending.WriteByte(' ')
			pending.WriteString(f.Text)
			lastEnd = f.endOrder
			continue
		}
		flush()
		cur = Block{FontSize: f.FontSize, Page: f.Page, FirstOrder: f.Order}
		pending.WriteString(f.Text)
		lastEnd = f.endOrder
		open = true
	}
	flush()
	return blocks
}
