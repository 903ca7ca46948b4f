package outline

import (
	"math"
	"sort"
)

// FontProfile is a read-only summary of the distinct font sizes seen across
// a document's non-title blocks. Ranking distinct sizes rather than raw
// frequency keeps body text, usually the single most frequent size, from
// crowding out heading sizes that appear rarely.
type FontProfile struct {
	// Counts maps each distinct size (rounded to 0.1pt) to its occurrences.
	Counts map[float64]int
	// Sizes lists the distinct sizes in descending order, with sizes closer
	// than the tolerance merged into one entry.
	Sizes []float64
}

// levelByRank maps size rank to heading level. The slice is the single place
// the rank-to-level assignment lives.
var levelByRank = []Level{LevelH1, LevelH2, LevelH3}

// BuildProfile computes the font profile of blocks, excluding the title's
// font size so a size that appears only once, for the title, is never
// mistaken for a heading level. A titleSize of zero means no title was found
// and every size participates.
func BuildProfile(blocks []Block, titleSize, tol float64) FontProfile {
	counts := make(map[float64]int)
	for _, b := range blocks {
		s := roundSize(b.FontSize)
		if titleSize > 0 && titleSize-s <= tol {
			continue
		}
		counts[s]++
	}

	sizes := make([]float64, 0, len(counts))
	for s := range counts {
		sizes = append(sizes, s)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))

	// Merge sizes within tolerance of each other so 13.9 and 14.0 occupy a
	// single rank.
	clustered := make([]float64, 0, len(sizes))
	for _, s := range sizes {
		if n := len(clustered); n > 0 && clustered[n-1]-s <= tol {
			counts[clustered[n-1]] += counts[s]
			delete(counts, s)
			continue
		}
		clustered = append(clustered, s)
	}

	return FontProfile{Counts: counts, Sizes: clustered}
}

// LevelFor returns the heading level whose profile size matches within tol,
// or false when the size ranks below H3 and is treated as body text.
func (p FontProfile) LevelFor(size, tol float64) (Level, bool) {
	s := roundSize(size)
	for rank, ps := range p.Sizes {
		if rank >= len(levelByRank) {
			break
		}
		if math.Abs(ps-s) <= tol {
			return levelByRank[rank], true
		}
	}
	return "", false
}

// Levels returns the sizes currently assigned to heading levels, largest
// first. Documents with fewer than three distinct non-title sizes populate
// fewer levels.
func (p FontProfile) Levels() []float64 {
	n := len(p.Sizes)
	if n > len(levelByRank) {
		n = len(levelByRank)
	}
	out := make([]float64, n)
	copy(out, p.Sizes[:n])
	return out
}

func roundSize(s float64) float64 {
	return math.Round(s*10) / 10
}
