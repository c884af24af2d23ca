package headings

import (
	"math"
	"sort"
	"strings"

	"github.com/docline/docline/internal/extract"
)

// sameLineTolerance is the vertical distance, in points, under which two
// title candidates are treated as the same line of text.
const sameLineTolerance = 10

// Title picks a document title. Strategy order:
//  1. the Info dictionary title, when it carries real content,
//  2. the largest text on page zero, preferring higher placement,
//  3. the first non-empty block on page zero,
//  4. empty string.
func Title(page0 []extract.TextBlock, metaTitle string) string {
	if t := strings.TrimSpace(metaTitle); len(t) > 3 {
		return t
	}

	type candidate struct {
		text string
		size float64
		y    float64
	}

	var candidates []candidate
	for _, b := range page0 {
		text := cleanHeadingText(b.Text)
		if len(text) < 10 || len(strings.Fields(text)) < 2 {
			continue
		}
		candidates = append(candidates, candidate{text: text, size: b.FontSize, y: b.Y})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].size != candidates[j].size {
			return candidates[i].size > candidates[j].size
		}
		return candidates[i].y > candidates[j].y // higher on the page wins
	})

	// Drop near-duplicates on the same line (doubled text from some
	// generators that fake bold by overprinting).
	var filtered []candidate
	for _, c := range candidates {
		dup := false
		for _, kept := range filtered {
			if math.Abs(c.y-kept.y) < sameLineTolerance && containsEither(c.text, kept.text) {
				dup = true
				break
			}
		}
		if !dup {
			filtered = append(filtered, c)
		}
	}

	if len(filtered) > 0 {
		return filtered[0].text
	}

	for _, b := range page0 {
		if t := cleanHeadingText(b.Text); t != "" {
			return t
		}
	}
	return ""
}

func containsEither(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}
