// Package headings holds the layout heuristics that turn flat text
// blocks into titles, heading outlines, and sections. Everything here is
// a pure function over blocks plus a Thresholds value, so tie-break
// policies can be unit-tested without touching a PDF.
package headings

import (
	"regexp"
	"sort"
	"strings"

	"github.com/docline/docline/internal/extract"
)

// Thresholds tunes the heading and section-boundary heuristics.
type Thresholds struct {
	// HeadingScore is the minimum score for a block to count as a heading.
	HeadingScore int

	// SizeRatio is the font size, relative to the document average,
	// at which a block earns heading points.
	SizeRatio float64

	// StrongSizeRatio earns additional points and, on its own, marks an
	// ambiguous boundary worth a new section.
	StrongSizeRatio float64

	// MaxHeadingWords filters out long paragraphs.
	MaxHeadingWords int

	// ShortHeadingWords is the length under which short text earns a point.
	ShortHeadingWords int

	// MaxDigitRatio filters out table/data rows.
	MaxDigitRatio float64
}

// DefaultThresholds returns the default heuristic policy.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HeadingScore:      3,
		SizeRatio:         1.1,
		StrongSizeRatio:   1.3,
		MaxHeadingWords:   20,
		ShortHeadingWords: 8,
		MaxDigitRatio:     0.3,
	}
}

// Stats holds document-wide font statistics.
type Stats struct {
	AvgSize float64
	// Sizes are the distinct font sizes present, largest first.
	Sizes []float64
}

// Collect computes font statistics over all blocks. Blocks shorter than
// three characters are ignored, matching the heading filter, so page
// numbers and stray glyphs do not drag the average down.
func Collect(blocks []extract.TextBlock) Stats {
	var sum float64
	var n int
	seen := make(map[float64]bool)

	for _, b := range blocks {
		text := strings.TrimSpace(b.Text)
		if len(text) <= 2 || b.FontSize <= 0 {
			continue
		}
		sum += b.FontSize * float64(len(text))
		n += len(text)
		seen[b.FontSize] = true
	}

	st := Stats{AvgSize: 12}
	if n > 0 {
		st.AvgSize = sum / float64(n)
	}
	for size := range seen {
		st.Sizes = append(st.Sizes, size)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(st.Sizes)))
	return st
}

var headingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\d+\.?\s*)+`),                    // numbered sections (1. / 1.1)
	regexp.MustCompile(`^[A-Z][A-Z\s]{2,}$`),               // ALL CAPS short text
	regexp.MustCompile(`^(Chapter|Section|Part|Appendix)\s+\d+`),
	regexp.MustCompile(`^[IVX]+\.\s+`),                     // roman numerals
	regexp.MustCompile(`^\w+\s*:$`),                        // single word with colon
}

// IsLikelyHeading scores a block on font size, weight, and text shape.
func IsLikelyHeading(b extract.TextBlock, st Stats, th Thresholds) bool {
	return headingScore(b, st, th) >= th.HeadingScore
}

func headingScore(b extract.TextBlock, st Stats, th Thresholds) int {
	text := strings.TrimSpace(firstLine(b.Text))
	if len(text) < 3 {
		return 0
	}

	words := strings.Fields(text)
	if len(words) > th.MaxHeadingWords {
		return 0
	}
	if digitRatio(text) > th.MaxDigitRatio {
		return 0
	}

	score := 0
	if b.FontSize >= st.AvgSize*th.SizeRatio {
		score += 2
	}
	if b.FontSize >= st.AvgSize*th.StrongSizeRatio {
		score += 2
	}
	if b.Bold {
		score += 2
	}
	if matchesHeadingPattern(text) {
		score += 3
	}
	if isTitleCase(words) {
		score++
	}
	if len(words) <= th.ShortHeadingWords {
		score++
	}
	return score
}

func matchesHeadingPattern(text string) bool {
	for _, re := range headingPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// isTitleCase reports whether most words start with an upper-case letter.
func isTitleCase(words []string) bool {
	if len(words) < 2 {
		return false
	}
	capitalized := 0
	for _, w := range words {
		r := []rune(w)
		if len(r) > 0 && r[0] >= 'A' && r[0] <= 'Z' {
			capitalized++
		}
	}
	return float64(capitalized)/float64(len(words)) >= 0.7
}

func digitRatio(text string) float64 {
	if text == "" {
		return 0
	}
	digits := 0
	total := 0
	for _, r := range text {
		total++
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return float64(digits) / float64(total)
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}

// Heading is a detected heading with its assigned level.
type Heading struct {
	Text  string
	Level string // H1..H6
	Page  int
	Y     float64
	Size  float64
}

// Detect filters heading blocks, assigns levels, and orders them by
// page and position on the page (top first).
func Detect(blocks []extract.TextBlock, th Thresholds) []Heading {
	st := Collect(blocks)

	var hs []Heading
	for _, b := range blocks {
		if !IsLikelyHeading(b, st, th) {
			continue
		}
		hs = append(hs, Heading{
			Text: cleanHeadingText(b.Text),
			Page: b.Page,
			Y:    b.Y,
			Size: b.FontSize,
		})
	}

	assignLevels(hs)

	sort.SliceStable(hs, func(i, j int) bool {
		if hs[i].Page != hs[j].Page {
			return hs[i].Page < hs[j].Page
		}
		return hs[i].Y > hs[j].Y // larger Y is higher on the page
	})

	return hs
}

// assignLevels maps distinct heading font sizes, largest first, to
// H1..H6. Sizes past the sixth collapse into H6.
func assignLevels(hs []Heading) {
	seen := make(map[float64]bool)
	var sizes []float64
	for _, h := range hs {
		if !seen[h.Size] {
			seen[h.Size] = true
			sizes = append(sizes, h.Size)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))

	levels := make(map[float64]string, len(sizes))
	for i, size := range sizes {
		level := i + 1
		if level > 6 {
			level = 6
		}
		levels[size] = "H" + string(rune('0'+level))
	}

	for i := range hs {
		hs[i].Level = levels[hs[i].Size]
	}
}

// LevelNumber converts an H1..H6 label into its numeric level.
// Unknown labels map to 6.
func LevelNumber(level string) int {
	if len(level) == 2 && level[0] == 'H' && level[1] >= '1' && level[1] <= '6' {
		return int(level[1] - '0')
	}
	return 6
}

// cleanHeadingText keeps only the first line of a heading block.
func cleanHeadingText(text string) string {
	return strings.TrimSpace(firstLine(text))
}
