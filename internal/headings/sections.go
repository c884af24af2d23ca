package headings

import (
	"strings"

	"github.com/docline/docline/internal/extract"
)

// Section groups consecutive blocks under one heading. A Level of zero
// marks body text before the first heading (the document preamble).
type Section struct {
	Heading string
	Level   int
	Page    int
	Text    string
}

// Split walks blocks in document order and starts a new section at
// every heading boundary. When the boundary signal is ambiguous (the
// block is heading-sized but scores below the heading threshold) the
// policy still breaks the section rather than silently concatenating
// unrelated content.
func Split(blocks []extract.TextBlock, th Thresholds) []Section {
	if len(blocks) == 0 {
		return nil
	}

	st := Collect(blocks)

	levels := make(map[float64]string)
	for _, h := range Detect(blocks, th) {
		levels[h.Size] = h.Level
	}

	var sections []Section
	var cur *Section
	var body []string

	closeSection := func() {
		if cur == nil {
			return
		}
		cur.Text = strings.TrimSpace(strings.Join(body, "\n"))
		sections = append(sections, *cur)
		cur = nil
		body = body[:0]
	}

	for _, b := range blocks {
		text := strings.TrimSpace(b.Text)
		if text == "" {
			continue
		}

		switch {
		case IsLikelyHeading(b, st, th):
			closeSection()
			cur = &Section{
				Heading: cleanHeadingText(b.Text),
				Level:   LevelNumber(levels[b.FontSize]),
				Page:    b.Page,
			}

		case isAmbiguousBoundary(b, st, th):
			closeSection()
			cur = &Section{Page: b.Page}
			body = append(body, text)

		default:
			if cur == nil {
				cur = &Section{Page: b.Page}
			}
			body = append(body, text)
		}
	}
	closeSection()

	return sections
}

// isAmbiguousBoundary reports a block that looks like a boundary without
// qualifying as a heading: text oversized relative to the document body
// yet short enough to not be a paragraph of its own.
func isAmbiguousBoundary(b extract.TextBlock, st Stats, th Thresholds) bool {
	if b.FontSize < st.AvgSize*th.SizeRatio {
		return false
	}
	return len(strings.Fields(b.Text)) <= th.MaxHeadingWords
}
