package record

import (
	"github.com/docline/docline/internal/extract"
	"github.com/docline/docline/internal/headings"
)

// Options parametrize mapping. Limits come from the active schema so the
// mapper stays pure: callers derive them once and pass them in.
type Options struct {
	// TitleMaxLen truncates the title to the schema's maxLength.
	// Zero means no truncation.
	TitleMaxLen int

	Thresholds headings.Thresholds
}

// Map converts an extracted structure into a Record. It is deterministic
// for identical input, performs no I/O, and always emits every required
// field.
func Map(st *extract.Structure, opts Options) Record {
	rec := Record{
		PageCount: st.PageCount(),
		Outline:   []OutlineEntry{},
		Sections:  []Section{},
	}

	blocks := st.AllBlocks()

	var page0 []extract.TextBlock
	if len(st.Pages) > 0 {
		page0 = st.Pages[0].Blocks
	}
	rec.Title = truncate(headings.Title(page0, st.MetaTitle), opts.TitleMaxLen)

	for _, h := range headings.Detect(blocks, opts.Thresholds) {
		rec.Outline = append(rec.Outline, OutlineEntry{
			Level: h.Level,
			Text:  h.Text,
			Page:  h.Page,
		})
	}

	for _, s := range headings.Split(blocks, opts.Thresholds) {
		rec.Sections = append(rec.Sections, Section{
			Heading: s.Heading,
			Level:   s.Level,
			Page:    s.Page,
			Text:    s.Text,
		})
	}

	return rec
}

// truncate shortens s to max runes, preserving valid UTF-8.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
