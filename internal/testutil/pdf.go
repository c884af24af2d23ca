// Package testutil builds minimal but structurally valid PDF fixtures
// for tests, with correct xref offsets so real parsers accept them.
package testutil

import (
	"fmt"
	"strings"
)

// Span is one text run on a page. Spans are laid out top to bottom in
// the order given.
type Span struct {
	Text string
	Size float64
	Bold bool
}

// Body returns a regular-weight 12pt span.
func Body(text string) Span {
	return Span{Text: text, Size: 12}
}

// Heading returns a bold span at the given size.
func Heading(text string, size float64) Span {
	return Span{Text: text, Size: size, Bold: true}
}

// BuildPDF assembles a PDF with one entry per page. Text uses two
// embedded Type1 fonts: Helvetica and Helvetica-Bold.
func BuildPDF(pages ...[]Span) []byte {
	return build(pages, "")
}

// BuildPDFWithTitle is BuildPDF plus an Info dictionary /Title.
func BuildPDFWithTitle(title string, pages ...[]Span) []byte {
	return build(pages, title)
}

func build(pages [][]Span, infoTitle string) []byte {
	n := len(pages)

	// Object numbering: 1 catalog, 2 pages root, then per page a page
	// object and a content object, then the two fonts, then Info.
	pageObj := func(i int) int { return 3 + 2*i }
	contentObj := func(i int) int { return 4 + 2*i }
	fontRegular := 3 + 2*n
	fontBold := 4 + 2*n
	infoObj := 5 + 2*n

	lastObj := fontBold
	if infoTitle != "" {
		lastObj = infoObj
	}

	var b strings.Builder
	offsets := make([]int, lastObj+1)

	b.WriteString("%PDF-1.4\n")

	offsets[1] = b.Len()
	fmt.Fprintf(&b, "1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	offsets[2] = b.Len()
	var kids []string
	for i := range pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", pageObj(i)))
	}
	fmt.Fprintf(&b, "2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), n)

	for i, spans := range pages {
		offsets[pageObj(i)] = b.Len()
		fmt.Fprintf(&b,
			"%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R "+
				"/Resources << /Font << /F1 %d 0 R /F2 %d 0 R >> >> >>\nendobj\n",
			pageObj(i), contentObj(i), fontRegular, fontBold)

		stream := contentStream(spans)
		offsets[contentObj(i)] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
			contentObj(i), len(stream), stream)
	}

	offsets[fontRegular] = b.Len()
	fmt.Fprintf(&b, "%d 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n", fontRegular)

	offsets[fontBold] = b.Len()
	fmt.Fprintf(&b, "%d 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold >>\nendobj\n", fontBold)

	if infoTitle != "" {
		offsets[infoObj] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Title (%s) >>\nendobj\n", infoObj, escape(infoTitle))
	}

	xrefOffset := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", lastObj+1)
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= lastObj; i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}

	b.WriteString("trailer\n<< /Size ")
	fmt.Fprintf(&b, "%d /Root 1 0 R", lastObj+1)
	if infoTitle != "" {
		fmt.Fprintf(&b, " /Info %d 0 R", infoObj)
	}
	fmt.Fprintf(&b, " >>\nstartxref\n%d\n%%%%EOF\n", xrefOffset)

	return []byte(b.String())
}

// contentStream lays spans out top to bottom, one text object per span.
func contentStream(spans []Span) string {
	var b strings.Builder
	y := 720.0
	for _, s := range spans {
		font := "F1"
		if s.Bold {
			font = "F2"
		}
		size := s.Size
		if size <= 0 {
			size = 12
		}
		fmt.Fprintf(&b, "BT\n/%s %g Tf\n72 %g Td\n(%s) Tj\nET\n", font, size, y, escape(s.Text))
		y -= size * 2
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func escape(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	text = strings.ReplaceAll(text, "(", `\(`)
	text = strings.ReplaceAll(text, ")", `\)`)
	return text
}
