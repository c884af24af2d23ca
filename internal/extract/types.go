// Package extract parses PDF documents into a typed page/block structure.
package extract

// TextBlock is a run of text with consistent layout attributes.
// Coordinates are PDF user-space points with Y growing upward,
// so a larger Y means higher on the page.
type TextBlock struct {
	Text     string  // cleaned text, lines joined with a single newline
	Page     int     // zero-based page index
	X        float64 // block start position
	Y        float64
	FontSize float64
	FontName string // resolved BaseFont name when available, else resource name
	Bold     bool
}

// Page holds the ordered text blocks of one page.
// Pages without extractable text keep an empty Blocks slice so that
// page counts downstream reflect the true document.
type Page struct {
	Index  int
	Blocks []TextBlock
}

// Structure is the in-memory representation of an extracted document.
// It is produced once per source file and consumed in a single pass.
type Structure struct {
	SourceName string
	MetaTitle  string // document Info dictionary /Title, may be empty
	Pages      []Page
}

// PageCount returns the number of pages, including empty ones.
func (s *Structure) PageCount() int {
	return len(s.Pages)
}

// AllBlocks returns every text block in document order.
func (s *Structure) AllBlocks() []TextBlock {
	var blocks []TextBlock
	for _, p := range s.Pages {
		blocks = append(blocks, p.Blocks...)
	}
	return blocks
}
