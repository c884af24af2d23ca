package extract

import (
	"strings"
	"testing"
)

func TestParseContent_BlockSegmentation(t *testing.T) {
	stream := []byte("BT\n/F1 24 Tf\n72 720 Td\n(Big Heading) Tj\nET\n" +
		"BT\n/F1 12 Tf\n72 680 Td\n(Body paragraph text) Tj\nET")

	blocks := parseContent(stream, 0, nil)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}

	if blocks[0].Text != "Big Heading" {
		t.Errorf("first block = %q", blocks[0].Text)
	}
	if blocks[0].FontSize != 24 {
		t.Errorf("first block size = %v, want 24", blocks[0].FontSize)
	}
	if blocks[1].FontSize != 12 {
		t.Errorf("second block size = %v, want 12", blocks[1].FontSize)
	}
	if blocks[0].Y <= blocks[1].Y {
		t.Errorf("first block Y %v should be above second %v", blocks[0].Y, blocks[1].Y)
	}
}

func TestParseContent_FontChangeSplitsBlock(t *testing.T) {
	// Same text object, but a size change mid-stream must not merge
	// heading-sized text with body text.
	stream := []byte("BT\n/F1 18 Tf\n72 720 Td\n(Heading) Tj\n/F1 12 Tf\n(body) Tj\nET")

	blocks := parseContent(stream, 0, nil)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].Text != "Heading" || blocks[1].Text != "body" {
		t.Errorf("blocks = %q, %q", blocks[0].Text, blocks[1].Text)
	}
}

func TestParseContent_LinesJoinWithNewline(t *testing.T) {
	// Small downward moves are line breaks within one block.
	stream := []byte("BT\n/F1 12 Tf\n72 720 Td\n(first line) Tj\n0 -14 Td\n(second line) Tj\nET")

	blocks := parseContent(stream, 0, nil)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if blocks[0].Text != "first line\nsecond line" {
		t.Errorf("text = %q, want lines joined with a single newline", blocks[0].Text)
	}
}

func TestParseContent_ParagraphGapSplits(t *testing.T) {
	// A move well beyond the line height starts a new block.
	stream := []byte("BT\n/F1 12 Tf\n72 720 Td\n(first paragraph) Tj\n0 -60 Td\n(second paragraph) Tj\nET")

	blocks := parseContent(stream, 0, nil)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
}

func TestParseContent_WhitespaceCollapsed(t *testing.T) {
	stream := []byte("BT\n/F1 12 Tf\n72 720 Td\n(spaced   out\ttext) Tj\nET")

	blocks := parseContent(stream, 0, nil)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if blocks[0].Text != "spaced out text" {
		t.Errorf("text = %q, want repeated whitespace collapsed", blocks[0].Text)
	}
}

func TestParseContent_FontResolution(t *testing.T) {
	fonts := map[string]fontInfo{
		"F2": {BaseFont: "Helvetica-Bold", Bold: true},
	}
	stream := []byte("BT\n/F2 14 Tf\n72 720 Td\n(strong text) Tj\nET")

	blocks := parseContent(stream, 3, fonts)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	b := blocks[0]
	if b.FontName != "Helvetica-Bold" || !b.Bold {
		t.Errorf("font = %q bold=%v, want resolved Helvetica-Bold bold=true", b.FontName, b.Bold)
	}
	if b.Page != 3 {
		t.Errorf("page = %d, want 3", b.Page)
	}
}

func TestDecodePDFString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, "plain"},
		{`with \( parens \)`, "with ( parens )"},
		{`tab\there`, "tab\there"},
		{`octal\040space`, "octal space"},
		{`back\\slash`, `back\slash`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := decodePDFString([]byte(tt.in)); got != tt.want {
				t.Errorf("decodePDFString(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanLine(t *testing.T) {
	got := cleanLine("  a   bc  ")
	if got != "a bc" {
		t.Errorf("cleanLine = %q, want %q", got, "a bc")
	}
	if cleanLine("   \t ") != "" {
		t.Error("whitespace-only input should clean to empty")
	}
}

func TestParseContent_EmptyStream(t *testing.T) {
	if blocks := parseContent(nil, 0, nil); len(blocks) != 0 {
		t.Errorf("got %d blocks for empty stream, want 0", len(blocks))
	}
	if blocks := parseContent([]byte("q 1 0 0 1 0 0 cm Q"), 0, nil); len(blocks) != 0 {
		t.Errorf("got %d blocks for text-free stream, want 0", len(blocks))
	}
}

func TestParseContent_ShowTextApostropheOperator(t *testing.T) {
	stream := []byte("BT\n/F1 12 Tf\n72 720 Td\n(first) Tj\n(continued) '\nET")

	blocks := parseContent(stream, 0, nil)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if !strings.Contains(blocks[0].Text, "continued") {
		t.Errorf("text = %q, want the ' operator string included", blocks[0].Text)
	}
}
