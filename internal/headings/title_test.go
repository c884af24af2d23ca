package headings

import (
	"testing"

	"github.com/docline/docline/internal/extract"
)

func TestTitle_MetadataWins(t *testing.T) {
	page0 := []extract.TextBlock{
		{Text: "Some Large Cover Text", FontSize: 30, Y: 720},
	}
	if got := Title(page0, "The Real Title"); got != "The Real Title" {
		t.Errorf("Title = %q, want metadata title", got)
	}
}

func TestTitle_ShortMetadataIgnored(t *testing.T) {
	page0 := []extract.TextBlock{
		{Text: "Fallback Cover Title", FontSize: 30, Y: 720},
	}
	if got := Title(page0, "ok"); got != "Fallback Cover Title" {
		t.Errorf("Title = %q, want layout-derived title over trivial metadata", got)
	}
}

func TestTitle_LargestTextOnPageZero(t *testing.T) {
	page0 := []extract.TextBlock{
		{Text: "small print header line", FontSize: 9, Y: 760},
		{Text: "Annual Report Twenty Twenty Six", FontSize: 28, Y: 700},
		{Text: "ordinary introduction paragraph text", FontSize: 12, Y: 640},
	}
	if got := Title(page0, ""); got != "Annual Report Twenty Twenty Six" {
		t.Errorf("Title = %q, want the largest text", got)
	}
}

func TestTitle_TieBreaksByHeightOnPage(t *testing.T) {
	page0 := []extract.TextBlock{
		{Text: "The Lower Candidate Line", FontSize: 20, Y: 400},
		{Text: "The Upper Candidate Line", FontSize: 20, Y: 700},
	}
	if got := Title(page0, ""); got != "The Upper Candidate Line" {
		t.Errorf("Title = %q, want the higher-placed candidate", got)
	}
}

func TestTitle_OverprintDuplicatesFiltered(t *testing.T) {
	// Generators that fake bold by overprinting emit the same line twice
	// at nearly the same position.
	page0 := []extract.TextBlock{
		{Text: "Duplicated Title Line", FontSize: 24, Y: 700},
		{Text: "Duplicated Title Line", FontSize: 24, Y: 702},
	}
	if got := Title(page0, ""); got != "Duplicated Title Line" {
		t.Errorf("Title = %q", got)
	}
}

func TestTitle_FallbackToFirstNonEmptyBlock(t *testing.T) {
	// No block qualifies as a title candidate (too short), so the first
	// non-empty block wins.
	page0 := []extract.TextBlock{
		{Text: "  ", FontSize: 12, Y: 720},
		{Text: "Memo", FontSize: 12, Y: 700},
	}
	if got := Title(page0, ""); got != "Memo" {
		t.Errorf("Title = %q, want first non-empty block", got)
	}
}

func TestTitle_EmptyDocument(t *testing.T) {
	if got := Title(nil, ""); got != "" {
		t.Errorf("Title = %q, want empty string, never a placeholder", got)
	}
}
