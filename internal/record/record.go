// Package record maps extracted document structure into the
// schema-shaped output record.
package record

// OutlineEntry is one heading in the document outline.
type OutlineEntry struct {
	Level string `json:"level"` // H1..H6
	Text  string `json:"text"`
	Page  int    `json:"page"` // zero-based
}

// Section is a grouped run of body text under one heading.
type Section struct {
	Heading string `json:"heading"`
	Level   int    `json:"level"` // 0 for preamble body
	Page    int    `json:"page"`
	Text    string `json:"text"`
}

// Record is the schema-conformant output for one document. Required
// fields are always present: absent values serialize as "" / 0 / [],
// never null.
type Record struct {
	Title     string         `json:"title"`
	PageCount int            `json:"page_count"`
	Outline   []OutlineEntry `json:"outline"`
	Sections  []Section      `json:"sections"`
}
