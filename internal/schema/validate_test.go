package schema

import (
	"strings"
	"testing"
)

func loadEmbedded(t *testing.T) *Schema {
	t.Helper()
	r := NewRegistry()
	if err := r.Load(""); err != nil {
		t.Fatal(err)
	}
	s, err := r.Get()
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestValidate_ValidRecord(t *testing.T) {
	s := loadEmbedded(t)

	rec := map[string]any{
		"title":      "Annual Report",
		"page_count": 3,
		"outline": []any{
			map[string]any{"level": "H1", "text": "Introduction", "page": 0},
		},
		"sections": []any{
			map[string]any{"heading": "Introduction", "level": 1, "page": 0, "text": "body"},
		},
	}

	res := Validate(rec, s)
	if !res.Valid {
		t.Errorf("record rejected: %+v", res.Violations)
	}
	if len(res.Violations) != 0 {
		t.Errorf("valid result carries violations: %+v", res.Violations)
	}
}

func TestValidate_EmptyRecordIsValid(t *testing.T) {
	s := loadEmbedded(t)

	rec := map[string]any{
		"title":      "",
		"page_count": 0,
		"outline":    []any{},
		"sections":   []any{},
	}
	if res := Validate(rec, s); !res.Valid {
		t.Errorf("empty record rejected: %+v", res.Violations)
	}
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	s := loadEmbedded(t)

	// Missing sections, wrong page_count type, bad outline level.
	rec := map[string]any{
		"title":      "x",
		"page_count": "three",
		"outline": []any{
			map[string]any{"level": "H9", "text": "Intro", "page": 0},
		},
	}

	res := Validate(rec, s)
	if res.Valid {
		t.Fatal("malformed record accepted")
	}
	if len(res.Violations) < 3 {
		t.Errorf("violations = %d, want at least 3: %+v", len(res.Violations), res.Violations)
	}

	var sawLevel bool
	for _, v := range res.Violations {
		if v.Path == "" {
			t.Errorf("violation with empty path: %+v", v)
		}
		if strings.Contains(v.Path, "/outline/0/level") {
			sawLevel = true
		}
	}
	if !sawLevel {
		t.Errorf("no violation at /outline/0/level: %+v", res.Violations)
	}
}

func TestValidate_NegativePageRejected(t *testing.T) {
	s := loadEmbedded(t)

	rec := map[string]any{
		"title":      "x",
		"page_count": 1,
		"outline": []any{
			map[string]any{"level": "H1", "text": "Intro", "page": -1},
		},
		"sections": []any{},
	}
	if res := Validate(rec, s); res.Valid {
		t.Error("negative outline page accepted")
	}
}

func TestValidate_UnserializableInput(t *testing.T) {
	s := loadEmbedded(t)

	res := Validate(map[string]any{"title": make(chan int)}, s)
	if res.Valid {
		t.Fatal("unserializable record accepted")
	}
	if len(res.Violations) != 1 || res.Violations[0].Rule != "serialization" {
		t.Errorf("violations = %+v, want single serialization violation", res.Violations)
	}
	if res.Violations[0].Path != "/" {
		t.Errorf("path = %q, want root", res.Violations[0].Path)
	}
}
