package schema

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Violation describes one schema rule a record broke.
type Violation struct {
	Path    string `json:"path"`    // instance location, "/" for the root
	Rule    string `json:"rule"`    // keyword location within the schema
	Message string `json:"message"`
}

// Result is the outcome of validating one record. It is never mutated
// after creation: an invalid record carries the full ordered violation
// list so callers can report every problem in one pass.
type Result struct {
	Valid      bool
	Violations []Violation
}

// Validate checks a record against the schema. It is total: any input,
// including one with hostile types, yields a Result and never panics.
// The record itself is not touched; validation runs on a JSON copy.
func Validate(rec any, s *Schema) Result {
	data, err := json.Marshal(rec)
	if err != nil {
		return Result{Violations: []Violation{{
			Path:    "/",
			Rule:    "serialization",
			Message: fmt.Sprintf("record is not JSON-serializable: %v", err),
		}}}
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return Result{Violations: []Violation{{
			Path:    "/",
			Rule:    "serialization",
			Message: fmt.Sprintf("record round-trip failed: %v", err),
		}}}
	}

	if err := s.compiled.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return Result{Violations: flatten(ve)}
		}
		return Result{Violations: []Violation{{
			Path:    "/",
			Rule:    "schema",
			Message: err.Error(),
		}}}
	}

	return Result{Valid: true}
}

// flatten collects leaf causes of a validation error in schema order.
// Branch nodes only restate their children, so leaves carry the whole
// story.
func flatten(ve *jsonschema.ValidationError) []Violation {
	if len(ve.Causes) == 0 {
		path := ve.InstanceLocation
		if path == "" {
			path = "/"
		}
		return []Violation{{
			Path:    path,
			Rule:    ve.KeywordLocation,
			Message: ve.Message,
		}}
	}

	var out []Violation
	for _, cause := range ve.Causes {
		out = append(out, flatten(cause)...)
	}
	return out
}
