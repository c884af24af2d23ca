// Package schema loads the output record schema and validates mapped
// records against it.
package schema

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// defaultSchemaFile is the embedded record schema used when no external
// schema path is configured.
const defaultSchemaFile = "schemas/record.schema.json"

// ErrNotInitialized is returned by Get before a successful Load.
var ErrNotInitialized = errors.New("schema registry not initialized")

// LoadError wraps failures to read or compile a schema. Schema load
// failure is the one fatal error class of a batch run: without a schema
// there is nothing to validate against.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load schema %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Schema is an immutable, compiled record schema. It is loaded once at
// process start and shared read-only across all per-file operations.
type Schema struct {
	source   string
	raw      []byte
	compiled *jsonschema.Schema
}

// Source identifies where the schema came from (path or "embedded").
func (s *Schema) Source() string {
	return s.source
}

// Raw returns the schema document bytes.
func (s *Schema) Raw() []byte {
	return s.raw
}

// TitleMaxLength returns the maxLength constraint of the title property,
// or zero when the schema does not declare one.
func (s *Schema) TitleMaxLength() int {
	title, ok := s.compiled.Properties["title"]
	if !ok || title.MaxLength < 0 {
		return 0
	}
	return title.MaxLength
}

// Registry loads and caches the active schema.
type Registry struct {
	schema *Schema
}

// NewRegistry returns an empty registry; call Load before Get.
func NewRegistry() *Registry {
	return &Registry{}
}

// Load reads and compiles the schema at path. An empty path loads the
// embedded default. On success the schema is cached and immutable.
func (r *Registry) Load(path string) error {
	var raw []byte
	var err error
	source := path

	if path == "" {
		source = "embedded"
		raw, err = schemaFS.ReadFile(defaultSchemaFile)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return &LoadError{Path: source, Err: err}
	}

	compiled, err := compile(raw)
	if err != nil {
		return &LoadError{Path: source, Err: err}
	}

	r.schema = &Schema{source: source, raw: raw, compiled: compiled}
	return nil
}

// Get returns the cached schema.
func (r *Registry) Get() (*Schema, error) {
	if r.schema == nil {
		return nil, ErrNotInitialized
	}
	return r.schema, nil
}

func compile(raw []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("record.schema.json", bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile("record.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}
