package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/docline/docline/internal/record"
	"github.com/docline/docline/internal/schema"
)

// Stage names the per-file state machine states.
type Stage string

const (
	StageDiscovered Stage = "Discovered"
	StageExtracting Stage = "Extracting"
	StageMapping    Stage = "Mapping"
	StageValidating Stage = "Validating"
	StageSucceeded  Stage = "Succeeded"
	StageFailed     Stage = "Failed"
)

// ErrorKind tags the failure taxonomy in failure artifacts.
type ErrorKind string

const (
	KindExtraction ErrorKind = "ExtractionError"
	KindMapping    ErrorKind = "MappingError"
	KindValidation ErrorKind = "ValidationFailure"
)

// FailureArtifact replaces the record for a file that failed a stage.
type FailureArtifact struct {
	Source string        `json:"source"`
	Stage  Stage         `json:"stage"`
	Error  FailureDetail `json:"error"`
}

// FailureDetail carries the error kind and message.
type FailureDetail struct {
	Kind   ErrorKind `json:"kind"`
	Detail string    `json:"detail"`
}

// InvalidArtifact wraps a record that mapped cleanly but failed schema
// validation. The record is surfaced for inspection, not dropped.
type InvalidArtifact struct {
	Source     string             `json:"source"`
	Stage      Stage              `json:"stage"`
	Error      FailureDetail      `json:"error"`
	Record     record.Record      `json:"record"`
	Violations []schema.Violation `json:"violations"`
}

// artifactPath derives the deterministic output path for an input file:
// the input's base name with a .json extension. Reruns overwrite.
func artifactPath(outputDir, inputPath string) string {
	base := filepath.Base(inputPath)
	stem := base[:len(base)-len(filepath.Ext(base))]
	return filepath.Join(outputDir, stem+".json")
}

// writeArtifact serializes v as indented UTF-8 JSON and writes it
// atomically: temp file then rename, so an aborted run never leaves a
// partial artifact. The write is retried for transient filesystem
// errors on container volume mounts.
func writeArtifact(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	data = append(data, '\n')

	return retry.Do(
		func() error {
			tmp, err := os.CreateTemp(filepath.Dir(path), ".docline-*.json")
			if err != nil {
				return err
			}
			tmpName := tmp.Name()
			if _, err := tmp.Write(data); err != nil {
				tmp.Close()
				os.Remove(tmpName)
				return err
			}
			if err := tmp.Close(); err != nil {
				os.Remove(tmpName)
				return err
			}
			if err := os.Rename(tmpName, path); err != nil {
				os.Remove(tmpName)
				return err
			}
			return nil
		},
		retry.Attempts(3),
		retry.Delay(100*time.Millisecond),
		retry.LastErrorOnly(true),
	)
}
