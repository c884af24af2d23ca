// Package batch drives a directory of PDFs through extraction, mapping,
// and validation, writing exactly one artifact per input file.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docline/docline/internal/extract"
	"github.com/docline/docline/internal/headings"
	"github.com/docline/docline/internal/record"
	"github.com/docline/docline/internal/schema"
)

// Config parametrizes one batch run.
type Config struct {
	InputDir    string
	OutputDir   string
	SchemaPath  string // empty selects the embedded default schema
	Workers     int
	MaxPages    int
	PDFPassword string
	Thresholds  headings.Thresholds
	Logger      *slog.Logger
}

// Summary reports the outcome of a batch run.
type Summary struct {
	RunID     string
	Total     int
	Succeeded int
	Invalid   int
	Failed    int
	Duration  time.Duration
}

// outcome is the terminal state of one file.
type outcome struct {
	source  string
	stage   Stage
	ok      bool
	invalid bool
}

// Run processes every PDF in cfg.InputDir. Only schema load and
// input/output directory problems are fatal; any per-file failure
// becomes a failure artifact and the batch continues. The returned
// error is nil even when files failed; callers read the Summary.
func Run(ctx context.Context, cfg Config) (*Summary, error) {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	start := time.Now()
	runID := uuid.New().String()
	log = log.With("run_id", runID)

	registry := schema.NewRegistry()
	if err := registry.Load(cfg.SchemaPath); err != nil {
		return nil, err
	}
	sch, err := registry.Get()
	if err != nil {
		return nil, err
	}

	files, err := discover(cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	log.Info("starting batch", "input", cfg.InputDir, "files", len(files), "schema", sch.Source())

	p := &processor{
		cfg:       cfg,
		sch:       sch,
		extractor: extract.New(extract.Config{MaxPages: cfg.MaxPages, Password: cfg.PDFPassword, Logger: log}),
		opts: record.Options{
			TitleMaxLen: sch.TitleMaxLength(),
			Thresholds:  cfg.Thresholds,
		},
		log: log,
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	sem := make(chan struct{}, workers)
	results := make(chan outcome, len(files))

	launched := 0
	var aborted bool
	for _, f := range files {
		// Cancellation is checked before each file is claimed; files
		// already in flight finish their artifact.
		if ctx.Err() != nil {
			aborted = true
			break
		}
		sem <- struct{}{}
		launched++
		go func(path string) {
			defer func() { <-sem }()
			results <- p.processFile(ctx, path)
		}(f)
	}

	summary := &Summary{RunID: runID, Total: launched}
	for i := 0; i < launched; i++ {
		o := <-results
		switch {
		case o.ok:
			summary.Succeeded++
		case o.invalid:
			summary.Invalid++
		default:
			summary.Failed++
		}
	}
	summary.Duration = time.Since(start)

	log.Info("batch complete",
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"invalid", summary.Invalid,
		"failed", summary.Failed,
		"duration", summary.Duration.Round(time.Millisecond),
	)

	if aborted {
		return summary, ctx.Err()
	}
	return summary, nil
}

// discover lists PDF files directly inside dir, sorted for deterministic
// processing order. Subdirectories are not entered.
func discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// processor holds the per-run collaborators shared across files. The
// schema is the only shared resource and it is read-only after load.
type processor struct {
	cfg       Config
	sch       *schema.Schema
	extractor *extract.Extractor
	opts      record.Options
	log       *slog.Logger
}

// processFile drives one file through the state machine and writes its
// artifact. Every exit path writes exactly one artifact, so a rerun is
// idempotent per file.
func (p *processor) processFile(ctx context.Context, path string) outcome {
	source := filepath.Base(path)
	out := artifactPath(p.cfg.OutputDir, path)
	log := p.log.With("file", source)

	data, err := os.ReadFile(path)
	if err != nil {
		return p.fail(log, out, source, StageExtracting, KindExtraction, err)
	}

	st, err := p.extractor.Extract(ctx, data, source)
	if err != nil {
		return p.fail(log, out, source, StageExtracting, KindExtraction, err)
	}

	rec, err := p.safeMap(st)
	if err != nil {
		return p.fail(log, out, source, StageMapping, KindMapping, err)
	}

	res := schema.Validate(rec, p.sch)
	if !res.Valid {
		log.Warn("record failed validation", "violations", len(res.Violations))
		artifact := InvalidArtifact{
			Source: source,
			Stage:  StageValidating,
			Error: FailureDetail{
				Kind:   KindValidation,
				Detail: fmt.Sprintf("%d schema violations", len(res.Violations)),
			},
			Record:     rec,
			Violations: res.Violations,
		}
		if err := writeArtifact(out, artifact); err != nil {
			log.Error("failed to write artifact", "error", err)
			return outcome{source: source, stage: StageFailed}
		}
		return outcome{source: source, stage: StageFailed, invalid: true}
	}

	if err := writeArtifact(out, rec); err != nil {
		log.Error("failed to write artifact", "error", err)
		return outcome{source: source, stage: StageFailed}
	}

	log.Debug("document processed", "pages", rec.PageCount, "outline", len(rec.Outline))
	return outcome{source: source, stage: StageSucceeded, ok: true}
}

// safeMap runs the mapper with a panic guard. The mapper is pure and
// total over well-formed structures, but a malformed one must degrade
// to a Failed artifact rather than take down the batch.
func (p *processor) safeMap(st *extract.Structure) (rec record.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mapper panic: %v", r)
		}
	}()
	return record.Map(st, p.opts), nil
}

// fail writes a failure artifact and logs the stage that broke.
func (p *processor) fail(log *slog.Logger, out, source string, stage Stage, kind ErrorKind, cause error) outcome {
	log.Warn("file failed", "stage", string(stage), "kind", string(kind), "error", cause)

	artifact := FailureArtifact{
		Source: source,
		Stage:  stage,
		Error:  FailureDetail{Kind: kind, Detail: cause.Error()},
	}
	if err := writeArtifact(out, artifact); err != nil {
		log.Error("failed to write failure artifact", "error", err)
	}
	return outcome{source: source, stage: StageFailed}
}
