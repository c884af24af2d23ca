package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Reason classifies why a document could not be extracted.
type Reason string

const (
	ReasonUnreadable Reason = "unreadable"
	ReasonEncrypted  Reason = "encrypted"
	ReasonTooLarge   Reason = "too_large"
)

// Error is returned when a byte stream cannot be turned into a Structure.
type Error struct {
	Reason Reason
	Source string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("extract %s: %s", e.Source, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Config controls extraction behavior.
type Config struct {
	// MaxPages bounds worst-case resource use on hostile or huge inputs.
	// Zero means no limit.
	MaxPages int

	// Password is tried as the user password for encrypted documents.
	Password string

	Logger *slog.Logger
}

// Extractor turns PDF byte streams into typed Structures.
// It holds no per-document state and is safe for concurrent use.
type Extractor struct {
	cfg Config
	log *slog.Logger
}

// New creates an Extractor with the given config.
func New(cfg Config) *Extractor {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Extractor{cfg: cfg, log: log}
}

// Extract parses a PDF from memory and returns its page/block structure.
// The pdfcpu context is function-scoped, so no document handle outlives
// this call regardless of the exit path.
func (e *Extractor) Extract(ctx context.Context, data []byte, name string) (*Structure, error) {
	conf := model.NewDefaultConfiguration()
	if e.cfg.Password != "" {
		conf.UserPW = e.cfg.Password
	}

	pctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, &Error{Reason: classifyReadError(err), Source: name, Err: err}
	}

	if e.cfg.MaxPages > 0 && pctx.PageCount > e.cfg.MaxPages {
		return nil, &Error{
			Reason: ReasonTooLarge,
			Source: name,
			Err:    fmt.Errorf("page count %d exceeds limit %d", pctx.PageCount, e.cfg.MaxPages),
		}
	}

	fonts := resolveFonts(pctx)

	st := &Structure{
		SourceName: name,
		MetaTitle:  infoTitle(pctx),
		Pages:      make([]Page, 0, pctx.PageCount),
	}

	for pageNr := 1; pageNr <= pctx.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return nil, &Error{Reason: ReasonUnreadable, Source: name, Err: err}
		}

		page := Page{Index: pageNr - 1}
		if content := pageContent(pctx, pageNr); len(content) > 0 {
			page.Blocks = parseContent(content, pageNr-1, fonts)
		}
		st.Pages = append(st.Pages, page)
	}

	e.log.Debug("extracted document",
		"source", name,
		"pages", len(st.Pages),
		"blocks", len(st.AllBlocks()),
	)

	return st, nil
}

// pageContent pulls the decoded content stream for one page.
// Pages whose content cannot be read are treated as empty rather than fatal.
func pageContent(pctx *model.Context, pageNr int) []byte {
	r, err := pdfcpu.ExtractPageContent(pctx, pageNr)
	if err != nil || r == nil {
		return nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil
	}
	return data
}

// classifyReadError separates encrypted documents from plain garbage.
func classifyReadError(err error) Reason {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "password") || strings.Contains(msg, "encrypt") {
		return ReasonEncrypted
	}
	return ReasonUnreadable
}

// infoTitle reads the document Info dictionary /Title when present.
func infoTitle(pctx *model.Context) string {
	if pctx.Info == nil {
		return ""
	}
	d, err := pctx.DereferenceDict(*pctx.Info)
	if err != nil || d == nil {
		return ""
	}
	obj, found := d.Find("Title")
	if !found {
		return ""
	}
	obj, err = pctx.Dereference(obj)
	if err != nil {
		return ""
	}
	if sl, ok := obj.(types.StringLiteral); ok {
		return strings.TrimSpace(sl.Value())
	}
	return ""
}
