package extract

import (
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// fontInfo carries the style hints we keep from a font dictionary.
type fontInfo struct {
	BaseFont string
	Bold     bool
	Italic   bool
}

// resolveFonts maps content-stream font resource names (e.g. "F1") to
// BaseFont info by walking every page resource dictionary in the xref
// table. Resource names are document-scoped here: if two pages reuse a
// name for different fonts the last one wins, which is acceptable for a
// style hint.
func resolveFonts(pctx *model.Context) map[string]fontInfo {
	fonts := make(map[string]fontInfo)

	for _, entry := range pctx.Table {
		if entry == nil || entry.Free || entry.Compressed {
			continue
		}
		d, ok := entry.Object.(types.Dict)
		if !ok || !isPageDict(d) {
			continue
		}

		res, found := d.Find("Resources")
		if !found {
			continue
		}
		resDict, err := pctx.DereferenceDict(res)
		if err != nil || resDict == nil {
			continue
		}

		fontObj, found := resDict.Find("Font")
		if !found {
			continue
		}
		fontDict, err := pctx.DereferenceDict(fontObj)
		if err != nil || fontDict == nil {
			continue
		}

		for resName, ref := range fontDict {
			fd, err := pctx.DereferenceDict(ref)
			if err != nil || fd == nil {
				continue
			}
			base := nameEntry(fd, "BaseFont")
			if base == "" {
				continue
			}
			fonts[resName] = fontInfo{
				BaseFont: base,
				Bold:     strings.Contains(strings.ToLower(base), "bold"),
				Italic: strings.Contains(strings.ToLower(base), "italic") ||
					strings.Contains(strings.ToLower(base), "oblique"),
			}
		}
	}

	return fonts
}

func isPageDict(d types.Dict) bool {
	obj, found := d.Find("Type")
	if !found {
		return false
	}
	name, ok := obj.(types.Name)
	return ok && name == "Page"
}

func nameEntry(d types.Dict, key string) string {
	obj, found := d.Find(key)
	if !found {
		return ""
	}
	if name, ok := obj.(types.Name); ok {
		return string(name)
	}
	return ""
}
