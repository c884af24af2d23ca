package extract

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// pdfStringRe matches PDF string literals in parentheses: (text here)
var pdfStringRe = regexp.MustCompile(`\(([^)]*)\)`)

// paragraphGapFactor is the vertical move, in multiples of the current
// font size, beyond which a text positioning operator starts a new block
// instead of a new line within the block.
const paragraphGapFactor = 1.8

// contentParser accumulates text blocks while walking a page content stream.
type contentParser struct {
	page  int
	fonts map[string]fontInfo

	blocks []TextBlock

	// current text state
	fontRes  string
	fontSize float64
	x, y     float64

	// current block under construction
	lines   []string
	line    strings.Builder
	blockX  float64
	blockY  float64
	started bool
}

// parseContent walks a decoded page content stream and returns the text
// blocks it shows, in stream order. The parser is line-oriented: PDF
// writers emit one operator per line often enough for a layout hint, and
// the fallback cost of a missed operator is a merged block, not lost text.
func parseContent(data []byte, page int, fonts map[string]fontInfo) []TextBlock {
	p := &contentParser{page: page, fonts: fonts, fontSize: 12}

	for _, raw := range bytes.Split(data, []byte{'\n'}) {
		line := bytes.TrimSpace(raw)
		if len(line) == 0 {
			continue
		}
		p.handleLine(line)
	}
	p.flush()

	return p.blocks
}

func (p *contentParser) handleLine(line []byte) {
	switch {
	case bytes.Equal(line, []byte("BT")):
		// BT resets the text matrix to the identity.
		p.flush()
		p.x, p.y = 0, 0

	case bytes.Equal(line, []byte("ET")):
		p.flush()

	case bytes.HasSuffix(line, []byte("Tf")):
		p.setFont(line)

	case bytes.HasSuffix(line, []byte("Tm")):
		p.setMatrix(line)

	case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
		p.moveText(line)

	case bytes.Equal(line, []byte("T*")):
		p.newline()

	case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
		p.showText(line, false)

	case bytes.HasSuffix(line, []byte("'")), bytes.HasSuffix(line, []byte("\"")):
		if bytes.Contains(line, []byte("(")) {
			p.showText(line, true)
		}
	}
}

// setFont handles "/F1 24 Tf". A size or face change ends the current
// block so heading-sized text never merges with body text.
func (p *contentParser) setFont(line []byte) {
	fields := strings.Fields(string(line))
	if len(fields) < 3 {
		return
	}
	res := strings.TrimPrefix(fields[len(fields)-3], "/")
	size, err := strconv.ParseFloat(fields[len(fields)-2], 64)
	if err != nil || size <= 0 {
		return
	}
	if p.started && (res != p.fontRes || size != p.fontSize) {
		p.flush()
	}
	p.fontRes = res
	p.fontSize = size
}

// setMatrix handles "a b c d e f Tm", taking e/f as the new position.
func (p *contentParser) setMatrix(line []byte) {
	fields := strings.Fields(string(line))
	if len(fields) < 7 {
		return
	}
	x, errX := strconv.ParseFloat(fields[len(fields)-3], 64)
	y, errY := strconv.ParseFloat(fields[len(fields)-2], 64)
	if errX != nil || errY != nil {
		return
	}
	p.jumpTo(x, y)
}

// moveText handles "tx ty Td" / "tx ty TD" relative positioning.
func (p *contentParser) moveText(line []byte) {
	fields := strings.Fields(string(line))
	if len(fields) < 3 {
		return
	}
	tx, errX := strconv.ParseFloat(fields[len(fields)-3], 64)
	ty, errY := strconv.ParseFloat(fields[len(fields)-2], 64)
	if errX != nil || errY != nil {
		return
	}
	p.jumpTo(p.x+tx, p.y+ty)
}

func (p *contentParser) jumpTo(x, y float64) {
	dy := p.y - y
	p.x, p.y = x, y

	if !p.started {
		return
	}
	if dy < 0 || dy > paragraphGapFactor*p.fontSize {
		// Upward move or a gap wider than a line: new block.
		p.flush()
		return
	}
	if dy > 0 {
		p.newline()
	}
}

func (p *contentParser) showText(line []byte, ownLine bool) {
	matches := pdfStringRe.FindAllSubmatch(line, -1)
	if len(matches) == 0 {
		return
	}
	if ownLine {
		p.newline()
	}
	if !p.started {
		p.started = true
		p.blockX, p.blockY = p.x, p.y
	}
	for _, m := range matches {
		p.line.WriteString(decodePDFString(m[1]))
	}
}

func (p *contentParser) newline() {
	if !p.started {
		return
	}
	p.lines = append(p.lines, p.line.String())
	p.line.Reset()
}

// flush closes the current block, collapsing repeated whitespace within
// each line but preserving line boundaries as single newlines.
func (p *contentParser) flush() {
	if !p.started {
		return
	}
	p.newline()

	var cleaned []string
	for _, l := range p.lines {
		if c := cleanLine(l); c != "" {
			cleaned = append(cleaned, c)
		}
	}
	text := strings.Join(cleaned, "\n")

	if text != "" {
		block := TextBlock{
			Text:     text,
			Page:     p.page,
			X:        p.blockX,
			Y:        p.blockY,
			FontSize: p.fontSize,
			FontName: p.fontRes,
		}
		if fi, ok := p.fonts[p.fontRes]; ok {
			block.FontName = fi.BaseFont
			block.Bold = fi.Bold
		}
		p.blocks = append(p.blocks, block)
	}

	p.lines = p.lines[:0]
	p.line.Reset()
	p.started = false
}

// decodePDFString handles basic PDF escape sequences.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) {
			i++
			switch raw[i] {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case '\\':
				sb.WriteByte('\\')
			case '(':
				sb.WriteByte('(')
			case ')':
				sb.WriteByte(')')
			default:
				// Octal escape (e.g. \040 for space).
				if raw[i] >= '0' && raw[i] <= '7' {
					val := int(raw[i] - '0')
					if i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7' {
						i++
						val = val*8 + int(raw[i]-'0')
						if i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7' {
							i++
							val = val*8 + int(raw[i]-'0')
						}
					}
					sb.WriteByte(byte(val))
				} else {
					sb.WriteByte(raw[i])
				}
			}
		} else {
			sb.WriteByte(raw[i])
		}
	}
	return sb.String()
}

// cleanLine collapses runs of whitespace into single spaces and drops
// non-printable runes.
func cleanLine(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		} else if unicode.IsPrint(r) {
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}
