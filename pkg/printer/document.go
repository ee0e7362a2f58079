package printer

import (
	"bytes"
	"fmt"
	"strings"
)

// ESC/POS command bytes
const (
	esc = 0x1B
	gs  = 0x1D
	lf  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character size
const (
	FontNormal = 0x00
	FontDouble = 0x11 // double width + double height
)

// Document builds an ESC/POS byte stream. Building is deterministic: the same
// sequence of calls always yields the same bytes.
type Document struct {
	buf   bytes.Buffer
	width int // print width in characters
}

// NewDocument creates a new ESC/POS document with the given character width.
// Non-positive widths fall back to DefaultWidth.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = DefaultWidth
	}
	d := &Document{width: charWidth}
	d.buf.Write([]byte{esc, '@'}) // initialize printer
	return d
}

// Width returns the document's character width.
func (d *Document) Width() int {
	return d.width
}

// LineFeed emits a single line feed.
func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(lf)
	return d
}

// FeedLines emits n line feeds.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(lf)
	}
	return d
}

// SetAlign sets text alignment: AlignLeft, AlignCenter, AlignRight.
func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{esc, 'a', byte(align)})
	return d
}

// SetBold enables or disables bold text.
func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{esc, 'E', b})
	return d
}

// SetFontSize sets the character size, FontNormal or FontDouble.
func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{gs, '!', size})
	return d
}

// Text writes a line of text followed by a line feed.
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(lf)
	return d
}

// TextF writes a formatted line of text followed by a line feed.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

// Separator prints a full-width rule, e.g. "------------------------".
func (d *Document) Separator(char byte) *Document {
	return d.Text(strings.Repeat(string(char), d.width))
}

// KeyValue prints a left-aligned key and right-aligned value on one line.
func (d *Document) KeyValue(key, value string) *Document {
	pad := d.width - len(key) - len(value)
	if pad < 1 {
		pad = 1
	}
	d.buf.WriteString(key)
	d.buf.WriteString(strings.Repeat(" ", pad))
	d.buf.WriteString(value)
	d.buf.WriteByte(lf)
	return d
}

// Columns prints cells at fixed widths on one line. Positive widths are
// left-aligned, negative widths right-aligned. Overlong cells are truncated.
func (d *Document) Columns(widths []int, cells ...string) *Document {
	var line strings.Builder
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		w := widths[i]
		right := w < 0
		if right {
			w = -w
		}
		if len(cell) > w {
			cell = cell[:w]
		}
		if right {
			line.WriteString(strings.Repeat(" ", w-len(cell)))
			line.WriteString(cell)
		} else {
			line.WriteString(cell)
			line.WriteString(strings.Repeat(" ", w-len(cell)))
		}
	}
	return d.Text(strings.TrimRight(line.String(), " "))
}

// PartialCut emits the partial paper-cut command.
func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{gs, 'V', 0x01})
	return d
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}
