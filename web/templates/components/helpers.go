package components

import (
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// HTMLWriter writes markup and remembers the first write error, so
// components can emit many fragments and check once at the end
type HTMLWriter struct {
	w   io.Writer
	err error
}

// NewHTMLWriter wraps w
func NewHTMLWriter(w io.Writer) *HTMLWriter {
	return &HTMLWriter{w: w}
}

// Raw writes trusted markup as is
func (hw *HTMLWriter) Raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

// Rawf formats trusted markup; string arguments must already be escaped
func (hw *HTMLWriter) Rawf(format string, args ...any) {
	if hw.err != nil {
		return
	}
	_, hw.err = fmt.Fprintf(hw.w, format, args...)
}

// Text writes escaped text
func (hw *HTMLWriter) Text(s string) {
	hw.Raw(templ.EscapeString(s))
}

// Err returns the first write error
func (hw *HTMLWriter) Err() error {
	return hw.err
}

// Attr escapes a value for use inside a double-quoted attribute
func Attr(s string) string {
	return templ.EscapeString(s)
}
