package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter produces indented human readable dumps of area and navigation
// trees.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Node writes name followed by key=value pairs. Pairs with empty or zero
// values are skipped, kv must have even length.
func (tw TreeWriter) Node(depth int, name string, kv ...any) {
	tw.indent(depth)
	tw.w.WriteString(name)
	for i := 0; i+1 < len(kv); i += 2 {
		var v string
		switch val := kv[i+1].(type) {
		case string:
			v = encodeText(val)
		case int:
			if val != 0 {
				v = strconv.Itoa(val)
			}
		case bool:
			if val {
				v = "true"
			}
		case fmt.Stringer:
			v = val.String()
		default:
			v = fmt.Sprint(val)
		}
		if v == "" {
			continue
		}
		fmt.Fprintf(tw.w, " %v=%s", kv[i], v)
	}
	tw.w.WriteByte('\n')
}

func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
