package debug

import (
	"testing"
)

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{"no depth", 0, "test", nil, "test\n"},
		{"depth 2", 2, "double indent", nil, "    double indent\n"},
		{"with formatting", 1, "value: %d", []any{42}, "  value: 42\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

type stringer struct{}

func (stringer) String() string { return "S" }

func TestTreeWriter_Node(t *testing.T) {
	tests := []struct {
		name string
		kv   []any
		want string
	}{
		{"bare", nil, "  block\n"},
		{"zero values skipped", []any{"ipd", 0, "id", "", "clip", false}, "  block\n"},
		{"values", []any{"ipd", 1000, "id", "a b", "clip", true}, "  block ipd=1000 id=\"a b\" clip=true\n"},
		{"stringer", []any{"pos", stringer{}}, "  block pos=S\n"},
		{"odd pair ignored", []any{"ipd", 5, "dangling"}, "  block ipd=5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Node(1, "block", tt.kv...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Node() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tw := NewTreeWriter()
	tw.TextBlock(1, "word", "hi\n")
	tw.TextBlock(0, "empty", "")
	want := "  word: \"hi\\n\"\nempty: \n"
	if got := tw.String(); got != want {
		t.Errorf("TextBlock() = %q, want %q", got, want)
	}
}
