package convert

import (
	"bytes"
	"strings"
	"testing"
)

func TestInspectDocument(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		kind    inputKind
		calls   bool
		want    []string
		notWant string
	}{
		{"area tree", sampleAreaTree, inputAreaTree, false,
			[]string{"pageSequence", "pageViewport", "bookmarkTree"}, "StartPage"},
		{"area tree calls", sampleAreaTree, inputAreaTree, true,
			[]string{"StartDocument", "StartPage", "DrawText", "EndDocument"}, "pageViewport"},
		{"intermediate", sampleIntermediate, inputIntermediate, false,
			[]string{"StartPageSequence lang=\"de\"", "EndPage"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, env := setupTestEnv(t)
			var out bytes.Buffer
			if err := inspectDocument(ctx, env, parse(t, tt.data), tt.kind, t.TempDir(), tt.calls, &out, env.Log); err != nil {
				t.Fatalf("inspectDocument() error = %v", err)
			}
			got := out.String()
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("output lacks %q:\n%s", w, got)
				}
			}
			if tt.notWant != "" && strings.Contains(got, tt.notWant) {
				t.Errorf("output unexpectedly contains %q", tt.notWant)
			}
		})
	}
}
