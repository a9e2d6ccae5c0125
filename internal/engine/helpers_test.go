package engine_test

import (
	"strings"
	"testing"

	"github.com/vovakirdan/gridsim/internal/engine"
)

// stripLegend removes the "   G(200), E(3)" suffix RenderASCII adds to rows.
func stripLegend(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if idx := strings.Index(l, "   "); idx >= 0 && strings.Contains(l[idx:], "(") {
			lines[i] = l[:idx]
		}
	}
	return strings.Join(lines, "\n")
}

func mustParse(t *testing.T, text string) *engine.World {
	t.Helper()
	w, err := engine.Parse(text)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	return w
}

func mustRun(t *testing.T, w *engine.World, rules engine.Rules) engine.Outcome {
	t.Helper()
	out, err := engine.NewSimulator(w, rules).Run()
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	return out
}
