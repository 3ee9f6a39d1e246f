package nav

import (
	"strings"
	"testing"

	"arender/geom"
)

func TestResolver_ForwardReference(t *testing.T) {
	r := NewResolver()

	g := r.Reference("intro")
	if g.State() != StateIncomplete || g.PageIndex != -1 {
		t.Fatalf("new reference state = %s, page = %d", g.State(), g.PageIndex)
	}
	if len(r.Pending()) != 0 {
		t.Error("incomplete action must not be pending")
	}
	if r.Reference("intro") != g {
		t.Error("references to the same target must share the action")
	}

	if !r.Target("intro", 3, geom.Point{X: 10, Y: 20}) {
		t.Fatal("first Target() = false")
	}
	if r.Target("intro", 4, geom.Point{X: 1, Y: 1}) {
		t.Error("second Target() for the same id = true")
	}
	if g.State() != StateComplete || g.PageIndex != 3 || g.Point != (geom.Point{X: 10, Y: 20}) {
		t.Errorf("after Target() = %+v", g)
	}
	if p := r.Pending(); len(p) != 1 || p[0] != g {
		t.Fatalf("Pending() = %v", p)
	}

	r.MarkEmitted(g)
	if g.State() != StateEmitted || len(r.Pending()) != 0 {
		t.Errorf("after MarkEmitted state = %s, pending = %d", g.State(), len(r.Pending()))
	}
}

func TestResolver_BackwardReference(t *testing.T) {
	r := NewResolver()
	r.Target("x", 1, geom.Point{X: 5, Y: 6})
	g := r.Reference("x")
	if !g.IsComplete() || g.PageIndex != 1 {
		t.Errorf("reference to known target = %+v", g)
	}
	if !r.Known("x") || r.Known("y") {
		t.Error("Known() mismatch")
	}
}

func TestResolver_Finish(t *testing.T) {
	r := NewResolver()
	r.Target("found", 2, geom.Point{X: 1, Y: 2})
	found := r.Reference("found")
	missing := r.Reference("missing")
	other := r.Reference("missing-too")

	if got := r.Incomplete(); len(got) != 2 || got[0] != "missing" {
		t.Errorf("Incomplete() = %v", got)
	}
	if n := r.Finish(); n != 2 {
		t.Errorf("Finish() = %d, want 2", n)
	}
	for _, g := range []*GoTo{missing, other} {
		if g.State() != StateComplete || g.PageIndex != 0 || g.Point != (geom.Point{}) {
			t.Errorf("default resolution = %+v", g)
		}
	}
	if found.PageIndex != 2 {
		t.Errorf("resolved action changed: %+v", found)
	}
	if len(r.Pending()) != 3 {
		t.Errorf("Pending() = %d, want 3", len(r.Pending()))
	}
	if n := r.Finish(); n != 0 {
		t.Errorf("second Finish() = %d", n)
	}
}

func TestResolver_MarkEmittedIncompletePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	r := NewResolver()
	r.MarkEmitted(r.Reference("nowhere"))
}

func TestResolver_ExternalLink(t *testing.T) {
	r := NewResolver()
	a := r.ExternalLink("https://example.com", false)
	if r.ExternalLink("https://example.com", false) != a {
		t.Error("same uri must share action")
	}
	if r.ExternalLink("https://example.com", true) == a {
		t.Error("new window flag must produce a distinct action")
	}
	if !a.IsComplete() || a.ActionID() == "" {
		t.Errorf("uri action = %+v", a)
	}
}

func TestResolver_String(t *testing.T) {
	r := NewResolver()
	r.Target("id10", 0, geom.Point{})
	r.Target("id2", 1, geom.Point{})
	r.Reference("id2")
	s := r.String()
	if strings.Index(s, "id2 ->") > strings.Index(s, "id10 ->") {
		t.Errorf("targets not naturally sorted:\n%s", s)
	}
	if !strings.Contains(s, "actions: 1") {
		t.Errorf("dump:\n%s", s)
	}
}
