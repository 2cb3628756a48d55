package core

import (
	"slices"
	"strings"
	"testing"
)

func TestEngine_Referencers(t *testing.T) {
	_, e := openWorkspace(t, "workspace_basic")
	got, err := e.Referencers("./page-objects/file.po.js")
	if err != nil {
		t.Fatalf("referencers: %v", err)
	}
	want := []string{"page-objects/header.po.js", "step-definitions/reference.step.js"}
	if !slices.Equal(got, want) {
		t.Errorf("referencers = %v, want %v", got, want)
	}
}

func TestEngine_ReferencersIgnoresSelfReference(t *testing.T) {
	e := NewEngine(nil, newTestGraph(t,
		Edge{Target: "a.po.js", Source: "a.po.js"},
		Edge{Target: "a.po.js", Source: "b.step.js"},
	))
	got, err := e.Referencers("a.po.js")
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []string{"b.step.js"}) {
		t.Errorf("referencers = %v", got)
	}
}

func TestEngine_ReferencersRejectsEscape(t *testing.T) {
	e := NewEngine(nil, NewGraph())
	_, err := e.Referencers("../x.po.js")
	if err == nil || !strings.Contains(err.Error(), "escapes workspace root") {
		t.Errorf("expected escape error, got %v", err)
	}
}

func TestIndexExists(t *testing.T) {
	root := copyWorkspace(t, "workspace_basic")
	if IndexExists(root) {
		t.Fatal("fixture should have no index")
	}
	e, err := Open(root, DefaultConfig())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer e.Close()
	if !IndexExists(root) {
		t.Error("index should exist after open")
	}
}
