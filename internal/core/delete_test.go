package core

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDelete_Unreferenced(t *testing.T) {
	root, e := openWorkspace(t, "workspace_basic")
	if err := e.Delete(context.Background(), "step-definitions/reference.step.js", Options{}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "step-definitions/reference.step.js")); !os.IsNotExist(err) {
		t.Error("file should be deleted")
	}
	if _, err := os.Stat(filepath.Join(root, "step-definitions")); !os.IsNotExist(err) {
		t.Error("empty directory should be removed")
	}
	// Edges owned by the deleted file are gone.
	assertReferencers(t, e.Graph(), "page-objects/file.po.js", "page-objects/header.po.js")
	assertReferencers(t, e.Graph(), "mock-data/user.mock.json")
}

func TestDelete_RemovesGraphEntry(t *testing.T) {
	_, e := openWorkspace(t, "workspace_basic")
	ctx := context.Background()
	for _, p := range []string{"step-definitions/reference.step.js", "page-objects/header.po.js"} {
		if err := e.Delete(ctx, p, Options{}); err != nil {
			t.Fatalf("delete %s: %v", p, err)
		}
	}
	// file.po.js is no longer referenced and can go.
	if err := e.Delete(ctx, "page-objects/file.po.js", Options{}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	assertReferencers(t, e.Graph(), "page-objects/file.po.js")
	if n := len(e.Graph().Edges()); n != 0 {
		t.Errorf("edges = %d, want 0", n)
	}
}

func TestDelete_ReferencedFails(t *testing.T) {
	root, e := openWorkspace(t, "workspace_basic")
	we, rs := wrapEngine(t, e)
	before := readFile(t, root, "page-objects/file.po.js")

	err := we.Delete(context.Background(), "page-objects/file.po.js", Options{})
	var rerr *ReferencedArtifactError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *ReferencedArtifactError, got %v", err)
	}
	if rerr.Path != "page-objects/file.po.js" {
		t.Errorf("path = %s", rerr.Path)
	}
	if err.Error() != "cannot delete page-objects/file.po.js as it is referenced by another file" {
		t.Errorf("message = %q", err.Error())
	}
	if len(rerr.Referencers) != 2 {
		t.Errorf("referencers = %v", rerr.Referencers)
	}

	if got := readFile(t, root, "page-objects/file.po.js"); got != before {
		t.Error("file changed")
	}
	if len(rs.saves) != 0 {
		t.Errorf("unexpected saves: %v", rs.saves)
	}
	assertReferencers(t, e.Graph(), "page-objects/file.po.js",
		"page-objects/header.po.js", "step-definitions/reference.step.js")
}

func TestDelete_IsMoveBypassesGuard(t *testing.T) {
	root, e := openWorkspace(t, "workspace_basic")
	if err := e.Delete(context.Background(), "page-objects/file.po.js", Options{IsMove: true}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "page-objects/file.po.js")); !os.IsNotExist(err) {
		t.Error("file should be deleted")
	}
	// The incoming entry is left for the enclosing move to rekey.
	assertReferencers(t, e.Graph(), "page-objects/file.po.js",
		"page-objects/header.po.js", "step-definitions/reference.step.js")
	if err := e.Graph().Rekey("page-objects/file.po.js", "page-objects/new-file.po.js"); err != nil {
		t.Fatalf("rekey: %v", err)
	}
	assertReferencers(t, e.Graph(), "page-objects/new-file.po.js",
		"page-objects/header.po.js", "step-definitions/reference.step.js")
}

func TestDelete_IsMoveDropsOwnEdges(t *testing.T) {
	_, e := openWorkspace(t, "workspace_basic")
	if err := e.Delete(context.Background(), "page-objects/header.po.js", Options{IsMove: true}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	assertReferencers(t, e.Graph(), "page-objects/file.po.js", "step-definitions/reference.step.js")
}

func TestDelete_Missing(t *testing.T) {
	_, e := openWorkspace(t, "workspace_basic")
	err := e.Delete(context.Background(), "page-objects/missing.po.js", Options{})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestDelete_PathEscapesRoot(t *testing.T) {
	_, e := openWorkspace(t, "workspace_basic")
	err := e.Delete(context.Background(), "../outside.po.js", Options{})
	if err == nil || !strings.Contains(err.Error(), "escapes workspace root") {
		t.Errorf("expected escape error, got %v", err)
	}
}

func TestDeleteAll_TargetBeforeReferencers(t *testing.T) {
	root, e := openWorkspace(t, "workspace_basic")
	paths := []string{
		"page-objects/file.po.js",
		"page-objects/header.po.js",
		"step-definitions/reference.step.js",
	}
	if err := e.DeleteAll(context.Background(), paths, Options{}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	for _, p := range paths {
		if _, err := os.Stat(filepath.Join(root, p)); !os.IsNotExist(err) {
			t.Errorf("%s should be deleted", p)
		}
	}
	if n := len(e.Graph().Edges()); n != 0 {
		t.Errorf("edges = %d, want 0", n)
	}
}

func TestDeleteAll_ReferencedFromOutsideBatch(t *testing.T) {
	root, e := openWorkspace(t, "workspace_basic")
	err := e.DeleteAll(context.Background(), []string{
		"page-objects/header.po.js",
		"page-objects/file.po.js",
	}, Options{})
	var rerr *ReferencedArtifactError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *ReferencedArtifactError, got %v", err)
	}
	if rerr.Path != "page-objects/file.po.js" || len(rerr.Referencers) != 1 ||
		rerr.Referencers[0] != "step-definitions/reference.step.js" {
		t.Errorf("error = %+v", rerr)
	}
	// Nothing in the batch is removed.
	for _, p := range []string{"page-objects/header.po.js", "page-objects/file.po.js"} {
		if _, err := os.Stat(filepath.Join(root, p)); err != nil {
			t.Errorf("%s should remain: %v", p, err)
		}
	}
	assertReferencers(t, e.Graph(), "page-objects/file.po.js",
		"page-objects/header.po.js", "step-definitions/reference.step.js")
}
