package core

import (
	"context"
	"testing"

	"github.com/ryotapoi/pocascade/internal/rewrite"
)

func rewriteStep(t *testing.T, src string, d RenameDelta) string {
	t.Helper()
	a, err := NewArtifact("step-definitions/list.step.js", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	r := a.(Referencer)
	if err := r.RewriteIdentifiers(context.Background(), rewrite.New(), d); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	return string(a.Content())
}

func TestRewriteIdentifiers_ShadowingParameterUntouched(t *testing.T) {
	src := `var file = new File();
list.forEach(function (file) { return file.path; });
file.getHeading();
`
	got := rewriteStep(t, src, RenameDelta{
		Kind:            KindPageObject,
		OldClassName:    "File",
		NewClassName:    "NewFile",
		OldInstanceName: "file",
		NewInstanceName: "newFile",
	})
	want := `var newFile = new NewFile();
list.forEach(function (file) { return file.path; });
newFile.getHeading();
`
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRewriteIdentifiers_MockDataPropertyReads(t *testing.T) {
	src := `var user = require('../mock-data/user.mock.json');
expect(heading).to.equal(user.name);
`
	got := rewriteStep(t, src, RenameDelta{
		Kind:            KindMockData,
		OldClassName:    "User",
		NewClassName:    "Admin",
		OldInstanceName: "user",
		NewInstanceName: "admin",
	})
	want := `var admin = require('../mock-data/user.mock.json');
expect(heading).to.equal(admin.name);
`
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}
