package core

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/ryotapoi/pocascade/internal/rewrite"
)

// Kind identifies an artifact type. The value doubles as the metadata key under which
// referencers list the artifacts of that kind they use.
type Kind string

const (
	KindPageObject     Kind = "page-objects"
	KindStepDefinition Kind = "step-definitions"
	KindMockData       Kind = "mock-data"
	KindFeature        Kind = "features"
)

// kindSpecs is ordered so that compound extensions are tried before shorter ones.
var kindSpecs = []struct {
	kind Kind
	ext  string
	new  func(f file) Artifact
}{
	{KindPageObject, ".po.js", func(f file) Artifact { return &PageObjectFile{jsFile{f}} }},
	{KindStepDefinition, ".step.js", func(f file) Artifact { return &StepDefinitionFile{jsFile{f}} }},
	{KindMockData, ".mock.json", func(f file) Artifact { return &MockDataFile{f} }},
	{KindFeature, ".feature", func(f file) Artifact { return &FeatureFile{f} }},
}

// KindOf returns the kind of the artifact stored at p, judged by its extension.
func KindOf(p string) (Kind, bool) {
	lower := strings.ToLower(p)
	for _, ks := range kindSpecs {
		if strings.HasSuffix(lower, ks.ext) && len(p) > len(ks.ext) {
			return ks.kind, true
		}
	}
	return "", false
}

// Extension returns the file extension of kind k.
func Extension(k Kind) string {
	for _, ks := range kindSpecs {
		if ks.kind == k {
			return ks.ext
		}
	}
	return ""
}

// Basename returns the file name of p without its kind extension:
// "page-objects/new file.po.js" → "new file".
func Basename(p string) string {
	base := path.Base(p)
	if k, ok := KindOf(base); ok {
		return base[:len(base)-len(Extension(k))]
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

func isDefinerKind(k Kind) bool {
	return k == KindPageObject || k == KindMockData
}

func isReferencerKind(k Kind) bool {
	return k == KindPageObject || k == KindStepDefinition
}

// Artifact is a named, path-addressed unit of source content.
type Artifact interface {
	Path() string
	Kind() Kind
	Content() []byte
	SetContent(content []byte)
}

// Definer is an artifact other artifacts reference by class name, instance name and path.
// The names are derived from the current path on every call.
type Definer interface {
	Artifact
	ClassName() string
	InstanceName() string
	DisplayName() string
}

// SelfRewriter is a Definer whose own content mentions its class name.
type SelfRewriter interface {
	Definer
	RewriteSelf(ctx context.Context, rw *rewrite.Rewriter, d RenameDelta) error
}

// Referencer is an artifact that requires Definers and names them in its content.
type Referencer interface {
	Artifact
	// RewriteIdentifiers applies the class and instance renames of d.
	RewriteIdentifiers(ctx context.Context, rw *rewrite.Rewriter, d RenameDelta) error
	// RewriteMetadata renames the metadata entry that describes d's artifact.
	RewriteMetadata(ctx context.Context, rw *rewrite.Rewriter, d RenameDelta) error
	// RewriteRequirePaths points requires that resolve to oldTo at newTo instead.
	RewriteRequirePaths(ctx context.Context, rw *rewrite.Rewriter, oldTo, newTo string) error
	// RebaseRequirePaths recomputes relative requires after the artifact itself moved
	// away from oldPath.
	RebaseRequirePaths(ctx context.Context, rw *rewrite.Rewriter, oldPath string) error
	// RequireTargets lists the root-relative Definer paths the content requires.
	RequireTargets(ctx context.Context, rw *rewrite.Rewriter) ([]string, error)
}

// NewArtifact builds the artifact variant matching p's extension.
func NewArtifact(p string, content []byte) (Artifact, error) {
	lower := strings.ToLower(p)
	for _, ks := range kindSpecs {
		if strings.HasSuffix(lower, ks.ext) && len(p) > len(ks.ext) {
			return ks.new(file{path: p, kind: ks.kind, content: content}), nil
		}
	}
	return nil, fmt.Errorf("unsupported file type: %s", p)
}

type file struct {
	path    string
	kind    Kind
	content []byte
}

func (f *file) Path() string              { return f.path }
func (f *file) Kind() Kind                { return f.kind }
func (f *file) Content() []byte           { return f.content }
func (f *file) SetContent(content []byte) { f.content = content }

// PageObjectFile is a page object: a Definer that rewrites its own class name and may
// require other page objects.
type PageObjectFile struct {
	jsFile
}

func (p *PageObjectFile) ClassName() string    { return className(Basename(p.path)) }
func (p *PageObjectFile) InstanceName() string { return instanceName(Basename(p.path)) }
func (p *PageObjectFile) DisplayName() string  { return displayName(Basename(p.path)) }

// RewriteSelf renames the class at its declaration, constructor, prototype chains,
// returns and export, and renames the page object's own metadata.
func (p *PageObjectFile) RewriteSelf(ctx context.Context, rw *rewrite.Rewriter, d RenameDelta) error {
	out, err := rw.Rename(ctx, p.content, rewrite.Rename{
		Category:  rewrite.ClassName,
		Selectors: definerClassSelectors,
		Old:       d.OldClassName,
		New:       d.NewClassName,
	})
	if err != nil {
		return err
	}
	out, err = rw.SetMetadata(ctx, out, func(doc string) (string, error) {
		return renameOwnMetadata(doc, d)
	})
	if err != nil {
		return err
	}
	p.content = out
	return nil
}

// StepDefinitionFile holds step implementations that drive page objects and mock data.
type StepDefinitionFile struct {
	jsFile
}

// MockDataFile is JSON fixture data. Referencers name it, but its own content has no
// identifiers to rewrite.
type MockDataFile struct {
	file
}

func (m *MockDataFile) ClassName() string    { return className(Basename(m.path)) }
func (m *MockDataFile) InstanceName() string { return instanceName(Basename(m.path)) }
func (m *MockDataFile) DisplayName() string  { return displayName(Basename(m.path)) }

// FeatureFile is a Gherkin feature. It neither defines nor references identifiers.
type FeatureFile struct {
	file
}
