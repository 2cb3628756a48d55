package core

import (
	"context"
	"sort"

	"github.com/ryotapoi/pocascade/internal/rewrite"
)

// jsFile implements the Referencer capabilities shared by JavaScript artifacts.
type jsFile struct {
	file
}

func (f *jsFile) RewriteIdentifiers(ctx context.Context, rw *rewrite.Rewriter, d RenameDelta) error {
	out, err := rw.Rename(ctx, f.content, rewrite.Rename{
		Category:  rewrite.ClassName,
		Selectors: referencerClassSelectors,
		Old:       d.OldClassName,
		New:       d.NewClassName,
	})
	if err != nil {
		return err
	}
	out, err = rw.Rename(ctx, out, rewrite.Rename{
		Category:  rewrite.InstanceName,
		Selectors: instanceSelectors(d.Kind),
		Old:       d.OldInstanceName,
		New:       d.NewInstanceName,
	})
	if err != nil {
		return err
	}
	f.content = out
	return nil
}

func (f *jsFile) RewriteMetadata(ctx context.Context, rw *rewrite.Rewriter, d RenameDelta) error {
	out, err := rw.SetMetadata(ctx, f.content, func(doc string) (string, error) {
		return renameMetadataEntry(doc, d)
	})
	if err != nil {
		return err
	}
	f.content = out
	return nil
}

func (f *jsFile) RewriteRequirePaths(ctx context.Context, rw *rewrite.Rewriter, oldTo, newTo string) error {
	out, err := rw.RewriteRequires(ctx, f.content, func(value string) (string, bool) {
		target, ok := resolveRequire(f.path, value)
		if !ok || target != oldTo {
			return "", false
		}
		return relativeRequire(f.path, newTo, value), true
	})
	if err != nil {
		return err
	}
	f.content = out
	return nil
}

func (f *jsFile) RebaseRequirePaths(ctx context.Context, rw *rewrite.Rewriter, oldPath string) error {
	out, err := rw.RewriteRequires(ctx, f.content, func(value string) (string, bool) {
		target, ok := resolveRequire(oldPath, value)
		if !ok || target == oldPath {
			return "", false
		}
		return relativeRequire(f.path, target, value), true
	})
	if err != nil {
		return err
	}
	f.content = out
	return nil
}

func (f *jsFile) RequireTargets(ctx context.Context, rw *rewrite.Rewriter) ([]string, error) {
	reqs, err := rw.Requires(ctx, f.content)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var targets []string
	for _, req := range reqs {
		target, ok := resolveRequire(f.path, req.Value)
		if !ok || target == f.path || seen[target] {
			continue
		}
		if k, _ := KindOf(target); !isDefinerKind(k) {
			continue
		}
		seen[target] = true
		targets = append(targets, target)
	}
	sort.Strings(targets)
	return targets, nil
}
