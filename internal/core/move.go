package core

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"slices"
	"sort"
	"strings"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Update describes where an artifact moves to. Path sets the new root-relative path
// (the kind extension is appended when missing); Name sets the new basename inside the
// destination directory. When both are given, Name is applied to Path's directory.
type Update struct {
	Path string
	Name string
}

// Options modifies a delete.
type Options struct {
	// IsMove marks a delete as one step of a move. The referenced-artifact guard is
	// bypassed and the incoming graph entry is kept for the move to rekey.
	IsMove bool
}

// MoveRequest asks the engine to relocate the artifact at Path.
type MoveRequest struct {
	Path    string
	Update  Update
	Options Options
}

// RenameDelta holds the substitution strings of one move. Every rewrite step of the move
// uses the same delta.
type RenameDelta struct {
	Kind    Kind
	OldPath string
	NewPath string

	OldClassName    string
	NewClassName    string
	OldInstanceName string
	NewInstanceName string
	OldDisplayName  string
	NewDisplayName  string
}

// computeDelta derives the names of a definer at from and to. It returns nil for kinds
// that define no names.
func computeDelta(kind Kind, from, to string) (*RenameDelta, error) {
	if !isDefinerKind(kind) {
		return nil, nil
	}
	oldBase, newBase := Basename(from), Basename(to)
	d := &RenameDelta{
		Kind:            kind,
		OldPath:         from,
		NewPath:         to,
		OldClassName:    className(oldBase),
		NewClassName:    className(newBase),
		OldInstanceName: instanceName(oldBase),
		NewInstanceName: instanceName(newBase),
		OldDisplayName:  displayName(oldBase),
		NewDisplayName:  displayName(newBase),
	}
	if err := validateIdentifier(d.NewClassName); err != nil {
		return nil, fmt.Errorf("cannot derive a class name from %s: %w", to, err)
	}
	if err := validateIdentifier(d.NewInstanceName); err != nil {
		return nil, fmt.Errorf("cannot derive an instance name from %s: %w", to, err)
	}
	return d, nil
}

// Destination returns the path a would move to under u.
func Destination(a Artifact, u Update) (string, error) {
	return destination(a.Path(), a.Kind(), u)
}

func destination(from string, kind Kind, u Update) (string, error) {
	ext := Extension(kind)
	to := from
	if u.Path != "" {
		p, err := cleanPath(u.Path)
		if err != nil {
			return "", err
		}
		if _, ok := KindOf(p); !ok {
			p += ext
		}
		to = p
	}
	if u.Name != "" {
		if strings.ContainsAny(u.Name, `/\`) {
			return "", fmt.Errorf("name must not contain a path separator: %s", u.Name)
		}
		name := u.Name
		if !strings.HasSuffix(strings.ToLower(name), ext) {
			name += ext
		}
		to = path.Join(path.Dir(to), name)
	}
	if k, ok := KindOf(to); !ok || k != kind {
		return "", fmt.Errorf("cannot change artifact kind: %s to %s", from, to)
	}
	if to == from {
		return "", fmt.Errorf("source and destination are the same: %s", from)
	}
	return to, nil
}

// Move relocates the artifact at req.Path and propagates the change to every artifact
// that references it. The moved artifact is returned.
//
// Errors from the relocation itself are returned unchanged. When any referencer cannot
// be rewritten or saved, the move fails with *CascadeUpdateError after every referencer
// has been attempted; referencers already saved are not rolled back and the reference
// graph keeps the old path.
func (e *Engine) Move(ctx context.Context, req MoveRequest) (Artifact, error) {
	// Once started, a move runs to completion.
	ctx = context.WithoutCancel(ctx)

	from, err := cleanPath(req.Path)
	if err != nil {
		return nil, err
	}
	kind, ok := KindOf(from)
	if !ok {
		return nil, fmt.Errorf("unsupported file type: %s", from)
	}
	to, err := destination(from, kind, req.Update)
	if err != nil {
		return nil, err
	}
	delta, err := computeDelta(kind, from, to)
	if err != nil {
		return nil, err
	}

	refs, release := e.claimMove(from, to)
	defer release()

	log := e.log.With(zap.String("from", from), zap.String("to", to))
	log.Info("move", zap.Int("referencers", len(refs)))

	a, err := e.storage.Read(from)
	if err != nil {
		return nil, err
	}
	moved, err := e.storage.Move(a, req.Update)
	if err != nil {
		return nil, err
	}

	if err := e.rewriteMoved(ctx, moved, from, delta); err != nil {
		return nil, fmt.Errorf("rewrite %s: %w", moved.Path(), err)
	}

	if err := e.cascade(ctx, log, refs, from, to, delta); err != nil {
		return nil, err
	}

	if err := e.graph.Rekey(from, to); err != nil {
		return nil, fmt.Errorf("update index: %w", err)
	}
	if err := e.graph.RekeySource(from, to); err != nil {
		return nil, fmt.Errorf("update index: %w", err)
	}
	return moved, nil
}

// claimMove claims from, to and the current referencers of from. The referencer set is
// re-read under the claim and the claim retried until it is stable.
func (e *Engine) claimMove(from, to string) ([]string, func()) {
	refs := without(e.graph.ReferencersOf(from), from)
	for {
		release := e.claims.acquire(append([]string{from, to}, refs...)...)
		now := without(e.graph.ReferencersOf(from), from)
		if slices.Equal(now, refs) {
			return refs, release
		}
		release()
		refs = now
	}
}

// rewriteMoved applies the self rename and, if the directory changed, rebases the moved
// artifact's own require paths. The artifact is saved once if anything changed.
func (e *Engine) rewriteMoved(ctx context.Context, moved Artifact, from string, d *RenameDelta) error {
	before := moved.Content()
	if sr, ok := moved.(SelfRewriter); ok && d != nil {
		if err := sr.RewriteSelf(ctx, e.rw, *d); err != nil {
			return err
		}
	}
	if r, ok := moved.(Referencer); ok && path.Dir(from) != path.Dir(moved.Path()) {
		if err := r.RebaseRequirePaths(ctx, e.rw, from); err != nil {
			return err
		}
	}
	if bytes.Equal(before, moved.Content()) {
		return nil
	}
	return e.storage.Save(moved)
}

// cascade updates every referencer concurrently and waits for all of them.
func (e *Engine) cascade(ctx context.Context, log *zap.Logger, refs []string, from, to string, d *RenameDelta) error {
	var (
		mu     sync.Mutex
		errs   error
		failed []string
	)
	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for _, ref := range refs {
		ref := ref
		g.Go(func() error {
			err := e.updateReferencer(ctx, ref, from, to, d)
			if err != nil {
				log.Warn("referencer update failed", zap.String("referencer", ref), zap.Error(err))
				mu.Lock()
				failed = append(failed, ref)
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", ref, err))
				mu.Unlock()
				return nil
			}
			log.Debug("referencer updated", zap.String("referencer", ref))
			return nil
		})
	}
	_ = g.Wait()

	if len(failed) == 0 {
		return nil
	}
	sort.Strings(failed)
	return &CascadeUpdateError{Path: from, Failed: failed, Err: errs}
}
