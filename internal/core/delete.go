package core

import (
	"context"

	"go.uber.org/zap"
)

// Delete removes the artifact at p. A delete that is not part of a move fails with
// *ReferencedArtifactError while other artifacts still reference p, and nothing is
// changed.
func (e *Engine) Delete(ctx context.Context, p string, opts Options) error {
	return e.DeleteAll(ctx, []string{p}, opts)
}

// DeleteAll removes every artifact in paths as one batch. References between members
// of the batch do not block the delete, so the order of paths does not matter. The
// whole batch is validated before anything is removed.
func (e *Engine) DeleteAll(ctx context.Context, paths []string, opts Options) error {
	batch := make(map[string]bool, len(paths))
	var cleaned []string
	for _, p := range paths {
		clean, err := cleanPath(p)
		if err != nil {
			return err
		}
		if !batch[clean] {
			batch[clean] = true
			cleaned = append(cleaned, clean)
		}
	}
	release := e.claims.acquire(cleaned...)
	defer release()

	if !opts.IsMove {
		for _, p := range cleaned {
			var outside []string
			for _, ref := range e.graph.ReferencersOf(p) {
				if !batch[ref] {
					outside = append(outside, ref)
				}
			}
			if len(outside) > 0 {
				return &ReferencedArtifactError{Path: p, Referencers: outside}
			}
		}
	}

	artifacts := make([]Artifact, len(cleaned))
	for i, p := range cleaned {
		a, err := e.storage.Read(p)
		if err != nil {
			return err
		}
		artifacts[i] = a
	}

	for _, a := range artifacts {
		if err := e.deleteOne(a, opts); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) deleteOne(a Artifact, opts Options) error {
	if err := e.storage.Delete(a); err != nil {
		return err
	}
	e.log.Info("delete", zap.String("path", a.Path()), zap.Bool("is_move", opts.IsMove))

	if opts.IsMove {
		// The enclosing move rekeys the incoming entry.
		return e.graph.RemoveSource(a.Path())
	}
	return e.graph.Remove(a.Path())
}
