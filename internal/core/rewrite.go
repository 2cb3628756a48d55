package core

import (
	"bytes"
	"context"
	"fmt"
)

// updateReferencer rewrites the referencer at p for a move from → to and saves it once.
// Class and instance names and metadata are only rewritten when d is set.
func (e *Engine) updateReferencer(ctx context.Context, p, from, to string, d *RenameDelta) error {
	a, err := e.storage.Read(p)
	if err != nil {
		return err
	}
	r, ok := a.(Referencer)
	if !ok {
		return fmt.Errorf("%s cannot reference other artifacts", p)
	}
	before := a.Content()

	if d != nil {
		if err := r.RewriteIdentifiers(ctx, e.rw, *d); err != nil {
			return err
		}
		if err := r.RewriteMetadata(ctx, e.rw, *d); err != nil {
			return err
		}
	}
	if err := r.RewriteRequirePaths(ctx, e.rw, from, to); err != nil {
		return err
	}

	if bytes.Equal(before, a.Content()) {
		return nil
	}
	return e.storage.Save(a)
}
