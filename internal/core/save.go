package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Save stores content at p and records the artifacts it requires in the reference graph.
func (e *Engine) Save(ctx context.Context, p string, content []byte) (Artifact, error) {
	clean, err := cleanPath(p)
	if err != nil {
		return nil, err
	}
	a, err := NewArtifact(clean, content)
	if err != nil {
		return nil, err
	}
	var targets []string
	if r, ok := a.(Referencer); ok {
		if targets, err = r.RequireTargets(ctx, e.rw); err != nil {
			return nil, fmt.Errorf("scan %s: %w", clean, err)
		}
	}

	release := e.claims.acquire(append([]string{clean}, targets...)...)
	defer release()

	if err := e.storage.Save(a); err != nil {
		return nil, err
	}
	if err := e.graph.SetReferences(clean, targets); err != nil {
		return nil, fmt.Errorf("update index: %w", err)
	}
	e.log.Info("save", zap.String("path", clean), zap.Strings("requires", targets))
	return a, nil
}
