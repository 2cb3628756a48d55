package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BuildResult summarizes a rebuilt reference graph.
type BuildResult struct {
	Artifacts  int
	References int
}

// Build scans every artifact in storage and replaces the reference graph with the
// requires found in their content.
func (e *Engine) Build(ctx context.Context) (*BuildResult, error) {
	lister, ok := e.storage.(Lister)
	if !ok {
		return nil, fmt.Errorf("storage cannot list artifacts")
	}
	paths, err := lister.List()
	if err != nil {
		return nil, err
	}

	release := e.claims.acquire(paths...)
	defer release()

	targets := make([][]string, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			a, err := e.storage.Read(p)
			if err != nil {
				return err
			}
			r, ok := a.(Referencer)
			if !ok {
				return nil
			}
			t, err := r.RequireTargets(gctx, e.rw)
			if err != nil {
				return fmt.Errorf("scan %s: %w", p, err)
			}
			targets[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var edges []Edge
	for i, p := range paths {
		for _, t := range targets[i] {
			edges = append(edges, Edge{Target: t, Source: p})
		}
	}
	if err := e.graph.Reset(edges); err != nil {
		return nil, fmt.Errorf("update index: %w", err)
	}
	e.log.Info("build", zap.Int("artifacts", len(paths)), zap.Int("references", len(edges)))
	return &BuildResult{Artifacts: len(paths), References: len(edges)}, nil
}
