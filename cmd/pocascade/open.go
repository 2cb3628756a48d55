package main

import (
	"fmt"

	"github.com/ryotapoi/pocascade/internal/core"
)

// openEngine opens the workspace at root. Every command except build needs an index.
func openEngine(root string, requireIndex bool) (*core.Engine, error) {
	if requireIndex && !core.IndexExists(root) {
		return nil, fmt.Errorf("index not found: run 'pocascade build' first")
	}
	cfg, err := core.LoadConfig(root)
	if err != nil {
		return nil, err
	}
	return core.Open(root, cfg, core.WithLogger(logger))
}
