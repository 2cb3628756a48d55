package core

import (
	"context"
	"fmt"
	"sort"
)

// DiagnoseOptions controls which fields to return.
type DiagnoseOptions struct {
	Fields []string // nil/empty = all
}

// DanglingReference is a require whose target artifact no longer exists.
type DanglingReference struct {
	Target  string
	Sources []string // sorted
}

// DiagnoseResult contains diagnostic information about the workspace.
type DiagnoseResult struct {
	Dangling []DanglingReference // sorted by target
	Unused   []string            // page objects and mock data nothing references, sorted
}

var validDiagnoseFields = map[string]bool{
	"dangling": true,
	"unused":   true,
}

// Diagnose reports references to missing artifacts and definers nothing references.
func (e *Engine) Diagnose(ctx context.Context, opts DiagnoseOptions) (*DiagnoseResult, error) {
	for _, f := range opts.Fields {
		if !validDiagnoseFields[f] {
			return nil, fmt.Errorf("unknown diagnose field: %s", f)
		}
	}
	lister, ok := e.storage.(Lister)
	if !ok {
		return nil, fmt.Errorf("storage cannot list artifacts")
	}
	paths, err := lister.List()
	if err != nil {
		return nil, err
	}
	exists := make(map[string]bool, len(paths))
	for _, p := range paths {
		exists[p] = true
	}

	result := &DiagnoseResult{}
	edges := e.graph.Edges()

	if isFieldActive("dangling", opts.Fields) {
		byTarget := make(map[string][]string)
		for _, edge := range edges {
			if !exists[edge.Target] {
				byTarget[edge.Target] = append(byTarget[edge.Target], edge.Source)
			}
		}
		for target, sources := range byTarget {
			sort.Strings(sources)
			result.Dangling = append(result.Dangling, DanglingReference{Target: target, Sources: sources})
		}
		sort.Slice(result.Dangling, func(i, j int) bool {
			return result.Dangling[i].Target < result.Dangling[j].Target
		})
	}

	if isFieldActive("unused", opts.Fields) {
		referenced := make(map[string]bool)
		for _, edge := range edges {
			if edge.Source != edge.Target {
				referenced[edge.Target] = true
			}
		}
		for _, p := range paths {
			k, _ := KindOf(p)
			if isDefinerKind(k) && !referenced[p] {
				result.Unused = append(result.Unused, p)
			}
		}
	}
	return result, nil
}
