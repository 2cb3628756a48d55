package core

import (
	"context"
	"fmt"
)

// StatsOptions controls which fields to return.
type StatsOptions struct {
	Fields []string // nil/empty = all
}

// StatsResult contains workspace statistics.
type StatsResult struct {
	ArtifactsTotal  int
	PageObjects     int
	StepDefinitions int
	MockData        int
	Features        int
	ReferencesTotal int
	TargetsTotal    int
}

var validStatsFields = map[string]bool{
	"artifacts_total":  true,
	"page_objects":     true,
	"step_definitions": true,
	"mock_data":        true,
	"features":         true,
	"references_total": true,
	"targets_total":    true,
}

func validateStatsFields(fields []string) error {
	for _, f := range fields {
		if !validStatsFields[f] {
			return fmt.Errorf("unknown stats field: %s", f)
		}
	}
	return nil
}

// Stats returns aggregate statistics for the workspace and its reference graph.
func (e *Engine) Stats(ctx context.Context, opts StatsOptions) (*StatsResult, error) {
	if err := validateStatsFields(opts.Fields); err != nil {
		return nil, err
	}
	result := &StatsResult{}

	if needsListing(opts.Fields) {
		lister, ok := e.storage.(Lister)
		if !ok {
			return nil, fmt.Errorf("storage cannot list artifacts")
		}
		paths, err := lister.List()
		if err != nil {
			return nil, err
		}
		counts := make(map[Kind]int)
		for _, p := range paths {
			k, _ := KindOf(p)
			counts[k]++
		}
		if isFieldActive("artifacts_total", opts.Fields) {
			result.ArtifactsTotal = len(paths)
		}
		if isFieldActive("page_objects", opts.Fields) {
			result.PageObjects = counts[KindPageObject]
		}
		if isFieldActive("step_definitions", opts.Fields) {
			result.StepDefinitions = counts[KindStepDefinition]
		}
		if isFieldActive("mock_data", opts.Fields) {
			result.MockData = counts[KindMockData]
		}
		if isFieldActive("features", opts.Fields) {
			result.Features = counts[KindFeature]
		}
	}

	edges := e.graph.Edges()
	if isFieldActive("references_total", opts.Fields) {
		result.ReferencesTotal = len(edges)
	}
	if isFieldActive("targets_total", opts.Fields) {
		targets := make(map[string]bool)
		for _, edge := range edges {
			targets[edge.Target] = true
		}
		result.TargetsTotal = len(targets)
	}
	return result, nil
}

func needsListing(fields []string) bool {
	for _, f := range []string{"artifacts_total", "page_objects", "step_definitions", "mock_data", "features"} {
		if isFieldActive(f, fields) {
			return true
		}
	}
	return false
}

// isFieldActive returns true if the field is requested (or if fields is empty, meaning all).
func isFieldActive(field string, fields []string) bool {
	if len(fields) == 0 {
		return true
	}
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}
