package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ryotapoi/pocascade/internal/core"
)

// parseFields splits a comma-separated field string into a slice.
// Returns nil for empty input.
func parseFields(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// validateFormat checks that format is "json" or "text".
func validateFormat(format string) error {
	if format != "json" && format != "text" {
		return fmt.Errorf("invalid format: %q (must be json or text)", format)
	}
	return nil
}

// validateFields checks that all fields are in the valid set.
// name is used in the error message (e.g. "stats", "diagnose").
func validateFields(fields []string, valid map[string]bool, name string) error {
	for _, f := range fields {
		if !valid[f] {
			return fmt.Errorf("unknown %s field: %s", name, f)
		}
	}
	return nil
}

// fieldSet returns a set of fields to show. If fields is nil/empty, all valid fields are shown.
func fieldSet(fields []string, valid map[string]bool) map[string]bool {
	if len(fields) == 0 {
		all := make(map[string]bool)
		for k := range valid {
			all[k] = true
		}
		return all
	}
	m := make(map[string]bool, len(fields))
	for _, f := range fields {
		m[f] = true
	}
	return m
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// --- Build output ---

func printBuildJSON(w io.Writer, r *core.BuildResult) error {
	return writeJSON(w, map[string]int{
		"artifacts":  r.Artifacts,
		"references": r.References,
	})
}

func printBuildText(w io.Writer, r *core.BuildResult) error {
	fmt.Fprintf(w, "artifacts: %d\n", r.Artifacts)
	fmt.Fprintf(w, "references: %d\n", r.References)
	return nil
}

// --- Move output ---

// moveResult reports a finished move and every artifact that now references its new path.
type moveResult struct {
	From        string   `json:"from"`
	To          string   `json:"to"`
	Referencers []string `json:"referencers"`
}

func printMoveJSON(w io.Writer, r moveResult) error {
	r.Referencers = nonNil(r.Referencers)
	return writeJSON(w, r)
}

func printMoveText(w io.Writer, r moveResult) error {
	fmt.Fprintf(w, "from: %s\n", r.From)
	fmt.Fprintf(w, "to: %s\n", r.To)
	fmt.Fprintln(w, "referencers:")
	for _, p := range r.Referencers {
		fmt.Fprintf(w, "- %s\n", p)
	}
	return nil
}

// --- Refs output ---

func printRefsJSON(w io.Writer, refs []string) error {
	return writeJSON(w, map[string][]string{"referencers": nonNil(refs)})
}

func printRefsText(w io.Writer, refs []string) error {
	for _, p := range refs {
		fmt.Fprintln(w, p)
	}
	return nil
}

// --- Stats output ---

var validStatsFieldsCLI = map[string]bool{
	"artifacts_total":  true,
	"page_objects":     true,
	"step_definitions": true,
	"mock_data":        true,
	"features":         true,
	"references_total": true,
	"targets_total":    true,
}

type statsField struct {
	name  string
	value int
}

// statsFields lists the selected fields in display order.
func statsFields(r *core.StatsResult, fields []string) []statsField {
	show := fieldSet(fields, validStatsFieldsCLI)
	all := []statsField{
		{"artifacts_total", r.ArtifactsTotal},
		{"page_objects", r.PageObjects},
		{"step_definitions", r.StepDefinitions},
		{"mock_data", r.MockData},
		{"features", r.Features},
		{"references_total", r.ReferencesTotal},
		{"targets_total", r.TargetsTotal},
	}
	out := all[:0]
	for _, f := range all {
		if show[f.name] {
			out = append(out, f)
		}
	}
	return out
}

func printStatsJSON(w io.Writer, r *core.StatsResult, fields []string) error {
	m := make(map[string]int)
	for _, f := range statsFields(r, fields) {
		m[f.name] = f.value
	}
	return writeJSON(w, m)
}

func printStatsText(w io.Writer, r *core.StatsResult, fields []string) error {
	for _, f := range statsFields(r, fields) {
		fmt.Fprintf(w, "%s: %d\n", f.name, f.value)
	}
	return nil
}

// --- Diagnose output ---

var validDiagnoseFieldsCLI = map[string]bool{
	"dangling": true,
	"unused":   true,
}

type diagnoseJSONDangling struct {
	Target  string   `json:"target"`
	Sources []string `json:"sources"`
}

func printDiagnoseJSON(w io.Writer, r *core.DiagnoseResult, fields []string) error {
	show := fieldSet(fields, validDiagnoseFieldsCLI)
	m := make(map[string]any)
	if show["dangling"] {
		dangling := make([]diagnoseJSONDangling, len(r.Dangling))
		for i, d := range r.Dangling {
			dangling[i] = diagnoseJSONDangling{Target: d.Target, Sources: nonNil(d.Sources)}
		}
		m["dangling"] = dangling
	}
	if show["unused"] {
		m["unused"] = nonNil(r.Unused)
	}
	return writeJSON(w, m)
}

func printDiagnoseText(w io.Writer, r *core.DiagnoseResult, fields []string) error {
	show := fieldSet(fields, validDiagnoseFieldsCLI)
	if show["dangling"] {
		fmt.Fprintln(w, "dangling:")
		for _, d := range r.Dangling {
			fmt.Fprintf(w, "- target: %s\n", d.Target)
			fmt.Fprintln(w, "  sources:")
			for _, s := range d.Sources {
				fmt.Fprintf(w, "  - %s\n", s)
			}
		}
	}
	if show["unused"] {
		fmt.Fprintln(w, "unused:")
		for _, p := range r.Unused {
			fmt.Fprintf(w, "- %s\n", p)
		}
	}
	return nil
}
