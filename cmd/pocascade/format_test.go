package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/ryotapoi/pocascade/internal/core"
)

func TestParseFields(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"  ", nil},
		{"unused", []string{"unused"}},
		{"dangling,unused", []string{"dangling", "unused"}},
		{" page_objects , features ", []string{"page_objects", "features"}},
		{",,,", nil},
	}
	for _, tt := range tests {
		got := parseFields(tt.input)
		if tt.want == nil && got != nil {
			t.Errorf("parseFields(%q) = %v, want nil", tt.input, got)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("parseFields(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseFields(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"json", false},
		{"text", false},
		{"yaml", true},
		{"", true},
	}
	for _, tt := range tests {
		err := validateFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateFields(t *testing.T) {
	cases := []struct {
		name    string
		fields  []string
		valid   map[string]bool
		label   string
		wantErr string // "" means no error
	}{
		{"stats nil", nil, validStatsFieldsCLI, "stats", ""},
		{"stats valid", []string{"page_objects", "targets_total"}, validStatsFieldsCLI, "stats", ""},
		{"stats invalid", []string{"bad"}, validStatsFieldsCLI, "stats", "unknown stats field: bad"},
		{"diagnose valid", []string{"unused"}, validDiagnoseFieldsCLI, "diagnose", ""},
		{"diagnose invalid", []string{"bad"}, validDiagnoseFieldsCLI, "diagnose", "unknown diagnose field: bad"},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFields(tt.fields, tt.valid, tt.label)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			} else {
				if err == nil || err.Error() != tt.wantErr {
					t.Errorf("error = %v, want %q", err, tt.wantErr)
				}
			}
		})
	}
}

func TestPrintBuildText(t *testing.T) {
	var buf bytes.Buffer
	printBuildText(&buf, &core.BuildResult{Artifacts: 5, References: 3})
	if got, want := buf.String(), "artifacts: 5\nreferences: 3\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintMoveText(t *testing.T) {
	var buf bytes.Buffer
	printMoveText(&buf, moveResult{
		From:        "page-objects/file.po.js",
		To:          "page-objects/new-file.po.js",
		Referencers: []string{"page-objects/header.po.js"},
	})
	want := "from: page-objects/file.po.js\n" +
		"to: page-objects/new-file.po.js\n" +
		"referencers:\n" +
		"- page-objects/header.po.js\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintMoveJSON_NoReferencers(t *testing.T) {
	var buf bytes.Buffer
	if err := printMoveJSON(&buf, moveResult{From: "a.po.js", To: "b.po.js"}); err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := m["updated"]; ok {
		t.Error("unexpected updated key")
	}
	refs, ok := m["referencers"].([]any)
	if !ok || len(refs) != 0 {
		t.Errorf("referencers = %v, want empty array", m["referencers"])
	}
	if m["to"] != "b.po.js" {
		t.Errorf("to = %v", m["to"])
	}
}

func TestPrintRefsJSON_Nil(t *testing.T) {
	var buf bytes.Buffer
	if err := printRefsJSON(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "{\n  \"referencers\": []\n}\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintStatsText_Fields(t *testing.T) {
	r := &core.StatsResult{ArtifactsTotal: 5, PageObjects: 2, ReferencesTotal: 3}
	var buf bytes.Buffer
	printStatsText(&buf, r, []string{"references_total", "artifacts_total"})
	if got, want := buf.String(), "artifacts_total: 5\nreferences_total: 3\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintStatsJSON_All(t *testing.T) {
	r := &core.StatsResult{ArtifactsTotal: 5, PageObjects: 2, StepDefinitions: 1, MockData: 1, Features: 1, ReferencesTotal: 3, TargetsTotal: 2}
	var buf bytes.Buffer
	if err := printStatsJSON(&buf, r, nil); err != nil {
		t.Fatal(err)
	}
	var m map[string]int
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(m) != len(validStatsFieldsCLI) {
		t.Errorf("got %d fields, want %d", len(m), len(validStatsFieldsCLI))
	}
	if m["page_objects"] != 2 || m["targets_total"] != 2 {
		t.Errorf("stats = %v", m)
	}
}

func TestPrintDiagnoseText(t *testing.T) {
	r := &core.DiagnoseResult{
		Dangling: []core.DanglingReference{{Target: "mock-data/user.mock.json", Sources: []string{"step-definitions/a.step.js"}}},
		Unused:   []string{"page-objects/header.po.js"},
	}
	var buf bytes.Buffer
	printDiagnoseText(&buf, r, nil)
	want := "dangling:\n" +
		"- target: mock-data/user.mock.json\n" +
		"  sources:\n" +
		"  - step-definitions/a.step.js\n" +
		"unused:\n" +
		"- page-objects/header.po.js\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintDiagnoseJSON_UnusedOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := printDiagnoseJSON(&buf, &core.DiagnoseResult{}, []string{"unused"}); err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := m["dangling"]; ok {
		t.Error("dangling should be omitted")
	}
	if unused, ok := m["unused"].([]any); !ok || len(unused) != 0 {
		t.Errorf("unused = %v, want empty array", m["unused"])
	}
}
