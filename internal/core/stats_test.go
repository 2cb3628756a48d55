package core

import (
	"context"
	"strings"
	"testing"
)

func TestStats_All(t *testing.T) {
	_, e := openWorkspace(t, "workspace_basic")
	s, err := e.Stats(context.Background(), StatsOptions{})
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := StatsResult{
		ArtifactsTotal:  5,
		PageObjects:     2,
		StepDefinitions: 1,
		MockData:        1,
		Features:        1,
		ReferencesTotal: 3,
		TargetsTotal:    2,
	}
	if *s != want {
		t.Errorf("stats = %+v, want %+v", *s, want)
	}
}

func TestStats_Fields(t *testing.T) {
	_, e := openWorkspace(t, "workspace_basic")
	s, err := e.Stats(context.Background(), StatsOptions{Fields: []string{"references_total"}})
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if s.ReferencesTotal != 3 {
		t.Errorf("references_total = %d", s.ReferencesTotal)
	}
	if s.ArtifactsTotal != 0 || s.PageObjects != 0 {
		t.Errorf("inactive fields should be zero: %+v", *s)
	}
}

func TestStats_UnknownField(t *testing.T) {
	_, e := openWorkspace(t, "workspace_basic")
	_, err := e.Stats(context.Background(), StatsOptions{Fields: []string{"bogus"}})
	if err == nil || !strings.Contains(err.Error(), "unknown stats field") {
		t.Errorf("expected unknown field error, got %v", err)
	}
}
