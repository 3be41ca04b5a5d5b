package xsettings_test

import (
	"strings"
	"testing"

	"github.com/sxwebdev/xsettings"
)

func TestGenerateMarkdown(t *testing.T) {
	cfg := newPlanner()

	output, err := xsettings.GenerateMarkdown(&cfg, xsettings.WithEnvPrefix("planner"))
	if err != nil {
		t.Fatalf("GenerateMarkdown returned error: %v", err)
	}

	lines := strings.Split(output, "\n")
	// header, separator and one row per user configurable field
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), output)
	}

	if !strings.Contains(lines[0], "**Env**") {
		t.Errorf("expected env column, got: %s", lines[0])
	}

	expected := []string{
		"`model`", "`PLANNER_MODEL`", "`gpt-4o`", "model name", "`gpt-4o`",
		"`strategy`", "`greedy`",
		"`budget.max_tokens`", "`PLANNER_BUDGET_MAX_TOKENS`", "`1024`", "token budget per step",
		"`agents.critic.max_tokens`", "`256`",
	}
	for _, s := range expected {
		if !strings.Contains(output, s) {
			t.Errorf("expected output to contain %s, got: %s", s, output)
		}
	}

	if !strings.Contains(lines[2], "✅") {
		t.Errorf("expected model to be marked required, got: %s", lines[2])
	}

	for _, s := range []string{"`retries`", "`budget.hard`", "`name`", "plans agent steps"} {
		if strings.Contains(output, s) {
			t.Errorf("expected output to NOT contain %s, got: %s", s, output)
		}
	}
}

func TestGenerateMarkdownWithoutEnv(t *testing.T) {
	output, err := xsettings.GenerateMarkdown(newPlanner())
	if err != nil {
		t.Fatalf("GenerateMarkdown returned error: %v", err)
	}

	if strings.Contains(output, "**Env**") {
		t.Errorf("expected no env column, got: %s", output)
	}

	if !strings.HasPrefix(output, "| **Name**") {
		t.Errorf("unexpected table header: %s", output)
	}
}
