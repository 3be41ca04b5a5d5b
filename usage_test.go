package xsettings_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sxwebdev/xsettings"
	"github.com/sxwebdev/xsettings/flat"
	"github.com/sxwebdev/xsettings/plugins"
)

func usageLine(field, value, env, def, usage string) string {
	return fmt.Sprintf("%-28s%-10s%-36s%-11s%s\n", field, value, env, def, usage)
}

type UselessPluginVisitor struct {
	plugins.Plugin
}

func (*UselessPluginVisitor) Parse() error { return nil }

func (*UselessPluginVisitor) Visit(fields flat.Fields) error {
	for _, f := range fields {
		f.Meta()["goodplugin"] = f.Name()
	}
	return nil
}

func TestUsage(t *testing.T) {
	value := newPlanner()

	output, err := xsettings.Usage(&value, xsettings.WithEnvPrefix("planner"))
	if err != nil {
		t.Fatal(err)
	}

	expected := "\nUser Configurable Fields:\n" +
		usageLine("FIELD", "VALUE", "ENV", "DEFAULT", "USAGE") +
		usageLine("-----", "-----", "-----", "-------", "-----") +
		usageLine("model", "gpt-4o", "PLANNER_MODEL", "", "model name") +
		usageLine("strategy", "greedy", "PLANNER_STRATEGY", "", "") +
		usageLine("budget.max_tokens", "1024", "PLANNER_BUDGET_MAX_TOKENS", "1024", "token budget per step") +
		usageLine("agents.critic.max_tokens", "256", "PLANNER_AGENTS_CRITIC_MAX_TOKENS", "1024", "token budget per step")

	if diff := cmp.Diff(expected, output); diff != "" {
		t.Error(diff)
	}
}

func TestUsageWithoutEnv(t *testing.T) {
	output, err := xsettings.Usage(newPlanner())
	if err != nil {
		t.Fatal(err)
	}

	if strings.Contains(output, "ENV") {
		t.Errorf("expected no env column without an env prefix, got:\n%s", output)
	}

	for _, name := range []string{"name", "description", "retries", "budget.hard"} {
		for _, line := range strings.Split(output, "\n") {
			if strings.HasPrefix(line, name+" ") {
				t.Errorf("field %s is not user configurable but is listed", name)
			}
		}
	}
}

func TestUsageCustomPlugin(t *testing.T) {
	value := newPlanner()

	output, err := xsettings.Usage(&value, xsettings.WithPlugins(&UselessPluginVisitor{}))
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(output, "GOODPLUGIN") {
		t.Errorf("expected plugin metadata column, got:\n%s", output)
	}
}

func TestUsageUnexpectedType(t *testing.T) {
	if _, err := xsettings.Usage(42); err == nil {
		t.Fatal("expected error for non struct value")
	}
}
