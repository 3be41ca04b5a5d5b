package loader_test

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sxwebdev/xsettings/decoders/xsettingsjson"
	"github.com/sxwebdev/xsettings/decoders/xsettingsyaml"
	"github.com/sxwebdev/xsettings/loader"
)

func newLoader(t *testing.T) *loader.Loader {
	t.Helper()

	l, err := loader.NewLoader(map[string]loader.Unmarshal{
		".json": xsettingsjson.New().Unmarshal,
	})
	if err != nil {
		t.Fatalf("failed to create loader: %v", err)
	}

	if err := l.Use(xsettingsyaml.New(), "yml"); err != nil {
		t.Fatalf("failed to register yaml decoder: %v", err)
	}

	return l
}

func TestOverrides(t *testing.T) {
	l := newLoader(t)

	err := l.AddFiles([]string{
		"testdata/planner.json",
		"testdata/planner.yaml",
		"testdata/empty.yaml",
	}, false)
	if err != nil {
		t.Fatalf("failed to add files: %v", err)
	}

	if err := l.AddFile("testdata/missing.json", true); err != nil {
		t.Fatalf("failed to add file: %v", err)
	}

	got, err := l.Overrides()
	if err != nil {
		t.Fatalf("failed to read overrides: %v", err)
	}

	expect := map[string]any{
		"model":    "local",
		"strategy": "beam",
		"budget":   map[string]any{"max_tokens": float64(2048)},
	}

	if diff := cmp.Diff(expect, got); diff != "" {
		t.Error(diff)
	}
}

func TestOverridesNested(t *testing.T) {
	l := newLoader(t)

	if err := l.AddFile("testdata/tools.yml", false); err != nil {
		t.Fatalf("failed to add file: %v", err)
	}

	got, err := l.Overrides()
	if err != nil {
		t.Fatalf("failed to read overrides: %v", err)
	}

	tools, ok := got["tools"].([]any)
	if !ok || len(tools) != 2 {
		t.Fatalf("expected two tools, got %#v", got["tools"])
	}

	agents, ok := got["agents"].(map[string]any)
	if !ok {
		t.Fatalf("expected agents mapping, got %T", got["agents"])
	}

	if _, ok := agents["critic"].(map[string]any); !ok {
		t.Errorf("expected critic mapping, got %T", agents["critic"])
	}
}

func TestOverridesMissingFile(t *testing.T) {
	l := newLoader(t)

	if err := l.AddFile("testdata/missing.json", false); err != nil {
		t.Fatalf("failed to add file: %v", err)
	}

	if _, err := l.Overrides(); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not exist error, got %v", err)
	}
}

func TestOverridesBrokenFile(t *testing.T) {
	l := newLoader(t)

	if err := l.AddFile("testdata/broken.json", false); err != nil {
		t.Fatalf("failed to add file: %v", err)
	}

	_, err := l.Overrides()
	if err == nil {
		t.Fatal("expected decode error")
	}

	if !strings.Contains(err.Error(), "testdata/broken.json") {
		t.Errorf("expected error to name the file, got %v", err)
	}
}

func TestAddFileUnknownFormat(t *testing.T) {
	l := newLoader(t)

	if err := l.AddFile("settings.toml", false); err == nil {
		t.Error("expected error for unregistered format")
	}

	if err := l.AddFile("", false); err != nil {
		t.Errorf("empty path should be ignored, got %v", err)
	}

	if n := len(l.Files()); n != 0 {
		t.Errorf("expected no files, got %d", n)
	}
}

func TestRegisterDecoder(t *testing.T) {
	l := newLoader(t)

	if err := l.RegisterDecoder("json", xsettingsjson.New().Unmarshal); err == nil {
		t.Error("expected error for duplicate format")
	}

	if err := l.RegisterDecoder("", xsettingsjson.New().Unmarshal); err == nil {
		t.Error("expected error for empty format")
	}

	if err := l.RegisterDecoder("txt", nil); err == nil {
		t.Error("expected error for nil decoder")
	}
}

func TestReadOverrides(t *testing.T) {
	got, err := loader.ReadOverrides(strings.NewReader(`{"retries": 5}`), xsettingsjson.New().Unmarshal)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(map[string]any{"retries": float64(5)}, got); diff != "" {
		t.Error(diff)
	}

	got, err = loader.ReadOverrides(strings.NewReader("  \n"), xsettingsyaml.New().Unmarshal)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 0 {
		t.Errorf("expected empty overrides, got %v", got)
	}

	if _, err := loader.ReadOverrides(strings.NewReader(`[1, 2]`), xsettingsjson.New().Unmarshal); err == nil {
		t.Error("expected error for a non mapping document")
	}
}
