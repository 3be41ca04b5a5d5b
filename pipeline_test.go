package xsettings_test

import (
	"errors"
	"testing"

	"github.com/sxwebdev/xsettings"
	"github.com/sxwebdev/xsettings/flat"
	"github.com/sxwebdev/xsettings/plugins"
)

type BadPlugin interface {
	plugins.Plugin

	NotWalkerOrVisitor()
}

func TestBadPlug(t *testing.T) {
	var badPlugin BadPlugin

	config := planner{}

	_, err := xsettings.Custom(&config, badPlugin)

	if err == nil {
		t.Fatal("expected error for bad plugin, got nil")
	}

	if !errors.Is(err, plugins.ErrUnsupported) {
		t.Errorf("expected unsupported plugin error, got: %v", err)
	}
}

type FailingPluginWalker struct {
	plugins.Plugin
}

func (fp FailingPluginWalker) Walk(any) error {
	return errors.New("failed to walk")
}

func TestFailingPlugWalker(t *testing.T) {
	var failingPluginWalker FailingPluginWalker

	config := planner{}

	_, err := xsettings.Custom(&config, failingPluginWalker)

	if err == nil {
		t.Fatal("expected error for bad plugin, got nil")
	}

	if err.Error() != "failed to walk" {
		t.Errorf("Expected failed to walk, got: %v", err)
	}
}

type FailingPluginVisitor struct {
	plugins.Plugin
}

func (fp FailingPluginVisitor) Visit(flat.Fields) error {
	return errors.New("failed to visit")
}

func TestFailingPlugVisitor(t *testing.T) {
	var failingPluginVisitor FailingPluginVisitor

	config := planner{}

	_, err := xsettings.Custom(&config, failingPluginVisitor)

	if err == nil {
		t.Fatal("expected error for bad plugin, got nil")
	}

	if err.Error() != "failed to visit" {
		t.Errorf("Expected failed to visit, got: %v", err)
	}
}

func TestCustomNotPointer(t *testing.T) {
	if _, err := xsettings.Custom(planner{}); !errors.Is(err, flat.ErrUnexpectedType) {
		t.Errorf("expected ErrUnexpectedType, got: %v", err)
	}
}
