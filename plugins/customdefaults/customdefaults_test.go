package customdefaults_test

import (
	"testing"

	"github.com/sxwebdev/xsettings"
	"github.com/sxwebdev/xsettings/plugins/customdefaults"
)

type fDefaults struct {
	Field string
	Kept  string
}

func (f *fDefaults) SetDefaults() {
	f.Field = "default"
}

func TestCustomDefaultTag(t *testing.T) {
	in := fDefaults{Kept: "kept"}

	conf, err := xsettings.Custom(&in, customdefaults.New())
	if err != nil {
		t.Fatal(err)
	}

	err = conf.Parse()
	if err != nil {
		t.Fatal(err)
	}

	if in.Field != "default" {
		t.Errorf("expected default but got %v", in.Field)
	}

	if in.Kept != "kept" {
		t.Errorf("expected kept but got %v", in.Kept)
	}
}
