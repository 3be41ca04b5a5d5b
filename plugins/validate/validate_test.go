package validate_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sxwebdev/xsettings"
	"github.com/sxwebdev/xsettings/plugins/validate"
)

type nestedStruct struct {
	Str string `json:"str"`
}

// Validate
func (n nestedStruct) Validate() error {
	if n.Str == "" {
		return fmt.Errorf("nested struct is empty")
	}
	return nil
}

type fDefaults struct {
	Address string        `json:"address" validate:"omitempty,url"`
	Bases   []string      `json:"bases"`
	Timeout time.Duration `json:"timeout" validate:"gte=0"`
	Ignored string        `json:"ignored"`
	Nested  nestedStruct  `json:"nested"`
	Budget  struct {
		MaxTokens int `json:"max_tokens" validate:"gte=1"`
	} `json:"budget"`
}

// Validate
func (f fDefaults) Validate() error {
	if f.Ignored == "" {
		return fmt.Errorf("ignored field is empty")
	}
	return nil
}

func TestValidate(t *testing.T) {
	valid := func() fDefaults {
		f := fDefaults{
			Ignored: "not empty",
			Nested: nestedStruct{
				Str: "not empty",
			},
		}
		f.Budget.MaxTokens = 10
		return f
	}

	tests := []struct {
		name        string
		in          func() fDefaults
		expectedErr string
	}{
		{
			name: "validate method on root",
			in: func() fDefaults {
				f := valid()
				f.Ignored = ""
				return f
			},
			expectedErr: "ignored field is empty",
		},
		{
			name: "validate method on field",
			in: func() fDefaults {
				f := valid()
				f.Nested.Str = ""
				return f
			},
			expectedErr: "nested struct is empty",
		},
		{
			name: "validate tag reported by key path",
			in: func() fDefaults {
				f := valid()
				f.Budget.MaxTokens = 0
				return f
			},
			expectedErr: "budget.max_tokens: failed on gte=1",
		},
		{
			name: "several tags",
			in: func() fDefaults {
				f := valid()
				f.Address = "not a url"
				f.Timeout = -time.Second
				return f
			},
			expectedErr: "address: failed on url; timeout: failed on gte=0",
		},
		{
			name:        "valid",
			in:          valid,
			expectedErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.in()
			conf, err := xsettings.Custom(&in, validate.New())
			if err != nil {
				t.Fatal(err)
			}

			err = conf.Parse()
			if tt.expectedErr == "" {
				if err != nil {
					t.Fatalf("expected no error but got %v", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("expected error but got nil")
			}

			if err.Error() != tt.expectedErr {
				t.Fatalf("expected error %s but got %s", tt.expectedErr, err)
			}
		})
	}
}

func TestCustomValidator(t *testing.T) {
	in := fDefaults{Ignored: "x", Nested: nestedStruct{Str: "x"}}
	in.Budget.MaxTokens = 1

	errCustom := errors.New("custom")

	conf, err := xsettings.Custom(&in, validate.New(nil, func(v any) error {
		if _, ok := v.(*fDefaults); !ok {
			return fmt.Errorf("unexpected %T", v)
		}
		return errCustom
	}))
	if err != nil {
		t.Fatal(err)
	}

	if err := conf.Parse(); !errors.Is(err, errCustom) {
		t.Fatalf("expected custom error but got %v", err)
	}
}
