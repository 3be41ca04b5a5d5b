package xsettingsjson_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sxwebdev/xsettings/decoders/xsettingsjson"
)

func TestDecoder(t *testing.T) {
	d := xsettingsjson.New()
	assert.Equal(t, "json", d.Format())

	var out map[string]any
	require.NoError(t, d.Unmarshal([]byte(`{"model": "gpt-4o", "budget": {"max_tokens": 10}}`), &out))

	assert.Equal(t, map[string]any{
		"model":  "gpt-4o",
		"budget": map[string]any{"max_tokens": float64(10)},
	}, out)

	assert.Error(t, d.Unmarshal([]byte(`{"model":`), &out))
}
