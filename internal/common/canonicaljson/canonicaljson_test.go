package canonicaljson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalSortsKeys(t *testing.T) {
	out, err := Marshal(map[string]any{
		"source_id":   "CR-CMIP-0-2-0",
		"activity_id": "input4MIPs",
		"mip_era":     "CMIP6Plus",
	})
	require.NoError(t, err)
	assert.Equal(t, `{
    "activity_id":"input4MIPs",
    "mip_era":"CMIP6Plus",
    "source_id":"CR-CMIP-0-2-0"
}
`, string(out))
}

func TestMarshalNesting(t *testing.T) {
	out, err := Marshal(map[string]any{
		"source_id": map[string]any{
			"CR-CMIP-0-2-0": map[string]any{
				"values": []any{"b", "a"},
				"count":  2,
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, `{
    "source_id":{
        "CR-CMIP-0-2-0":{
            "count":2,
            "values":[
                "b",
                "a"
            ]
        }
    }
}
`, string(out))
}

func TestMarshalRespectsStructTags(t *testing.T) {
	type entry struct {
		SourceID string  `json:"source_id"`
		Comment  *string `json:"comment,omitempty"`
	}
	out, err := Marshal(entry{SourceID: "CR-CMIP-0-2-0"})
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"source_id\":\"CR-CMIP-0-2-0\"\n}\n", string(out))
}

func TestMarshalEscapesNonASCII(t *testing.T) {
	out, err := Marshal(map[string]any{"contact": "zélie@cr.example — ✓"})
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"contact\":\"z\\u00e9lie@cr.example \\u2014 \\u2713\"\n}\n", string(out))

	t.Run("astral characters use surrogate pairs", func(t *testing.T) {
		out, err := Marshal(map[string]any{"note": "🌍"})
		require.NoError(t, err)
		assert.Equal(t, "{\n    \"note\":\"\\ud83c\\udf0d\"\n}\n", string(out))
	})

	t.Run("control and quote escapes", func(t *testing.T) {
		out, err := Marshal([]any{"a\"b\\c\nd\x01"})
		require.NoError(t, err)
		assert.Equal(t, "[\n    \"a\\\"b\\\\c\\nd\\u0001\"\n]\n", string(out))
	})
}

func TestMarshalEmptyAndScalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"empty object", map[string]any{}, "{}\n"},
		{"empty array", []any{}, "[]\n"},
		{"null", nil, "null\n"},
		{"bool", true, "true\n"},
		{"number keeps its form", 0.25, "0.25\n"},
		{"large int is not mangled", int64(20240520123456), "20240520123456\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Marshal(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestMarshalDeterministic(t *testing.T) {
	in := map[string]any{"b": 1, "a": 2, "c": map[string]any{"z": "x", "y": "w"}}
	first, err := Marshal(in)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Marshal(in)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}
