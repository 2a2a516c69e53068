package uuidcodec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	canonical = "a1b2c3d4-e5f6-4718-a93a-4b5c6d7e8f90"
	plain     = "a1b2c3d4e5f64718a93a4b5c6d7e8f90"
)

var binary = []byte{0xa1, 0xb2, 0xc3, 0xd4, 0xe5, 0xf6, 0x47, 0x18, 0xa9, 0x3a, 0x4b, 0x5c, 0x6d, 0x7e, 0x8f, 0x90}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []byte
		ok    bool
	}{
		{"canonical lowercase", canonical, binary, true},
		{"canonical uppercase", "A1B2C3D4-E5F6-4718-A93A-4B5C6D7E8F90", binary, true},
		{"plain lowercase", plain, binary, true},
		{"plain uppercase", "A1B2C3D4E5F64718A93A4B5C6D7E8F90", binary, true},
		{"mixed case", "a1B2c3D4-E5f6-4718-A93a-4b5C6d7E8f90", binary, true},
		{"empty", "", nil, false},
		{"too short", "a1b2c3d4", nil, false},
		{"non-hex", "z1b2c3d4-e5f6-4718-a93a-4b5c6d7e8f90", nil, false},
		{"garbage", "not-a-uuid-at-all", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Decode(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender(t *testing.T) {
	assert.Equal(t, canonical, Render(binary))
	assert.Equal(t, "", Render(nil))
	assert.Equal(t, "", Render([]byte{0x01, 0x02}))
}

func TestDecodeRenderRoundTrip(t *testing.T) {
	for _, input := range []string{
		canonical,
		plain,
		"A1B2C3D4-E5F6-4718-A93A-4B5C6D7E8F90",
		"00000000-0000-0000-0000-000000000000",
	} {
		b, ok := Decode(input)
		require.True(t, ok, "Decode(%q)", input)

		// Rendering then decoding again is a fixed point.
		rendered := Render(b)
		b2, ok := Decode(rendered)
		require.True(t, ok)
		assert.Equal(t, b, b2)
		assert.Equal(t, rendered, Render(b2))
	}
}

func TestRenderValue(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  any
	}{
		{"16-byte blob", binary, canonical},
		{"text uuid as bytes", []byte(canonical), canonical},
		{"string passes through", canonical, canonical},
		{"uppercase string passes through", "A1B2C3D4-E5F6-4718-A93A-4B5C6D7E8F90", "A1B2C3D4-E5F6-4718-A93A-4B5C6D7E8F90"},
		{"non-uuid string", "hello", "hello"},
		{"non-uuid bytes", []byte("hello"), "hello"},
		{"integer passes through", int64(42), int64(42)},
		{"nil passes through", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderValue(tt.input))
		})
	}
}

func TestFormsOf(t *testing.T) {
	forms, ok := FormsOf("A1B2C3D4E5F64718A93A4B5C6D7E8F90")
	require.True(t, ok)
	assert.Equal(t, binary, forms.Binary)
	assert.Equal(t, canonical, forms.Canonical)
	assert.Equal(t, plain, forms.Plain)

	_, ok = FormsOf("nope")
	assert.False(t, ok)
}

func TestIDScan(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		want    string
		wantErr bool
	}{
		{"16-byte blob", binary, canonical, false},
		{"text uuid bytes", []byte(canonical), canonical, false},
		{"uuid string", canonical, canonical, false},
		{"plain hex string", plain, canonical, false},
		{"nil", nil, "", false},
		{"bad bytes", []byte("xx"), "", true},
		{"bad string", "xx", "", true},
		{"unsupported type", 3.14, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			err := id.Scan(tt.src)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id.String())
		})
	}
}

func TestIDValue(t *testing.T) {
	id, err := ParseID(canonical)
	require.NoError(t, err)

	v, err := id.Value()
	require.NoError(t, err)
	assert.Equal(t, binary, v)

	var empty ID
	v, err = empty.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestIDJSON(t *testing.T) {
	id, err := ParseID("A1B2C3D4E5F64718A93A4B5C6D7E8F90")
	require.NoError(t, err)

	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"`+canonical+`"`, string(data))

	var decoded ID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded)

	var nullID ID
	require.NoError(t, json.Unmarshal([]byte("null"), &nullID))
	assert.True(t, nullID.IsZero())
}

func TestNewIsRandom(t *testing.T) {
	a := New()
	b := New()
	require.Len(t, []byte(a), 16)
	assert.NotEqual(t, a.String(), b.String())
}
