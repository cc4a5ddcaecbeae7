package schema

import (
	"errors"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color string

func (c color) IsValid() bool { return c == "red" || c == "blue" }

type inner struct {
	Name *string `json:"name" validate:"required"`
}

type sample struct {
	ID    *string `json:"id" validate:"required"`
	Color *color  `json:"color" validate:"required,enum"`
	Quota *string `json:"quota" validate:"omitempty,quota"`
	Inner *inner  `json:"inner"`
}

type embedded struct {
	inner
	Extra *string `json:"extra"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantErr error
		valid   bool
	}{
		{"map", map[string]any{"id": "a", "color": "red"}, nil, true},
		{"raw bytes", []byte(`{"id":"a","color":"blue"}`), nil, true},
		{"raw message", json.RawMessage(`{"id":"","color":"blue"}`), nil, true},
		{"typed value", struct {
			ID    string `json:"id"`
			Color string `json:"color"`
		}{"a", "red"}, nil, true},
		{"missing required", map[string]any{"color": "red"}, nil, false},
		{"null required", map[string]any{"id": nil, "color": "red"}, nil, false},
		{"bad enum", map[string]any{"id": "a", "color": "green"}, nil, false},
		{"wrong type", map[string]any{"id": 1, "color": "red"}, nil, false},
		{"unknown key", map[string]any{"id": "a", "color": "red", "x": 1}, ErrUnknownField, false},
		{"case folded key", map[string]any{"ID": "a", "color": "red"}, ErrUnknownField, false},
		{"nested unknown key", map[string]any{"id": "a", "color": "red", "inner": map[string]any{"name": "n", "x": 1}}, ErrUnknownField, false},
		{"nil", nil, ErrNotObject, false},
		{"string", "hello", ErrNotObject, false},
		{"array", []any{1, 2}, ErrNotObject, false},
		{"not encodable", map[string]any{"id": make(chan int)}, ErrNotEncodable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s sample
			err := Decode(tt.value, &s)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestDecodeOpen(t *testing.T) {
	t.Run("extra keys ignored", func(t *testing.T) {
		var s sample
		err := DecodeOpen(map[string]any{"id": "a", "color": "red", "other": []int{1}}, &s)
		require.NoError(t, err)
		assert.Equal(t, "a", *s.ID)
	})

	t.Run("case folded key does not satisfy field", func(t *testing.T) {
		var s sample
		err := DecodeOpen(map[string]any{"ID": "a", "color": "red"}, &s)
		assert.Error(t, err)
	})
}

func TestDecodeEmbedded(t *testing.T) {
	var e embedded
	require.NoError(t, Decode(map[string]any{"name": "n", "extra": "x"}, &e))
	assert.Equal(t, "n", *e.Name)

	err := Decode(map[string]any{"inner": map[string]any{"name": "n"}}, &e)
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestDecodeDestination(t *testing.T) {
	var s sample
	assert.Error(t, Decode(map[string]any{}, s))
	assert.Error(t, Decode(map[string]any{}, nil))
}

func TestQuota(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0", true},
		{"5", true},
		{"120", true},
		{"-1", false},
		{"abc", false},
		{"1.5", false},
		{"5abc", false},
		{" 5", false},
		{"+", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsQuota(tt.in))

			var s sample
			err := Decode(map[string]any{"id": "a", "color": "red", "quota": tt.in}, &s)
			assert.Equal(t, tt.want, err == nil)
		})
	}
}

func TestDecodeStringMap(t *testing.T) {
	m, err := DecodeStringMap(map[string]any{"a": "1", "b": ""})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": ""}, m)

	_, err = DecodeStringMap(map[string]any{"a": 1})
	assert.Error(t, err)
	_, err = DecodeStringMap(map[string]any{"a": nil})
	assert.Error(t, err)
	_, err = DecodeStringMap("nope")
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestToJSON(t *testing.T) {
	raw, err := ToJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))

	raw, err = ToJSON([]byte(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(raw))

	raw, err = ToJSON(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(raw))

	_, err = ToJSON(func() {})
	assert.ErrorIs(t, err, ErrNotEncodable)
}

func TestExtend(t *testing.T) {
	raw, err := Extend(map[string]any{"a": 1}, "b", "x")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1,"b":"x"}`, string(raw))

	_, err = Extend(map[string]any{"b": 1}, "b", "x")
	assert.ErrorIs(t, err, ErrFieldPresent)

	_, err = Extend([]int{1}, "b", "x")
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestFieldErrors(t *testing.T) {
	assert.Nil(t, FieldErrors(nil))

	var s sample
	err := Decode(map[string]any{"color": "green"}, &s)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"id": "required", "color": "enum"}, FieldErrors(err))

	other := FieldErrors(errors.New("boom"))
	assert.Equal(t, map[string]string{"_": "boom"}, other)
}
