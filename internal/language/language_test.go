package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    Code
		wantErr bool
	}{
		{name: "plain code", value: "tr", want: Turkish},
		{name: "upper case", value: "ES", want: Spanish},
		{name: "region subtag", value: "pt-BR", want: Portuguese},
		{name: "script subtag", value: "zh-Hans", want: Chinese},
		{name: "surrounding spaces", value: "  de ", want: German},
		{name: "valid tag but unsupported", value: "nl", wantErr: true},
		{name: "malformed tag", value: "not a language", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupported)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCode_Lower(t *testing.T) {
	assert.Equal(t, "ıstanbul", Turkish.Lower("ISTANBUL"))
	assert.Equal(t, "istanbul", English.Lower("ISTANBUL"))
	assert.Equal(t, "örnek ver", Turkish.Lower("Örnek ver"))
}

func TestCode_DisplayName(t *testing.T) {
	assert.Equal(t, "Spanish", Spanish.DisplayName(English))
	assert.NotEmpty(t, Spanish.DisplayName(Turkish))
	assert.Equal(t, "Türkçe", Turkish.NativeName())
}

func TestCode_Set(t *testing.T) {
	var c Code
	require.NoError(t, c.Set("fr"))
	assert.Equal(t, French, c)
	assert.Equal(t, "fr", c.String())
	assert.Error(t, c.Set("klingon"))
	assert.Equal(t, "language", c.Type())
}

func TestSupported(t *testing.T) {
	got := Supported()
	assert.Len(t, got, 11)
	assert.Equal(t, English, got[0])

	got[0] = "xx"
	assert.Equal(t, English, Supported()[0], "Supported must return a copy")
	for _, code := range Supported() {
		assert.True(t, code.IsSupported())
		assert.NotEmpty(t, code.Flag())
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		name  string
		level Level
		max   Level
		want  bool
	}{
		{name: "lower level", level: LevelA1, max: LevelB1, want: true},
		{name: "same level", level: LevelB1, max: LevelB1, want: true},
		{name: "higher level", level: LevelC1, max: LevelB1, want: false},
		{name: "invalid level", level: Level("Z9"), max: LevelC2, want: false},
		{name: "invalid max", level: LevelA1, max: Level(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.level.AtOrBelow(tt.max))
		})
	}
}

func TestParseLevel(t *testing.T) {
	got, err := ParseLevel(" b2 ")
	require.NoError(t, err)
	assert.Equal(t, LevelB2, got)
	assert.Equal(t, 4, got.Rank())

	_, err = ParseLevel("D1")
	assert.Error(t, err)

	var l Level
	require.NoError(t, l.Set("c2"))
	assert.Equal(t, LevelC2, l)
	assert.Equal(t, "level", l.Type())
}
