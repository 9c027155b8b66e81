package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFloatLocale(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in             string
		group, decimal string
		want           float64
		ok             bool
	}{
		{"1,234.50", ",", ".", 1234.5, true},
		{"1.234,5", ".", ",", 1234.5, true},
		{"1 234,50", ".", ",", 1234.5, true},
		{"-3", ",", ".", -3, true},
		{"3/4", ",", ".", 0.75, true},
		{"3/0", ",", ".", 0, false},
		{"", ",", ".", 0, false},
		{"-", ",", ".", 0, false},
		{"abc", ",", ".", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseFloatLocale(tt.in, tt.group, tt.decimal)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.InDelta(t, tt.want, got, 1e-9, tt.in)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "3.5", FormatFloat(3.5))
	assert.Equal(t, "1234", FormatFloat(1234))
	assert.Equal(t, "0.02", FormatFloat(0.02))
}

func TestFindAll(t *testing.T) {
	t.Parallel()
	re, err := Compile(`(?<=(\s|^))(km|m)(?=(\s|$))`, 0)
	require.NoError(t, err)

	got := FindAll(re, []rune("5 km and 3 M"))
	assert.Equal(t, []Span{{Index: 2, Length: 2, Value: "km"}, {Index: 11, Length: 1, Value: "M"}}, got)

	last, ok := Last(re, []rune("5 km and 3 M"))
	require.True(t, ok)
	assert.Equal(t, 11, last.Index)
	assert.Equal(t, 12, last.End())

	_, ok = Last(re, []rune("nothing"))
	assert.False(t, ok)
	assert.Nil(t, FindAll(nil, []rune("x")))
}

func TestCompile_Invalid(t *testing.T) {
	t.Parallel()
	_, err := Compile(`(?<=(`, 0)
	assert.Error(t, err)
}

func TestEscape(t *testing.T) {
	t.Parallel()
	re, err := Compile(Escape("deg.")+"|"+Escape("c$"), 0)
	require.NoError(t, err)
	ok, err := re.MatchString("c$")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = re.MatchString("degx")
	require.NoError(t, err)
	assert.False(t, ok)
}
