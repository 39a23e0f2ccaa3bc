package jast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnquote(t *testing.T) {
	t.Parallel()
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: `"abc"`, want: "abc"},
		{raw: `""`, want: ""},
		{raw: `'x'`, want: "x"},
		{raw: `"a\tb\n"`, want: "a\tb\n"},
		{raw: `"\"q\" \\ \'"`, want: `"q" \ '`},
		{raw: `"\s"`, want: " "},
		{raw: `'A'`, want: "A"},
		{raw: `"\uuu0041"`, want: "A"},
		{raw: `"\101"`, want: "A"},
		{raw: `"\0"`, want: "\x00"},
		{raw: `"\477"`, want: "'7"},
		{raw: `"héllo"`, want: "héllo"},
		{raw: `"`, wantErr: true},
		{raw: `abc`, wantErr: true},
		{raw: `"abc'`, wantErr: true},
		{raw: `"a\"`, wantErr: true},
		{raw: `"\q"`, wantErr: true},
		{raw: `"\u12"`, wantErr: true},
		{raw: `"\u12zz"`, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			t.Parallel()
			got, err := Unquote(tc.raw)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCharValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		raw  string
		want rune
		ok   bool
	}{
		{`'a'`, 'a', true},
		{`'\n'`, '\n', true},
		{`'é'`, 'é', true},
		{`'ab'`, 0, false},
		{`''`, 0, false},
		{`'😀'`, 0, false},
		{`"a"`, 'a', true},
	}
	for _, tc := range tests {
		r, ok := CharValue(tc.raw)
		assert.Equal(t, tc.ok, ok, tc.raw)
		if tc.ok {
			assert.Equal(t, tc.want, r, tc.raw)
		}
	}
}

func TestQuote(t *testing.T) {
	t.Parallel()
	assert.Equal(t, `"a\"b'\n\u0001"`, QuoteString("a\"b'\n\x01"))
	assert.Equal(t, `"tab\there"`, QuoteString("tab\there"))
	assert.Equal(t, `'"'`, QuoteChar('"'))
	assert.Equal(t, `'\''`, QuoteChar('\''))
	assert.Equal(t, `'\\'`, QuoteChar('\\'))
	assert.Equal(t, `'\u007f'`, QuoteChar(0x7f))

	for _, s := range []string{"", "plain", "quote \" and ' and \\", "ctl \b\f\r\x02", "ünïcode"} {
		got, err := Unquote(QuoteString(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	for _, r := range []rune{'a', '\'', '"', '\t', 'é'} {
		got, ok := CharValue(QuoteChar(r))
		require.True(t, ok)
		assert.Equal(t, r, got)
	}
}
