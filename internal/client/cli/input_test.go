package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.ErrorIs(t, err, io.EOF)
}

func TestGetDefaultText(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		current    string
		want       string
		wantPrompt string
	}{
		{"blank keeps current", "\n", "Ann", "Ann", "Name [Ann]\n> "},
		{"answer replaces", "Bob\n", "Ann", "Bob", "Name [Ann]\n> "},
		{"no current value", "\n", "", "", "Name\n> "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetDefaultText(rdr(tt.input), "Name", tt.current, &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantPrompt, out.String())
		})
	}
}

func TestGetPassword_Terminal(t *testing.T) {
	origRead, origTerm := readPassword, isTerminal
	t.Cleanup(func() { readPassword, isTerminal = origRead, origTerm })
	isTerminal = func(int) bool { return true }

	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(rdr(""), "Password", &out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)
	assert.Equal(t, "Password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword(rdr(""), "Password", &out)
	require.ErrorContains(t, err, "boom")
}

func TestGetPassword_NotTerminal(t *testing.T) {
	orig := isTerminal
	t.Cleanup(func() { isTerminal = orig })
	isTerminal = func(int) bool { return false }

	var out bytes.Buffer
	pw, err := GetPassword(rdr("piped\n"), "Password", &out)
	require.NoError(t, err)
	assert.Equal(t, "piped", pw)
}

func TestConfirm(t *testing.T) {
	for input, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "maybe\n": false} {
		var out bytes.Buffer
		got, err := Confirm(rdr(input), "Delete?", &out)
		require.NoError(t, err)
		assert.Equal(t, want, got, input)
	}
}
