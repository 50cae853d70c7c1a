package request_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creditref/internal/request"
)

func TestParseMode(t *testing.T) {
	cases := map[string]request.Mode{
		"strict":      request.ModeStrict,
		"VERBOSE":     request.ModeStrict,
		"permissive":  request.ModePermissive,
		" Silent ":    request.ModePermissive,
		"verbose\n":   request.ModeStrict,
		"Permissive ": request.ModePermissive,
	}
	for in, want := range cases {
		got, err := request.ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := request.ParseMode("loud")
	assert.Error(t, err)
}

func TestModeText(t *testing.T) {
	assert.Equal(t, "strict", request.ModeStrict.String())
	assert.Equal(t, "Mode(7)", request.Mode(7).String())

	var m request.Mode
	require.NoError(t, m.UnmarshalText([]byte("silent")))
	assert.Equal(t, request.ModePermissive, m)
	assert.Error(t, m.UnmarshalText([]byte("")))

	text, err := request.ModePermissive.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "permissive", string(text))
}
