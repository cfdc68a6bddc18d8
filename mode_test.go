package parsel_test

import (
	"testing"

	"github.com/fwojciec/parsel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]parsel.Mode{
		"css":     parsel.ModeCSS,
		"XPath":   parsel.ModeXPath,
		" xpath ": parsel.ModeXPath,
	} {
		got, err := parsel.ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := parsel.ParseMode("regex")
	assert.Equal(t, parsel.EINVALID, parsel.ErrorCode(err))
}

func TestMode_Label(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "CSS", parsel.ModeCSS.Label())
	assert.Equal(t, "XPATH", parsel.ModeXPath.Label())
}
