package parsel_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/parsel"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := parsel.Errorf(parsel.EINVALID, "no such option: %s", "--foo")

	assert.Equal(t, parsel.EINVALID, parsel.ErrorCode(err))
	assert.Equal(t, "no such option: --foo", parsel.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("fetch: %w", parsel.Errorf(parsel.EUNAVAILABLE, "no browser"))

	assert.Equal(t, parsel.EUNAVAILABLE, parsel.ErrorCode(err))
	assert.Equal(t, "no browser", parsel.ErrorMessage(err))
}

func TestErrorCode_ForeignError(t *testing.T) {
	t.Parallel()

	err := errors.New("connection refused")

	assert.Equal(t, parsel.EINTERNAL, parsel.ErrorCode(err))
	assert.Equal(t, "connection refused", parsel.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, parsel.ErrorCode(nil))
	assert.Empty(t, parsel.ErrorMessage(nil))
}
