package wprecover_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/wprecover"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := wprecover.Errorf(wprecover.ENOTFOUND, "media %q not found", "photo.jpg")

	assert.Equal(t, wprecover.ENOTFOUND, wprecover.ErrorCode(err))
	assert.Equal(t, "media \"photo.jpg\" not found", wprecover.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("site example: %w", wprecover.Errorf(wprecover.EUNMAPPED, "unmapped"))

	assert.Equal(t, wprecover.EUNMAPPED, wprecover.ErrorCode(err))
}

func TestErrorCode_JoinedError(t *testing.T) {
	t.Parallel()

	err := errors.Join(errors.New("plain"), wprecover.Errorf(wprecover.EUNMAPPED, "unmapped"))

	assert.Equal(t, wprecover.EUNMAPPED, wprecover.ErrorCode(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, wprecover.EINTERNAL, wprecover.ErrorCode(err))
	assert.Equal(t, "Internal error", wprecover.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, wprecover.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, wprecover.ErrorMessage(nil))
}
