//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"companion-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestMark_SentinelVisibleToErrorsIs(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("sentinel")
	cause := errors.New("cause")

	err := errs.Mark(cause, sentinel)

	assert.True(t, errors.Is(err, sentinel))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "cause", err.Error())
}

func TestMark_NilCauseReturnsSentinel(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("sentinel")
	assert.Same(t, sentinel, errs.Mark(nil, sentinel))
}

func TestMark_WrappedCauseStillMatches(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("sentinel")
	cause := errors.New("cause")

	err := errs.Mark(errs.Wrap(cause, "loading row"), sentinel)

	assert.True(t, errors.Is(err, sentinel))
	assert.True(t, errors.Is(err, cause))
}
