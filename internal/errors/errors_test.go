package errors_test

import (
	"fmt"
	"testing"

	"github.com/devopsgroupeu/StateCraft/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentinelError string

func (err sentinelError) Error() string { return string(err) }

func TestNewAttachesStackTrace(t *testing.T) {
	t.Parallel()

	err := errors.New("something broke")
	require.Error(t, err)

	assert.Equal(t, "something broke", err.Error())
	assert.NotEmpty(t, errors.ErrorStack(err))
}

func TestNewKeepsExistingStackTrace(t *testing.T) {
	t.Parallel()

	inner := errors.New("inner")
	outer := errors.New(inner)

	assert.Same(t, inner, outer)
}

func TestErrorfWrapsTarget(t *testing.T) {
	t.Parallel()

	sentinel := sentinelError("not found")
	err := errors.Errorf("looking up table: %w", sentinel)

	var target sentinelError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, sentinel, target)
	assert.True(t, errors.Is(err, sentinel))
}

func TestAsSeesThroughFmtWrapping(t *testing.T) {
	t.Parallel()

	sentinel := sentinelError("conflict")
	err := fmt.Errorf("outer: %w", errors.New(sentinel))

	var target sentinelError
	assert.True(t, errors.As(err, &target))
}

func TestErrorStackEmptyWithoutTrace(t *testing.T) {
	t.Parallel()

	assert.Empty(t, errors.ErrorStack(fmt.Errorf("plain")))
}
