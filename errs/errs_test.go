package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorIsMatchesSentinel(t *testing.T) {
	err := New(FieldNotFound, "temperature")
	require.True(t, errors.Is(err, ErrFieldNotFound))
	require.False(t, errors.Is(err, ErrBlockNotFound))
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("short read")
	err := Wrap(BlockReadFailed, "block 42", cause)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "block 42")
	require.Contains(t, err.Error(), "short read")
}

func TestCodeString(t *testing.T) {
	require.Equal(t, "FieldNotFound", FieldNotFound.String())
	require.Contains(t, Code(250).String(), "Code(250)")
}
