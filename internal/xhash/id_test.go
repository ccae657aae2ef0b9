package xhash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIDIsDeterministic(t *testing.T) {
	require.Equal(t, ID("temperature"), ID("temperature"))
}

func TestIDDistinguishesNames(t *testing.T) {
	require.NotEqual(t, ID("temperature"), ID("pressure"))
}
