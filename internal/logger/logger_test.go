package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"development", "production", "PROD", ""} {
		l, err := New(mode)
		require.NoError(t, err, mode)
		assert.NotNil(t, l.SugaredLogger)
	}
}

func TestWithKeepsLogger(t *testing.T) {
	l := Nop().With("component", "test")
	assert.NotNil(t, l)
	l.Info("message", "key", "value")
}
