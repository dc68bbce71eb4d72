package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		l, err := New(level, "console")
		require.NoError(t, err, level)
		require.NotNil(t, l)
	}
}

func TestNew_JSONFormat(t *testing.T) {
	l, err := New("info", "json")
	require.NoError(t, err)
	require.NotNil(t, l)
}

func TestNew_RejectsBadLevel(t *testing.T) {
	_, err := New("loud", "console")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestNew_RejectsBadFormat(t *testing.T) {
	_, err := New("info", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log format")
}
