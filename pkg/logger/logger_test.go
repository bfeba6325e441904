package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestWithName(t *testing.T) {
	entry := WithName("registry")
	assert.NotNil(t, entry)
	assert.Equal(t, "registry", entry.Data["name"])
}

func TestSetLevel(t *testing.T) {
	original := defaultLogger.Level
	defer SetLevel(original)

	SetLevel(logrus.DebugLevel)
	assert.Equal(t, logrus.DebugLevel, defaultLogger.Level)
}

func TestConfigureFromString(t *testing.T) {
	original := defaultLogger.Level
	originalOut := defaultLogger.Out
	defer func() {
		SetLevel(original)
		defaultLogger.Out = originalOut
	}()

	t.Run("valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			assert.NoError(t, ConfigureFromString(level))
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		assert.NoError(t, ConfigureFromString("DEBUG"))
	})

	t.Run("silent", func(t *testing.T) {
		assert.NoError(t, ConfigureFromString("silent"))
	})

	t.Run("invalid level", func(t *testing.T) {
		assert.Error(t, ConfigureFromString("loudest"))
	})
}
