package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type LoggerUnitSuite struct {
	suite.Suite
}

func (s *LoggerUnitSuite) TestParseLevel(t provider.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel(" warning "))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("trace"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}

func (s *LoggerUnitSuite) TestLevelFilters(t provider.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := newWithWriter(&buf, "warn")

	l.Info("dropped")
	assert.Zero(t, buf.Len())

	l.Warn("kept", slog.String("session_id", "abc"))
	assert.Contains(t, buf.String(), `"session_id":"abc"`)
}

func TestLoggerUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(LoggerUnitSuite))
}
