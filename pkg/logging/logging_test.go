package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/inktrace/inktrace/pkg/logging"
	"github.com/stretchr/testify/require"
)

func TestLog(t *testing.T) {
	buff := bytes.NewBuffer([]byte{})
	templogger, err := logging.New().FromWriter(buff).Make()
	require.NoError(t, err)
	require.NotNil(t, templogger)

	require.Equal(t, buff.Len(), 0)
	templogger.Logger.Info().Msg("Test")
	require.Contains(t, buff.String(), "Test")
}

func TestLogLevel(t *testing.T) {
	buff := bytes.NewBuffer([]byte{})
	templogger, err := logging.New().FromWriter(buff).WithLevel("warn").Make()
	require.NoError(t, err)

	templogger.Logger.Info().Msg("quiet")
	require.Zero(t, buff.Len())
	templogger.Logger.Warn().Msg("loud")
	require.Contains(t, buff.String(), "loud")

	_, err = logging.New().WithLevel("chatty").Make()
	require.Error(t, err)
}

func TestLogFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inktrace.log")
	templogger, err := logging.New().FromPath(path).Make()
	require.NoError(t, err)

	templogger.Logger.Info().Str("component", "test").Msg("to file")
	require.NoError(t, templogger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "to file")
	require.Contains(t, string(data), `"component":"test"`)
}
