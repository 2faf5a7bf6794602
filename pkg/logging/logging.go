// Package logging builds the zerolog logger shared by the CLI, the MCP server
// and the terminal browser.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

const (
	permission = 0664
)

type LogBuild struct {
	writer io.Writer
	path   string
	level  string
}

// LogData holds the built logger and the file it writes to, if any.
type LogData struct {
	LogFile *os.File
	Logger  zerolog.Logger
}

func New() *LogBuild {
	return &LogBuild{}
}

// FromPath makes the logger append to the file at path. It overrides any
// writer set with FromWriter.
func (build *LogBuild) FromPath(path string) *LogBuild {
	build.path = path
	return build
}

func (build *LogBuild) FromWriter(w io.Writer) *LogBuild {
	build.writer = w
	return build
}

// WithLevel sets the minimum level by name ("debug", "info", ...). An empty
// name keeps info.
func (build *LogBuild) WithLevel(level string) *LogBuild {
	build.level = level
	return build
}

// Make builds the logger. Without a path or writer it logs to stderr; stdout
// is reserved for the MCP stream.
func (build *LogBuild) Make() (logData *LogData, err error) {
	level := zerolog.InfoLevel
	if build.level != "" {
		level, err = zerolog.ParseLevel(build.level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", build.level, err)
		}
	}

	logData = new(LogData)
	writer := build.writer
	if writer == nil {
		writer = os.Stderr
	}
	if build.path != "" {
		logData.LogFile, err = os.OpenFile(build.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return nil, err
		}
		writer = zerolog.SyncWriter(logData.LogFile)
	}
	logData.Logger = zerolog.New(writer).Level(level).With().Timestamp().Logger()
	return logData, nil
}

// Close releases the log file, if one was opened.
func (logData *LogData) Close() error {
	if logData.LogFile == nil {
		return nil
	}
	return logData.LogFile.Close()
}
