package logging

import (
	"io"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits applied to log files.
const (
	logFileMaxSizeMB  = 100
	logFileMaxBackups = 3
)

// NewFileLogger returns a logger writing logs at or above level to the file at path. The file is
// rotated once it grows past logFileMaxSizeMB. The returned closer must be closed when done logging.
func NewFileLogger(name, path string, level Level) (Logger, io.Closer) {
	out := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logFileMaxSizeMB,
		MaxBackups: logFileMaxBackups,
		Compress:   true,
	}
	return NewWriterLogger(name, out, level), out
}
