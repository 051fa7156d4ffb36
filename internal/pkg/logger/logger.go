package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02 15:04:05"

type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
	WithError(err error) Logger
}

// entryLogger gets its level methods from the embedded entry and only
// rewraps the field builders so they keep returning Logger.
type entryLogger struct {
	*logrus.Entry
}

// New builds a stdout logger. Production uses JSON lines, every other
// environment gets coloured text.
func New(level, env string) Logger {
	var formatter logrus.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
		ForceColors:     true,
	}
	if env == "production" {
		formatter = &logrus.JSONFormatter{TimestampFormat: timestampFormat}
	}
	return build(formatter, level, os.Stdout)
}

func NewWithWriter(level string, writer io.Writer) Logger {
	return build(&logrus.JSONFormatter{TimestampFormat: timestampFormat}, level, writer)
}

// Discard returns a logger that drops everything. Used by tests and by
// components constructed without a logger.
func Discard() Logger {
	return NewWithWriter("panic", io.Discard)
}

// build falls back to info when level does not parse.
func build(formatter logrus.Formatter, level string, out io.Writer) Logger {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = logrus.InfoLevel
	}

	base := logrus.New()
	base.SetFormatter(formatter)
	base.SetLevel(lvl)
	base.SetOutput(out)

	return entryLogger{logrus.NewEntry(base)}
}

func (l entryLogger) WithField(key string, value interface{}) Logger {
	return entryLogger{l.Entry.WithField(key, value)}
}

func (l entryLogger) WithFields(fields map[string]interface{}) Logger {
	return entryLogger{l.Entry.WithFields(logrus.Fields(fields))}
}

func (l entryLogger) WithError(err error) Logger {
	return entryLogger{l.Entry.WithError(err)}
}

func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%+v", err)
}

func IsDebugEnabled(log Logger) bool {
	l, ok := log.(entryLogger)
	return ok && l.Entry.Logger.IsLevelEnabled(logrus.DebugLevel)
}
