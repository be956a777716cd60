package log

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type Logger interface {
	Print(...interface{})
	Printf(string, ...interface{})
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
	Error(...interface{})
	Errorf(string, ...interface{})
	Fatal(...interface{})
	Fatalf(string, ...interface{})

	// WithField returns a logger that adds key=value to every entry.
	WithField(key string, value interface{}) Logger
}

type logger struct {
	*logrus.Entry
}

func New(env string) Logger {
	l := logrus.New()

	if env == "prod" {
		l.Formatter = &logrus.JSONFormatter{}
		l.Level = logrus.InfoLevel
	} else {
		l.Formatter = &logrus.TextFormatter{}
		l.Level = logrus.DebugLevel
	}

	return logger{l.WithField("env", env)}
}

// Discard returns a logger that writes nothing. Used in tests.
func Discard() Logger {
	l := logrus.New()
	l.Out = io.Discard
	return logger{logrus.NewEntry(l)}
}

// Recorder returns a logger that writes nothing and keeps its entries in the
// returned hook. Used in tests.
func Recorder() (Logger, *test.Hook) {
	l, hook := test.NewNullLogger()
	return logger{logrus.NewEntry(l)}, hook
}

func (l logger) Print(args ...interface{}) {
	l.Println(args...)
}

func (l logger) Error(args ...interface{}) {
	l.Errorln(args...)
}

func (l logger) Fatal(args ...interface{}) {
	l.Fatalln(args...)
}

func (l logger) WithField(key string, value interface{}) Logger {
	return logger{l.Entry.WithField(key, value)}
}
