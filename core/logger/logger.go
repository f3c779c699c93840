package logger

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = logrus.WarnLevel

var (
	lg     *logrus.Logger
	lgOnce sync.Once
)

// Logger returns the shared logger for the introspection packages.
// It writes JSON records to stderr at DefaultLevel until SetLevel is called.
func Logger() *logrus.Logger {
	lgOnce.Do(func() {
		lg = New(DefaultLevel)
	})
	return lg
}

// New builds a standalone logger writing JSON records to stderr at the given level.
func New(level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(level)
	return l
}

// SetLevel parses level and applies it to the shared logger.
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	Logger().SetLevel(lvl)
	return nil
}

// Component returns an entry of the shared logger tagged with the component name.
func Component(name string) *logrus.Entry {
	return Logger().WithField("component", name)
}
