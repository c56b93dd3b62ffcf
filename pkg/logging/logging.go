// pkg/logging/logging.go

package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var logg = New(os.Stdout, "info")

// GetLogger returns the process wide logger.
func GetLogger() *logrus.Logger {
	return logg
}

// SetLevel changes the process wide log level. Unknown levels keep info.
func SetLevel(level string) {
	logg.SetLevel(parseLevel(level))
}

func New(out io.Writer, level string) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(parseLevel(level))
	l.SetOutput(out)
	return l
}

func parseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

func LogError(logger *logrus.Logger, moduleName string, funcName string, context string, data any, err error) {
	fields := logrus.Fields{
		"module":   moduleName,
		"funcName": funcName,
		"context":  context,
	}
	if data != nil {
		fields["data"] = data
	}
	logger.WithFields(fields).Error(err.Error())
}
