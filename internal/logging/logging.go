package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger. Production logs are JSON so
// they can be shipped as-is; everything else gets the text formatter.
func Setup(level string, production bool) {
	logrus.SetOutput(os.Stdout)

	if production {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.WithField("level", level).Warn("Unknown LOG_LEVEL, using info")
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}
