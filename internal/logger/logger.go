// internal/logger/logger.go
package logger

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/review-page/internal/config"
)

// Setup configures the standard logrus logger. Production defaults to JSON
// output, everything else to text, unless LOG_FORMAT says otherwise.
func Setup(environment string, cfg config.LogConfig, out io.Writer) {
	logrus.SetOutput(out)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	format := strings.ToLower(cfg.Format)
	if format == "" {
		format = "text"
		if environment == "production" {
			format = "json"
		}
	}

	switch format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if err != nil {
		logrus.WithField("level", cfg.Level).Warn("Unknown log level, using info")
	}
}
