package log

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Setup настраивает стандартный логгер logrus: уровень, формат TEXT/JSON и метки времени.
// Неизвестный уровень заменяется на INFO.
func Setup(level, format string, disableTimestamp bool) *logrus.Logger {
	logger := logrus.StandardLogger()
	logger.Out = os.Stdout

	switch strings.ToUpper(format) {
	case "JSON":
		logger.Formatter = &logrus.JSONFormatter{DisableTimestamp: disableTimestamp}
	default:
		logger.Formatter = &logrus.TextFormatter{
			FullTimestamp:    true,
			DisableTimestamp: disableTimestamp,
		}
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		logger.Warnf("[LOG] Неизвестный уровень логирования %q, используется INFO", level)
	}
	logger.Level = lvl
	return logger
}
