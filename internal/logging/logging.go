package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/SujalPatel1904/tickerboard/internal/config"
)

// Setup configures the global logrus logger from config: text formatter,
// level with an info fallback, and rotated file output when a file path
// is configured.
func Setup(cfg *config.Config) {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		logrus.Warnf("invalid log level %q, defaulting to info", cfg.Logging.Level)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	var writers []io.Writer
	if cfg.Logging.ConsoleOutput {
		writers = append(writers, os.Stdout)
	}
	if cfg.Logging.FilePath != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.Logging.FilePath,
			MaxSize:    cfg.Logging.RotationSize,
			MaxBackups: cfg.Logging.MaxBackups,
			Compress:   true,
		})
	}
	if len(writers) == 0 {
		writers = append(writers, os.Stdout)
	}
	logrus.SetOutput(io.MultiWriter(writers...))
}
