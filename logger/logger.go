package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileName = "app.log"

// Options controls where and how the process logs.
type Options struct {
	Dir   string
	Level string
	// JSON selects the JSON formatter; text is used otherwise.
	JSON bool
	// Stdout also writes entries to standard output.
	Stdout bool
}

// NewLogger builds a logrus logger writing to a rotating file in opts.Dir.
// The returned closer flushes and closes the rotating file.
func NewLogger(opts Options) (*logrus.Logger, io.Closer, error) {
	if err := os.MkdirAll(opts.Dir, os.ModePerm); err != nil {
		return nil, nil, err
	}

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	logFile := &lumberjack.Logger{
		Filename:   filepath.Join(opts.Dir, logFileName),
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}

	var out io.Writer = logFile
	if opts.Stdout {
		out = io.MultiWriter(os.Stdout, logFile)
	}

	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(level)
	if opts.JSON {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return log, logFile, nil
}
