package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"
)

// Level represents the severity level of a log entry
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	// FATAL exits the process after writing the entry
	FATAL
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a LOG_LEVEL value to a Level. Unknown values fall back to INFO.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	case "fatal":
		return FATAL
	default:
		return INFO
	}
}

// Logger writes one line per entry: timestamp, level, optional caller,
// bound fields, then the formatted message.
type Logger struct {
	level      Level
	logger     *log.Logger
	timeFormat string
	caller     bool
	fields     string
	exit       func(int)
}

type Config struct {
	Level        Level
	Output       io.Writer
	TimeFormat   string
	EnableCaller bool
}

func New(config Config) *Logger {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	if config.TimeFormat == "" {
		config.TimeFormat = "2006-01-02 15:04:05"
	}
	return &Logger{
		level:      config.Level,
		logger:     log.New(config.Output, "", 0),
		timeFormat: config.TimeFormat,
		caller:     config.EnableCaller,
		exit:       os.Exit,
	}
}

func NewDefault() *Logger {
	return New(Config{Level: INFO, Output: os.Stdout})
}

func (l *Logger) SetLevel(level Level) {
	l.level = level
}

func (l *Logger) log(level Level, message string, args ...interface{}) {
	if level < l.level {
		return
	}

	var caller string
	if l.caller {
		if _, file, line, ok := runtime.Caller(2); ok {
			caller = fmt.Sprintf("%s:%d ", filepath.Base(file), line)
		}
	}

	formatted := message
	if len(args) > 0 {
		formatted = fmt.Sprintf(message, args...)
	}

	l.logger.Printf("[%s] %s %s%s%s", time.Now().Format(l.timeFormat), level, caller, l.fields, formatted)

	if level == FATAL {
		l.exit(1)
	}
}

func (l *Logger) Debug(message string, args ...interface{}) { l.log(DEBUG, message, args...) }
func (l *Logger) Info(message string, args ...interface{})  { l.log(INFO, message, args...) }
func (l *Logger) Warn(message string, args ...interface{})  { l.log(WARN, message, args...) }
func (l *Logger) Error(message string, args ...interface{}) { l.log(ERROR, message, args...) }
func (l *Logger) Fatal(message string, args ...interface{}) { l.log(FATAL, message, args...) }

// WithFields returns a child logger that prefixes every entry with the
// given key=value pairs, sorted by key.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(l.fields)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%v ", k, fields[k])
	}

	child := *l
	child.fields = b.String()
	return &child
}

var defaultLogger = NewDefault()

func SetDefault(logger *Logger) {
	defaultLogger = logger
}

func Default() *Logger {
	return defaultLogger
}

func Debug(message string, args ...interface{}) { defaultLogger.Debug(message, args...) }
func Info(message string, args ...interface{})  { defaultLogger.Info(message, args...) }
func Warn(message string, args ...interface{})  { defaultLogger.Warn(message, args...) }
func Error(message string, args ...interface{}) { defaultLogger.Error(message, args...) }
func Fatal(message string, args ...interface{}) { defaultLogger.Fatal(message, args...) }
