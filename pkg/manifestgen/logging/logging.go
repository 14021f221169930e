// Package logging writes structured, component-tagged logs to a rotating
// file, with optional mirroring to the terminal.
//
// Loggers may be obtained with Get at package init time; they stay silent
// until Init is called and pick up the new sinks afterwards:
//
//	var logger = logging.Get("scanner")
//
//	if err := logging.Init(logging.Config{Level: "info"}); err != nil {
//	    return err
//	}
//	defer logging.Close()
//
//	logger.Info("scan started", "root", "files")
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jamesainslie/manifestgen/pkg/manifestgen/config"
)

// Level represents a logging level.
type Level int

// Log levels from least to most severe.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

func (l Level) charm() log.Level {
	switch l {
	case LevelDebug:
		return log.DebugLevel
	case LevelWarn:
		return log.WarnLevel
	case LevelError:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ErrInvalidLevel is returned when an invalid log level string is provided.
var ErrInvalidLevel = errors.New("invalid log level")

// ErrInvalidFormat is returned for an unknown log format.
var ErrInvalidFormat = errors.New("invalid log format")

// ParseLevel parses a string into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("%w: %s", ErrInvalidLevel, s)
	}
}

func parseFormat(s string) (log.Formatter, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return log.TextFormatter, fmt.Errorf("%w: %s", ErrInvalidFormat, s)
	}
}

// Config configures the logging system.
type Config struct {
	// Level is the default log level (debug, info, warn, error).
	Level string

	// Format is the file format: text, json or logfmt.
	Format string

	// Path is the log file path. Empty uses config.DefaultLogPath().
	Path string

	// Rotation configures log file rotation.
	Rotation RotationConfig

	// Components maps component names to their log levels.
	Components map[string]string

	// ConsoleLevel mirrors logs at this level and above to Console.
	// Empty disables mirroring.
	ConsoleLevel string

	// Console receives mirrored logs. Nil means os.Stderr.
	Console io.Writer

	// Fields are attached to every record, e.g. a run id.
	Fields []interface{}
}

// Logger is a component-tagged logger. Its sinks are resolved on every
// call, so a Logger obtained before Init starts writing once Init runs.
type Logger struct {
	component string
	fields    []interface{}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...interface{}) {
	l.log(LevelDebug, msg, args)
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...interface{}) {
	l.log(LevelInfo, msg, args)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.log(LevelWarn, msg, args)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...interface{}) {
	l.log(LevelError, msg, args)
}

// With returns a logger that adds args to every record.
func (l *Logger) With(args ...interface{}) *Logger {
	fields := make([]interface{}, 0, len(l.fields)+len(args))
	fields = append(fields, l.fields...)
	fields = append(fields, args...)
	return &Logger{component: l.component, fields: fields}
}

// Component returns the component name.
func (l *Logger) Component() string {
	return l.component
}

func (l *Logger) log(level Level, msg string, args []interface{}) {
	globalState.mu.RLock()
	s, ok := globalState.sinks[l.component]
	globalState.mu.RUnlock()

	if !ok {
		s = globalState.sinkFor(l.component)
	}
	if s.file == nil {
		return
	}

	kv := args
	if len(l.fields) > 0 {
		kv = make([]interface{}, 0, len(l.fields)+len(args))
		kv = append(kv, l.fields...)
		kv = append(kv, args...)
	}

	s.file.Log(level.charm(), msg, kv...)
	if s.console != nil {
		s.console.Log(level.charm(), msg, kv...)
	}
}

// sinks holds the charm loggers one component writes through.
type sinks struct {
	file    *log.Logger
	console *log.Logger
}

type state struct {
	mu          sync.RWMutex
	initialized bool
	writer      *RotatingWriter
	level       Level
	formatter   log.Formatter
	components  map[string]Level
	fields      []interface{}
	sinks       map[string]sinks
	loggers     map[string]*Logger

	consoleEnabled bool
	consoleLevel   Level
	console        io.Writer
}

var globalState = &state{
	components: make(map[string]Level),
	sinks:      make(map[string]sinks),
	loggers:    make(map[string]*Logger),
}

// Init initializes the logging system with the given configuration.
// Before Init is called, all loggers are silent. Calling Init again
// replaces the previous configuration.
func Init(cfg Config) error {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}

	formatter, err := parseFormat(cfg.Format)
	if err != nil {
		return fmt.Errorf("parsing log format: %w", err)
	}

	components := make(map[string]Level, len(cfg.Components))
	for comp, lvl := range cfg.Components {
		parsed, err := ParseLevel(lvl)
		if err != nil {
			return fmt.Errorf("parsing level for component %s: %w", comp, err)
		}
		components[comp] = parsed
	}

	var consoleLevel Level
	consoleEnabled := cfg.ConsoleLevel != ""
	if consoleEnabled {
		consoleLevel, err = ParseLevel(cfg.ConsoleLevel)
		if err != nil {
			return fmt.Errorf("parsing console level: %w", err)
		}
	}

	path := cfg.Path
	if path == "" {
		path = config.DefaultLogPath()
	}

	writer, err := NewRotatingWriter(path, cfg.Rotation)
	if err != nil {
		return fmt.Errorf("creating log writer: %w", err)
	}

	globalState.mu.Lock()
	defer globalState.mu.Unlock()

	if globalState.writer != nil {
		_ = globalState.writer.Close()
	}

	globalState.writer = writer
	globalState.level = level
	globalState.formatter = formatter
	globalState.components = components
	globalState.fields = cfg.Fields
	globalState.consoleEnabled = consoleEnabled
	globalState.consoleLevel = consoleLevel
	globalState.console = cfg.Console
	if globalState.console == nil {
		globalState.console = os.Stderr
	}
	globalState.sinks = make(map[string]sinks)
	globalState.initialized = true

	return nil
}

// Get returns the logger for the given component. Repeated calls return
// the same Logger.
func Get(component string) *Logger {
	globalState.mu.Lock()
	defer globalState.mu.Unlock()

	if l, ok := globalState.loggers[component]; ok {
		return l
	}

	l := &Logger{component: component}
	globalState.loggers[component] = l
	return l
}

// sinkFor builds and caches the sinks for component.
func (s *state) sinkFor(component string) sinks {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cached, ok := s.sinks[component]; ok {
		return cached
	}
	if !s.initialized {
		return sinks{}
	}

	level := s.level
	if lvl, ok := s.components[component]; ok {
		level = lvl
	}

	out := sinks{
		file: log.NewWithOptions(s.writer, log.Options{
			Level:           level.charm(),
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          component,
			Formatter:       s.formatter,
		}).With(s.fields...),
	}

	if s.consoleEnabled {
		out.console = log.NewWithOptions(s.console, log.Options{
			Level:           s.consoleLevel.charm(),
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
			Prefix:          component,
		})
	}

	s.sinks[component] = out
	return out
}

// Close flushes and closes the log file. Loggers go silent again.
func Close() error {
	globalState.mu.Lock()
	defer globalState.mu.Unlock()

	if !globalState.initialized {
		return nil
	}

	globalState.initialized = false
	globalState.sinks = make(map[string]sinks)

	if globalState.writer != nil {
		w := globalState.writer
		globalState.writer = nil
		if err := w.Close(); err != nil {
			return fmt.Errorf("closing log writer: %w", err)
		}
	}

	return nil
}

// Path returns the file currently being written, or "" before Init.
func Path() string {
	globalState.mu.RLock()
	defer globalState.mu.RUnlock()

	if globalState.writer == nil {
		return ""
	}
	return globalState.writer.path
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Level:    config.DefaultLogLevel,
		Path:     config.DefaultLogPath(),
		Rotation: DefaultRotationConfig(),
	}
}
