// Package logging a simple leveled logger with optional file rotation and gelf output
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/aphistic/golf"
	"gopkg.in/natefinch/lumberjack.v2"
)

// log levels
const (
	Debug int = iota
	Info
	Alert
	Error
	Fatal
)

var levels = []string{"DEBUG", "INFO", "ALERT", "ERROR", "FATAL"}

// Config configuration of the service logger
type Config struct {
	Level    string `yaml:"level" toml:"level"`
	Filename string `yaml:"filename" toml:"filename"`

	Gelfurl  string `yaml:"gelf-url" toml:"gelf-url"`
	Gelfport int    `yaml:"gelf-port" toml:"gelf-port"`
}

type sink struct {
	level  int
	out    *log.Logger
	file   io.WriteCloser
	gelfc  *golf.Client
	gelfl  *golf.Logger
	system string
	m      sync.Mutex
}

// ServiceLogger a named logger, all loggers share one sink
type ServiceLogger struct {
	name string
	s    *sink
}

var root = &sink{
	level:  Info,
	out:    log.New(os.Stdout, "", log.LstdFlags),
	system: "gotikameta",
}

// Logger the root logger of the service
var Logger = &ServiceLogger{s: root}

// New creates a new logger sharing the root sink
func New() *ServiceLogger {
	return &ServiceLogger{s: root}
}

// WithName returns a logger with the given component name
func (l *ServiceLogger) WithName(name string) *ServiceLogger {
	return &ServiceLogger{name: name, s: l.s}
}

// Init configures the root sink, level, rolling log file and gelf output
func Init(cfg Config) error {
	Logger.SetLevel(cfg.Level)
	if cfg.Filename != "" {
		Logger.SetFilename(cfg.Filename)
	}
	if cfg.Gelfurl != "" {
		return Logger.InitGelf(cfg.Gelfurl, cfg.Gelfport)
	}
	return nil
}

// SetLevel sets the level by name, unknown names fall back to INFO
func (l *ServiceLogger) SetLevel(level string) {
	l.s.m.Lock()
	defer l.s.m.Unlock()
	l.s.level = Info
	for x, n := range levels {
		if strings.EqualFold(n, level) {
			l.s.level = x
		}
	}
}

// Level returns the name of the actual level
func (l *ServiceLogger) Level() string {
	return levels[l.s.level]
}

// SetFilename writes the log additionally into a rotating log file
func (l *ServiceLogger) SetFilename(filename string) {
	l.s.m.Lock()
	defer l.s.m.Unlock()
	lj := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	l.s.file = lj
	l.s.out = log.New(io.MultiWriter(os.Stdout, lj), "", log.LstdFlags)
}

// InitGelf sends all log entries additionally to the gelf server
func (l *ServiceLogger) InitGelf(url string, port int) error {
	c, err := golf.NewClient()
	if err != nil {
		return err
	}
	if err := c.Dial(fmt.Sprintf("udp://%s:%d", url, port)); err != nil {
		c.Close()
		return err
	}
	gl, err := c.NewLogger()
	if err != nil {
		c.Close()
		return err
	}
	gl.SetAttr("system_id", l.s.system)
	l.s.m.Lock()
	defer l.s.m.Unlock()
	l.s.gelfc = c
	l.s.gelfl = gl
	return nil
}

// Debugf logs a formatted debug message
func (l *ServiceLogger) Debugf(format string, va ...any) {
	l.logf(Debug, format, va...)
}

// Debug logs a debug message
func (l *ServiceLogger) Debug(msg string) {
	l.logf(Debug, "%s", msg)
}

// Infof logs a formatted info message
func (l *ServiceLogger) Infof(format string, va ...any) {
	l.logf(Info, format, va...)
}

// Info logs an info message
func (l *ServiceLogger) Info(msg string) {
	l.logf(Info, "%s", msg)
}

// Alertf logs a formatted alert message
func (l *ServiceLogger) Alertf(format string, va ...any) {
	l.logf(Alert, format, va...)
}

// Alert logs an alert message
func (l *ServiceLogger) Alert(msg string) {
	l.logf(Alert, "%s", msg)
}

// Errorf logs a formatted error message
func (l *ServiceLogger) Errorf(format string, va ...any) {
	l.logf(Error, format, va...)
}

// Error logs an error message
func (l *ServiceLogger) Error(msg string) {
	l.logf(Error, "%s", msg)
}

// Fatalf logs a formatted message and exits the process
func (l *ServiceLogger) Fatalf(format string, va ...any) {
	l.logf(Fatal, format, va...)
	Logger.Close()
	os.Exit(1)
}

func (l *ServiceLogger) logf(level int, format string, va ...any) {
	l.s.m.Lock()
	defer l.s.m.Unlock()
	if level < l.s.level {
		return
	}
	msg := fmt.Sprintf(format, va...)
	if l.name != "" {
		msg = fmt.Sprintf("%s: %s", l.name, msg)
	}
	l.s.out.Printf("%s: %s", levels[level], msg)
	if l.s.gelfl != nil {
		switch level {
		case Debug:
			l.s.gelfl.Dbgf("%s", msg)
		case Info:
			l.s.gelfl.Infof("%s", msg)
		case Alert:
			l.s.gelfl.Alertf("%s", msg)
		default:
			l.s.gelfl.Errf("%s", msg)
		}
	}
}

// Close closes the log file and the gelf connection
func (l *ServiceLogger) Close() {
	l.s.m.Lock()
	defer l.s.m.Unlock()
	if l.s.gelfc != nil {
		l.s.gelfc.Close()
		l.s.gelfc = nil
		l.s.gelfl = nil
	}
	if l.s.file != nil {
		l.s.file.Close()
		l.s.file = nil
		l.s.out = log.New(os.Stdout, "", log.LstdFlags)
	}
}
