package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// Settings 描述日志文件的位置，文件名为 Name-时间.Ext
type Settings struct {
	Path       string
	Name       string
	Ext        string
	TimeFormat string
}

type logLevel int

const (
	DEBUG logLevel = iota
	INFO
	WARNING
	ERROR
	FATAL
)

const (
	flags              = log.LstdFlags
	defaultPrefix      = ""
	defaultCallerDepth = 2
)

var (
	logFile    *os.File
	logger     *log.Logger
	mu         sync.Mutex
	minLevel   = INFO
	levelFlags = []string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}
)

func init() {
	logger = log.New(os.Stderr, defaultPrefix, flags)
}

// Setup 打开日志文件，之后的日志同时写入 stderr 和文件
func Setup(settings *Settings) error {
	mu.Lock()
	defer mu.Unlock()
	if err := os.MkdirAll(settings.Path, 0755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	timeFormat := settings.TimeFormat
	if timeFormat == "" {
		timeFormat = "2006-01-02"
	}
	name := fmt.Sprintf("%s-%s.%s", settings.Name, time.Now().Format(timeFormat), settings.Ext)
	file, err := os.OpenFile(filepath.Join(settings.Path, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = file
	logger = log.New(io.MultiWriter(os.Stderr, file), defaultPrefix, flags)
	return nil
}

// SetOutput 替换日志输出，主要用于测试
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(w, defaultPrefix, flags)
}

func SetLevel(level logLevel) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = level
}

func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	logger = log.New(os.Stderr, defaultPrefix, flags)
}

func setPrefix(level logLevel) {
	_, file, line, ok := runtime.Caller(defaultCallerDepth + 1)
	if ok {
		logger.SetPrefix(fmt.Sprintf("[%s][%s:%d] ", levelFlags[level], filepath.Base(file), line))
	} else {
		logger.SetPrefix(fmt.Sprintf("[%s] ", levelFlags[level]))
	}
}

func output(level logLevel, msg string) {
	mu.Lock()
	defer mu.Unlock()
	if level < minLevel {
		return
	}
	setPrefix(level)
	logger.Println(msg)
}

func Debug(v ...any) {
	output(DEBUG, fmt.Sprint(v...))
}

func Debugf(format string, v ...any) {
	output(DEBUG, fmt.Sprintf(format, v...))
}

func Info(v ...any) {
	output(INFO, fmt.Sprint(v...))
}

func Infof(format string, v ...any) {
	output(INFO, fmt.Sprintf(format, v...))
}

func Warn(v ...any) {
	output(WARNING, fmt.Sprint(v...))
}

func Error(v ...any) {
	output(ERROR, fmt.Sprint(v...))
}

func Errorf(format string, v ...any) {
	output(ERROR, fmt.Sprintf(format, v...))
}

func Fatal(v ...any) {
	output(FATAL, fmt.Sprint(v...))
	os.Exit(1)
}
