// Package logger provides structured logging for the library engine and
// its HTTP daemon.
//
// The logger supports five severity levels (TRACE, DEBUG, INFO, WARN,
// ERROR) and stamps each line with the calling function, file, and line
// number. Level checks are atomic so a disabled level costs a single
// load, which matters on hot paths like the query compiler and refresh
// scanner.
//
// Output format:
//
//	YYYY/MM/DD HH:MM:SS.ssssss [PID:GID] [LEVEL] function.file:line: message
package logger

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

// LogLevel is the severity of a log message. Higher values are more
// severe; setting a level silences everything below it.
type LogLevel int32

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
)

var (
	currentLevel atomic.Int32

	levelNames = map[LogLevel]string{
		TRACE: "TRACE",
		DEBUG: "DEBUG",
		INFO:  "INFO",
		WARN:  "WARN",
		ERROR: "ERROR",
	}

	processID = os.Getpid()

	stdLogger *log.Logger
)

func init() {
	stdLogger = log.New(os.Stdout, "", 0)
	currentLevel.Store(int32(INFO))
}

// SetLevel sets the minimum level that will be emitted.
func SetLevel(level string) error {
	switch strings.ToUpper(level) {
	case "TRACE":
		currentLevel.Store(int32(TRACE))
	case "DEBUG":
		currentLevel.Store(int32(DEBUG))
	case "INFO":
		currentLevel.Store(int32(INFO))
	case "WARN":
		currentLevel.Store(int32(WARN))
	case "ERROR":
		currentLevel.Store(int32(ERROR))
	default:
		return fmt.Errorf("invalid log level: %s", level)
	}
	return nil
}

// Level returns the current minimum level as a string.
func Level() string {
	return levelNames[LogLevel(currentLevel.Load())]
}

func formatMessage(level LogLevel, skip int, format string, args ...interface{}) string {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		file = "unknown"
		line = 0
	}
	if idx := strings.LastIndex(file, "/"); idx != -1 {
		file = file[idx+1:]
	}
	if idx := strings.LastIndex(file, ".go"); idx != -1 {
		file = file[:idx]
	}

	funcName := "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		fullName := fn.Name()
		if idx := strings.LastIndex(fullName, "."); idx != -1 {
			funcName = fullName[idx+1:]
		}
	}

	msg := fmt.Sprintf(format, args...)
	threadID := goroutineID()
	timestamp := time.Now().Format("2006/01/02 15:04:05.000000")
	return fmt.Sprintf("%s [%d:%d] [%s] %s.%s:%d: %s",
		timestamp, processID, threadID, levelNames[level], funcName, file, line, msg)
}

func goroutineID() int {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := strings.Fields(string(buf[:n]))
	if len(fields) < 2 {
		return 0
	}
	id := 0
	fmt.Sscanf(fields[1], "%d", &id)
	return id
}

func logMessage(level LogLevel, skip int, format string, args ...interface{}) {
	if level < LogLevel(currentLevel.Load()) {
		return
	}
	stdLogger.Println(formatMessage(level, skip, format, args...))
}

// Tracef logs at TRACE.
func Tracef(format string, args ...interface{}) { logMessage(TRACE, 3, format, args...) }

// Debugf logs at DEBUG.
func Debugf(format string, args ...interface{}) { logMessage(DEBUG, 3, format, args...) }

// Infof logs at INFO.
func Infof(format string, args ...interface{}) { logMessage(INFO, 3, format, args...) }

// Warnf logs at WARN.
func Warnf(format string, args ...interface{}) { logMessage(WARN, 3, format, args...) }

// Errorf logs at ERROR.
func Errorf(format string, args ...interface{}) { logMessage(ERROR, 3, format, args...) }

// Fatalf logs at ERROR and exits the process.
func Fatalf(format string, args ...interface{}) {
	stdLogger.Println(formatMessage(ERROR, 2, format, args...))
	os.Exit(1)
}

// Configure applies TAGSTUDIO_LOG_LEVEL from the environment, if set.
func Configure() {
	if level := os.Getenv("TAGSTUDIO_LOG_LEVEL"); level != "" {
		if err := SetLevel(level); err != nil {
			Warnf("ignoring %s: %v", "TAGSTUDIO_LOG_LEVEL", err)
		}
	}
}
