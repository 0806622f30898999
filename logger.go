package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

var (
	logMu       sync.Mutex
	infoLogger  = log.New(os.Stdout, "", log.LstdFlags)
	errorLogger = log.New(os.Stderr, "", log.LstdFlags)
	debugLogger *log.Logger
	logFile     *os.File
)

// setupLogging configures the package loggers. When path is non-empty
// every logger also writes to that file.
func setupLogging(debug bool, path string) error {
	logMu.Lock()
	defer logMu.Unlock()

	out, errOut := io.Writer(os.Stdout), io.Writer(os.Stderr)
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("could not create log file: %w", err)
		}
		logFile = f
		out = io.MultiWriter(os.Stdout, f)
		errOut = io.MultiWriter(os.Stderr, f)
	}
	infoLogger = log.New(out, "", log.LstdFlags)
	errorLogger = log.New(errOut, "", log.LstdFlags)
	log.SetOutput(errorLogger.Writer())
	if debug {
		debugLogger = log.New(out, "debug: ", log.LstdFlags)
	} else {
		debugLogger = nil
	}
	return nil
}

func closeLogging() {
	logMu.Lock()
	defer logMu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

func logInfo(format string, v ...interface{}) {
	infoLogger.Printf(format, v...)
}

func logError(format string, v ...interface{}) {
	errorLogger.Printf(format, v...)
}

func logWarn(format string, v ...interface{}) {
	errorLogger.Printf("warning: %s", fmt.Sprintf(format, v...))
}

func logDebug(format string, v ...interface{}) {
	if debugLogger != nil {
		debugLogger.Printf(format, v...)
	}
}
