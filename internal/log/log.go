// Package log provides centralized logging functionality using zap logger.
package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

var log *zap.SugaredLogger

// Init initializes the package-level logger
func Init(debug bool) error {
	var zapLogger *zap.Logger
	var err error

	if debug {
		zapLogger, err = zap.NewDevelopment(zap.AddCallerSkip(1))
	} else {
		zapLogger, err = zap.NewProduction(zap.AddCallerSkip(1))
	}
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %v", err)
	}

	log = zapLogger.Sugar()
	return nil
}

// GetSugaredLogger returns the sugared logger instance. Components take the
// returned logger in their constructors; the caller-skip of the package
// logger is removed so their call sites are reported correctly.
func GetSugaredLogger() *zap.SugaredLogger {
	return ensure().WithOptions(zap.AddCallerSkip(-1))
}

func ensure() *zap.SugaredLogger {
	if log == nil {
		// Fallback logger if not initialized
		zapLogger, _ := zap.NewProduction(zap.AddCallerSkip(1))
		log = zapLogger.Sugar()
	}
	return log
}

// Sync flushes any buffered log entries
func Sync() {
	if log != nil {
		log.Sync()
	}
}

// Package-level convenience functions
func Debugf(template string, args ...interface{}) {
	ensure().Debugf(template, args...)
}

func Infof(template string, args ...interface{}) {
	ensure().Infof(template, args...)
}

func Warnf(template string, args ...interface{}) {
	ensure().Warnf(template, args...)
}

func Errorf(template string, args ...interface{}) {
	ensure().Errorf(template, args...)
}

func Fatalf(template string, args ...interface{}) {
	ensure().Fatalf(template, args...)
	os.Exit(1)
}
