// Package log provides the process-wide zap logger used by seasonswap.
package log

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
)

var (
	mu         sync.RWMutex
	log        *zap.SugaredLogger
	baseLogger *zap.Logger
)

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

	Set(zapLogger)
	return nil
}

// Set replaces the package-level logger. Tests use it with zap.NewNop or zaptest.
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	baseLogger = l
	log = l.Sugar()
}

// GetZapLogger returns the base zap logger
func GetZapLogger() *zap.Logger {
	return ensure().Desugar()
}

// GetSugaredLogger returns the sugared logger handed to components at construction
func GetSugaredLogger() *zap.SugaredLogger {
	return ensure()
}

func ensure() *zap.SugaredLogger {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if log == nil {
		// Fallback logger if not initialized
		baseLogger, _ = zap.NewProduction(zap.AddCallerSkip(1))
		log = baseLogger.Sugar()
	}
	return log
}

// Sync flushes any buffered log entries
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	if log != nil {
		_ = log.Sync()
	}
}

func Debugf(template string, args ...interface{}) {
	ensure().Debugf(template, args...)
}

func Debugw(msg string, keysAndValues ...interface{}) {
	ensure().Debugw(msg, keysAndValues...)
}

func Info(args ...interface{}) {
	ensure().Info(args...)
}

func Infof(template string, args ...interface{}) {
	ensure().Infof(template, args...)
}

func Infow(msg string, keysAndValues ...interface{}) {
	ensure().Infow(msg, keysAndValues...)
}

func Warn(args ...interface{}) {
	ensure().Warn(args...)
}

func Warnf(template string, args ...interface{}) {
	ensure().Warnf(template, args...)
}

func Error(args ...interface{}) {
	ensure().Error(args...)
}

func Errorf(template string, args ...interface{}) {
	ensure().Errorf(template, args...)
}

func Errorw(msg string, keysAndValues ...interface{}) {
	ensure().Errorw(msg, keysAndValues...)
}

func Fatalf(template string, args ...interface{}) {
	ensure().Fatalf(template, args...)
	os.Exit(1)
}
