package log

import "os"

var defaultLogger = DevLogger(os.Stderr, InfoLevel)

// Default returns the process-wide logger.
func Default() *Logger { return defaultLogger }

// ResetDefault replaces the process-wide logger. Commands call this once
// after parsing log flags.
func ResetDefault(l *Logger) { defaultLogger = l }

func Debug(msg string, fields ...Field) { defaultLogger.Debug(msg, fields...) }
func Info(msg string, fields ...Field)  { defaultLogger.Info(msg, fields...) }
func Warn(msg string, fields ...Field)  { defaultLogger.Warn(msg, fields...) }
func Error(msg string, fields ...Field) { defaultLogger.Error(msg, fields...) }
func Fatal(msg string, fields ...Field) { defaultLogger.Fatal(msg, fields...) }
