package logger

import (
	"go.uber.org/zap"
)

// convertToZapFields flattens the optional field maps and the error into
// Zap fields. Maps are applied in order, so later maps can repeat a key
// from an earlier one.
func convertToZapFields(err error, fields ...map[string]interface{}) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields)+1)
	for _, fieldMap := range fields {
		for key, value := range fieldMap {
			zapFields = append(zapFields, zap.Any(key, value))
		}
	}
	if err != nil {
		zapFields = append(zapFields, zap.Error(err))
	}
	return zapFields
}

// Debug logs a message at debug level.
func (l *Logger) Debug(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Debug(msg, convertToZapFields(err, fields...)...)
}

// Info logs a message at info level.
func (l *Logger) Info(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Info(msg, convertToZapFields(err, fields...)...)
}

// Warn logs a message at warning level.
func (l *Logger) Warn(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Warn(msg, convertToZapFields(err, fields...)...)
}

// Error logs a message at error level.
func (l *Logger) Error(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Error(msg, convertToZapFields(err, fields...)...)
}

// Fatal logs a message at fatal level and exits the process.
func (l *Logger) Fatal(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Fatal(msg, convertToZapFields(err, fields...)...)
}
