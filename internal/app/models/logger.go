package models

import "go.uber.org/zap"

// Logger is the leveled sink that entities and scrapers report to.
// *zap.Logger satisfies it.
type Logger interface {
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
}

func warn(log Logger, msg string, fields ...zap.Field) {
	if log == nil {
		return
	}
	log.Warn(msg, fields...)
}
