package logger

import (
	"os"

	"go.uber.org/zap"
)

var Log *zap.Logger = getLogger()

func getLogger() *zap.Logger {
	var log *zap.Logger
	var err error

	if os.Getenv("ENV") == "prod" {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}

	if err != nil {
		panic("Unable to get zapper")
	}
	return log
}

func Get() *zap.Logger {
	return Log
}

// Convenience wrappers. Declared as vars so tests can swap them out.
var Debug = func(msg string, fields ...zap.Field) {
	Log.Debug(msg, fields...)
}

var Info = func(msg string, fields ...zap.Field) {
	Log.Info(msg, fields...)
}

var Warn = func(msg string, fields ...zap.Field) {
	Log.Warn(msg, fields...)
}

var Error = func(msg string, fields ...zap.Field) {
	Log.Error(msg, fields...)
}

var Fatal = func(msg string, fields ...zap.Field) {
	Log.Fatal(msg, fields...)
}
