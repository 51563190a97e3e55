// Copyright (c) 2025 DifyForge Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/difyforge/difykb-go/configs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var gLogger *Logger

type Logger struct {
	logger *zap.Logger
	level  zapcore.Level
}

func init() {
	gLogger = NewLogger(-2)
}

func NewLogger(level zapcore.Level) *Logger {
	var err error
	if level < zapcore.DebugLevel {
		level, err = zapcore.ParseLevel(configs.GetGlobalConfig().Logging.Level)
		if err != nil {
			level = zapcore.InfoLevel
		}
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "LOGGING",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	writeSyncer := zapcore.AddSync(os.Stdout)

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		writeSyncer,
		level,
	)

	return &Logger{
		logger: zap.New(core, zap.AddCaller()),
		level:  level,
	}
}

func Debug(msg string, args ...interface{}) {
	fields, err := toZapFields(args...)
	if err != nil {
		gLogger.logger.Debug(msg, append(fields, zap.Error(err))...)
		return
	}
	gLogger.logger.Debug(msg, fields...)
}

func Info(msg string, args ...interface{}) {
	fields, err := toZapFields(args...)
	if err != nil {
		gLogger.logger.Info(msg, append(fields, zap.Error(err))...)
		return
	}
	gLogger.logger.Info(msg, fields...)
}

func Warn(msg string, args ...interface{}) {
	fields, err := toZapFields(args...)
	if err != nil {
		gLogger.logger.Warn(msg, append(fields, zap.Error(err))...)
		return
	}
	gLogger.logger.Warn(msg, fields...)
}

func Error(msg string, args ...interface{}) {
	fields, err := toZapFields(args...)
	if err != nil {
		gLogger.logger.Error(msg, append(fields, zap.Error(err))...)
		return
	}
	gLogger.logger.Error(msg, fields...)
}

func Debugf(format string, args ...interface{}) {
	gLogger.logger.Debug(fmt.Sprintf(format, args...))
}

func Infof(format string, args ...interface{}) {
	gLogger.logger.Info(fmt.Sprintf(format, args...))
}

func Warnf(format string, args ...interface{}) {
	gLogger.logger.Warn(fmt.Sprintf(format, args...))
}

func Errorf(format string, args ...interface{}) {
	gLogger.logger.Error(fmt.Sprintf(format, args...))
}

func toZapFields(args ...interface{}) ([]zapcore.Field, error) {
	var fields []zapcore.Field
	if len(args)%2 != 0 {
		return fields, errors.New("invalid number of arguments: must be even (key-value pairs)")
	}

	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			return fields, fmt.Errorf("argument at index %d is not a string key", i)
		}
		value := args[i+1]
		field := toZapField(key, value)
		fields = append(fields, field)
	}
	return fields, nil
}

func toZapField(key string, value interface{}) zapcore.Field {
	if value == nil {
		return zap.String(key, "nil")
	}

	val := reflect.ValueOf(value)
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return zap.String(key, "nil")
		}
		val = val.Elem()
	}

	if err, ok := value.(error); ok {
		return zap.Error(err)
	}

	switch val.Kind() {
	case reflect.String:
		return zap.String(key, val.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return zap.Int64(key, val.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return zap.Uint64(key, val.Uint())
	case reflect.Float32, reflect.Float64:
		return zap.Float64(key, val.Float())
	case reflect.Bool:
		return zap.Bool(key, val.Bool())
	default:
		return zap.Any(key, value)
	}
}
