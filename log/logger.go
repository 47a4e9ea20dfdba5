// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package log adapts go.uber.org/zap to the github.com/luxfi/log.Logger
// contract so the rest of the validator can depend on the interface instead
// of a concrete logging library. New builds the production logger; Discard
// (in noop.go) returns luxfi/log's own no-op implementation for tests.
package log

import (
	"context"
	stdlog "log/slog"
	"os"

	"github.com/luxfi/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// zapLogger implements log.Logger over a *zap.Logger. ctx pairs passed to
// the Geth-style methods (Info, Warn, ...) are treated as alternating
// key/value arguments, matching how the rest of the codebase calls them.
type zapLogger struct {
	z     *zap.Logger
	level zap.AtomicLevel
}

// New builds a production logger writing structured JSON to stderr. When
// logFile is non-empty, output is additionally rotated to disk via
// lumberjack (100MB files, 7 backups, 28 days, compressed).
func New(logFile string) log.Logger {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	writers := []zapcore.WriteSyncer{zapcore.AddSync(os.Stderr)}
	if logFile != "" {
		writers = append(writers, zapcore.AddSync(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    100,
			MaxBackups: 7,
			MaxAge:     28,
			Compress:   true,
		}))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(writers...), level)
	z := zap.New(core, zap.AddCaller())
	return &zapLogger{z: z, level: level}
}

func pairsToFields(ctx []interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(ctx)/2)
	for i := 0; i+1 < len(ctx); i += 2 {
		key, ok := ctx[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, ctx[i+1]))
	}
	return fields
}

func (l *zapLogger) With(ctx ...interface{}) log.Logger {
	return &zapLogger{z: l.z.With(pairsToFields(ctx)...), level: l.level}
}

func (l *zapLogger) New(ctx ...interface{}) log.Logger { return l.With(ctx...) }

func (l *zapLogger) Log(level stdlog.Level, msg string, ctx ...interface{}) {
	switch {
	case level >= stdlog.LevelError:
		l.Error(msg, ctx...)
	case level >= stdlog.LevelWarn:
		l.Warn(msg, ctx...)
	case level >= stdlog.LevelInfo:
		l.Info(msg, ctx...)
	default:
		l.Debug(msg, ctx...)
	}
}

func (l *zapLogger) Trace(msg string, ctx ...interface{}) { l.z.Debug(msg, pairsToFields(ctx)...) }
func (l *zapLogger) Debug(msg string, ctx ...interface{}) { l.z.Debug(msg, pairsToFields(ctx)...) }
func (l *zapLogger) Info(msg string, ctx ...interface{})  { l.z.Info(msg, pairsToFields(ctx)...) }
func (l *zapLogger) Warn(msg string, ctx ...interface{})  { l.z.Warn(msg, pairsToFields(ctx)...) }
func (l *zapLogger) Error(msg string, ctx ...interface{}) { l.z.Error(msg, pairsToFields(ctx)...) }
func (l *zapLogger) Crit(msg string, ctx ...interface{})  { l.z.Error(msg, pairsToFields(ctx)...) }

func (l *zapLogger) WriteLog(level stdlog.Level, msg string, attrs ...any) {
	l.Log(level, msg, attrs...)
}

func (l *zapLogger) Enabled(_ context.Context, level stdlog.Level) bool {
	return l.level.Enabled(zapcore.Level(level / 4 - 2))
}

func (l *zapLogger) Handler() stdlog.Handler { return nil }

func (l *zapLogger) Fatal(msg string, fields ...zap.Field) { l.z.Fatal(msg, fields...) }
func (l *zapLogger) Verbo(msg string, fields ...zap.Field) { l.z.Debug(msg, fields...) }

func (l *zapLogger) WithFields(fields ...zap.Field) log.Logger {
	return &zapLogger{z: l.z.With(fields...), level: l.level}
}

func (l *zapLogger) WithOptions(opts ...zap.Option) log.Logger {
	return &zapLogger{z: l.z.WithOptions(opts...), level: l.level}
}

func (l *zapLogger) SetLevel(level stdlog.Level) { l.level.SetLevel(zapcore.Level(level/4 - 2)) }
func (l *zapLogger) GetLevel() stdlog.Level       { return stdlog.Level((int(l.level.Level()) + 2) * 4) }
func (l *zapLogger) EnabledLevel(lvl stdlog.Level) bool { return l.Enabled(context.Background(), lvl) }

func (l *zapLogger) StopOnPanic() {}

func (l *zapLogger) RecoverAndPanic(f func()) {
	defer func() {
		if r := recover(); r != nil {
			l.z.Sync()
			panic(r)
		}
	}()
	f()
}

func (l *zapLogger) RecoverAndExit(f, exit func()) {
	defer func() {
		if r := recover(); r != nil {
			l.Error("recovered from panic", "panic", r)
			l.z.Sync()
			exit()
		}
	}()
	f()
}

func (l *zapLogger) Stop() { _ = l.z.Sync() }

func (l *zapLogger) Write(p []byte) (int, error) {
	l.z.Info(string(p))
	return len(p), nil
}
