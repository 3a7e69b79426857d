// Package logger provides structured logging for the SDK
package logger

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	globalLogger *zap.Logger
	once         sync.Once
)

// contextKey is the type for context keys
type contextKey string

const (
	// StoreIDKey is the context key for the store a message belongs to
	StoreIDKey contextKey = "store_id"
	// EntityPathKey is the context key for the entity being logged
	EntityPathKey contextKey = "entity_path"
	// RecordingKey is the context key for the recording file name
	RecordingKey contextKey = "recording"
)

// Config represents logger configuration
type Config struct {
	Level       string   `yaml:"level" mapstructure:"level"`
	Development bool     `yaml:"development" mapstructure:"development"`
	Encoding    string   `yaml:"encoding" mapstructure:"encoding"` // json or console
	OutputPaths []string `yaml:"output_paths" mapstructure:"output_paths"`
}

// Init initializes the global logger
func Init(cfg Config) error {
	var err error
	once.Do(func() {
		globalLogger, err = New(cfg)
	})
	return err
}

// New creates a zap logger from cfg without touching the global logger.
func New(cfg Config) (*zap.Logger, error) {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	if cfg.Encoding == "" {
		cfg.Encoding = "json"
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	if cfg.Development {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	// stdout is left to command output and encoded streams
	outputPaths := cfg.OutputPaths
	if len(outputPaths) == 0 {
		outputPaths = []string{"stderr"}
	}

	zapCfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      cfg.Development,
		Encoding:         cfg.Encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      outputPaths,
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	if cfg.Development {
		logger = logger.WithOptions(zap.AddStacktrace(zapcore.ErrorLevel))
	}

	return logger, nil
}

// Get returns the global logger
func Get() *zap.Logger {
	if globalLogger == nil {
		if err := Init(Config{Level: "info", Encoding: "json"}); err != nil || globalLogger == nil {
			logger, _ := zap.NewProduction()
			globalLogger = logger
		}
	}
	return globalLogger
}

// ContextWithStoreID attaches a store id to ctx for WithContext.
func ContextWithStoreID(ctx context.Context, storeID string) context.Context {
	return context.WithValue(ctx, StoreIDKey, storeID)
}

// ContextWithEntityPath attaches an entity path to ctx for WithContext.
func ContextWithEntityPath(ctx context.Context, entityPath string) context.Context {
	return context.WithValue(ctx, EntityPathKey, entityPath)
}

// ContextWithRecording attaches a recording name to ctx for WithContext.
func ContextWithRecording(ctx context.Context, recording string) context.Context {
	return context.WithValue(ctx, RecordingKey, recording)
}

// WithContext returns base (or the global logger if base is nil) annotated
// with the context values
func WithContext(ctx context.Context, base *zap.Logger) *zap.Logger {
	logger := base
	if logger == nil {
		logger = Get()
	}

	if storeID, ok := ctx.Value(StoreIDKey).(string); ok {
		logger = logger.With(zap.String("store_id", storeID))
	}

	if entityPath, ok := ctx.Value(EntityPathKey).(string); ok {
		logger = logger.With(zap.String("entity_path", entityPath))
	}

	if recording, ok := ctx.Value(RecordingKey).(string); ok {
		logger = logger.With(zap.String("recording", recording))
	}

	return logger
}
