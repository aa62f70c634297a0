package adventure

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the structured logger used across the game. Level is one
// of debug, info, warn or error; an empty level means info. Debug output uses
// the console encoder, everything else JSON.
func NewLogger(level string) (*zap.Logger, error) {
	zapLevel := zapcore.InfoLevel
	if level != "" {
		if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("adventure: invalid log level %q: %w", level, err)
		}
	}

	encoding := "json"
	encoderConfig := zap.NewProductionEncoderConfig()
	if zapLevel == zapcore.DebugLevel {
		encoding = "console"
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("adventure: build logger: %w", err)
	}
	return logger.Named("adventure"), nil
}
