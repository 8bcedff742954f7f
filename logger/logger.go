package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Nuevo construye el registrador según el entorno: JSON en producción,
// consola coloreada en desarrollo. LOG_LEVEL en el entorno lo ajusta.
func Nuevo(entorno string) (*zap.Logger, error) {
	var config zap.Config

	if entorno == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if nivel := os.Getenv("LOG_LEVEL"); nivel != "" {
		var l zapcore.Level
		if err := l.UnmarshalText([]byte(nivel)); err == nil {
			config.Level.SetLevel(l)
		}
	}

	return config.Build()
}
