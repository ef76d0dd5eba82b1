// Package logger provides centralized logging using arbor.
package logger

import (
	"strings"
	"sync"

	"github.com/ternarybob/arbor"
	arborcommon "github.com/ternarybob/arbor/common"
	"github.com/ternarybob/arbor/models"
	"github.com/ternarybob/constgen/internal/config"
)

var (
	globalLogger arbor.ILogger
	loggerMutex  sync.RWMutex
)

// GetLogger returns the global logger instance.
// If SetupLogger() hasn't been called yet, returns a console logger at the
// default level.
func GetLogger() arbor.ILogger {
	loggerMutex.RLock()
	if globalLogger != nil {
		loggerMutex.RUnlock()
		return globalLogger
	}
	loggerMutex.RUnlock()

	loggerMutex.Lock()
	defer loggerMutex.Unlock()

	// Double-check after acquiring write lock
	if globalLogger == nil {
		defaults := config.DefaultConfig()
		globalLogger = arbor.NewLogger().
			WithConsoleWriter(createWriterConfig(defaults)).
			WithLevelFromString(defaults.Logging.Level)
	}
	return globalLogger
}

// InitLogger stores the provided logger as the global singleton instance.
func InitLogger(logger arbor.ILogger) {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	globalLogger = logger
}

// SetupLogger configures and initializes the global logger based on configuration.
// Generators run inside builds, so output goes to the console only.
func SetupLogger(cfg *config.Config) arbor.ILogger {
	logger := arbor.NewLogger().
		WithConsoleWriter(createWriterConfig(cfg)).
		WithLevelFromString(strings.ToLower(cfg.Logging.Level))

	InitLogger(logger)
	return logger
}

// createWriterConfig creates the console writer configuration.
func createWriterConfig(cfg *config.Config) models.WriterConfiguration {
	// HH:MM:SS.mmm for alignment
	timeFormat := "15:04:05.000"
	if cfg.Logging.TimeFormat != "" {
		timeFormat = cfg.Logging.TimeFormat
	}

	outputType := models.OutputFormatLogfmt
	if cfg.Logging.Format == "json" {
		outputType = models.OutputFormatJSON
	}

	return models.WriterConfiguration{
		Type:             models.LogWriterTypeConsole,
		TimeFormat:       timeFormat,
		OutputType:       outputType,
		DisableTimestamp: false,
	}
}

// Stop flushes any remaining context logs before exit.
// Safe to call multiple times (Arbor's Stop is idempotent).
func Stop() {
	arborcommon.Stop()
}
