package logger_test

import (
	"errors"

	"github.com/wonny/screener/pkg/config"
	"github.com/wonny/screener/pkg/logger"
)

// Example_basic demonstrates basic logger usage
func Example_basic() {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "info",
		LogFormat: "console",
	}

	// Create logger (SSOT)
	log := logger.New(cfg)

	log.Debug("This won't appear (level is info)")
	log.Info("Screen started")
	log.Warnf("Retry attempt %d of %d", 1, 2)

	// Structured fields
	log.WithFields(map[string]interface{}{
		"symbol": "INFY.NS",
		"stage":  "extract",
	}).WithError(errors.New("timeout")).Warn("Sub-fetch failed")
}
