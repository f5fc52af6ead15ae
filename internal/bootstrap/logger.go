package bootstrap

import (
	"go-hris-leave/internal/config"

	"go.uber.org/zap"
)

// NewLogger builds a production logger when APP_ENV=production and a
// development one otherwise, and installs it as the zap global.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}
