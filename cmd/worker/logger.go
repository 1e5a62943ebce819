package main

import (
	"go.uber.org/zap"

	"github.com/netcreators/occupancy-audit-worker/internal/config"
	"github.com/netcreators/occupancy-audit-worker/internal/logging"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.NewLogger(cfg.ServiceName)
}
