// Package common wires the dependencies every prowler command shares.
package common

import (
	"github.com/trovehq/prowler/internal/config"
	"github.com/trovehq/prowler/internal/logger"
)

// CommandDeps carries the logger and loaded configuration a command
// needs before it can touch the database or the pipeline.
type CommandDeps struct {
	Logger logger.Interface
	Config config.Interface
}

// Validate reports the first missing dependency.
func (d CommandDeps) Validate() error {
	if d.Logger == nil {
		return ErrLoggerRequired
	}
	if d.Config == nil {
		return ErrConfigRequired
	}
	return nil
}
