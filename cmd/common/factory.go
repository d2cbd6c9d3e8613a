package common

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/trovehq/prowler/internal/config"
	"github.com/trovehq/prowler/internal/logger"
)

// NewCommandDeps creates CommandDeps by loading config and creating the
// logger. This consolidates the common initialization every command needs.
func NewCommandDeps() (CommandDeps, error) {
	cfg := config.LoadFromViper()

	logLevel := viper.GetString("logger.level")
	if logLevel == "" {
		logLevel = "info"
	}

	logCfg := &logger.Config{
		Level:       logger.Level(strings.ToLower(logLevel)),
		Development: viper.GetBool("logger.development"),
		Encoding:    viper.GetString("logger.encoding"),
	}

	log, err := logger.New(logCfg)
	if err != nil {
		return CommandDeps{}, fmt.Errorf("create logger: %w", err)
	}

	deps := CommandDeps{
		Logger: log,
		Config: cfg,
	}

	if validateErr := deps.Validate(); validateErr != nil {
		return CommandDeps{}, fmt.Errorf("validate deps: %w", validateErr)
	}

	return deps, nil
}
