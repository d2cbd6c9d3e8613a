// Package cmd implements the command-line interface for Prowler.
// It provides the root command and subcommands for monitoring influencers
// and managing discovered products.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/trovehq/prowler/cmd/httpd"
	"github.com/trovehq/prowler/cmd/migrate"
	cmdmonitor "github.com/trovehq/prowler/cmd/monitor"
	"github.com/trovehq/prowler/cmd/process"
	"github.com/trovehq/prowler/cmd/watchlist"
	dbconfig "github.com/trovehq/prowler/internal/config/database"
	extractorcfg "github.com/trovehq/prowler/internal/config/extractor"
	monitorcfg "github.com/trovehq/prowler/internal/config/monitor"
	sourcecfg "github.com/trovehq/prowler/internal/config/source"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug mode for all commands
	Debug bool

	// rootCmd represents the root command for the Prowler CLI.
	rootCmd = &cobra.Command{
		Use:   "prowler",
		Short: "Influencer product monitoring",
		Long: `Prowler watches influencer accounts, extracts product mentions from
their posts with a language model and stores deduplicated products with
purchase links.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command
func Execute() error {
	// Load .env file early so environment variables are available
	_ = godotenv.Load()

	// Parse flags early to get debug flag before creating logger
	_ = rootCmd.ParseFlags(os.Args[1:])

	// Initialize configuration
	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	// Execute the root command with a fresh context
	return rootCmd.ExecuteContext(context.Background())
}

// init initializes the root command and its subcommands.
func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug mode")

	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("prowler version %s\n", "1.0.0")
		},
	})

	// Add subcommands
	rootCmd.AddCommand(cmdmonitor.Command())
	rootCmd.AddCommand(httpd.Command())
	rootCmd.AddCommand(process.Command())
	rootCmd.AddCommand(watchlist.NewWatchlistCommand())
	rootCmd.AddCommand(migrate.Command())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	// Set config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	// Enable automatic environment variable reading BEFORE setting defaults
	// so environment variables take precedence over defaults
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// Config file is optional; environment variables and defaults cover
	// a containerized deployment.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind command-line flags to Viper
	if err := bindCommandLineFlags(); err != nil {
		return err
	}

	// Map environment variables to config keys
	if err := bindEnvVars(); err != nil {
		return err
	}

	setupDevelopmentLogging()

	return nil
}

// bindCommandLineFlags binds command-line flags to Viper.
func bindCommandLineFlags() error {
	if err := viper.BindPFlag("app.debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("failed to bind debug flag: %w", err)
	}
	return nil
}

// bindEnvVars binds environment variables to config keys.
func bindEnvVars() error {
	bindings := map[string][]string{
		"app.environment":   {"APP_ENV"},
		"app.debug":         {"APP_DEBUG"},
		"logger.level":      {"LOG_LEVEL"},
		"logger.encoding":   {"LOG_FORMAT"},
		"source.token":      {"APIFY_TOKEN"},
		"extractor.api_key": {"ANTHROPIC_API_KEY"},
		"database.host":     {"DB_HOST"},
		"database.port":     {"DB_PORT"},
		"database.user":     {"DB_USER"},
		"database.password": {"DB_PASSWORD"},
		"database.dbname":   {"DB_NAME"},
		"database.sslmode":  {"DB_SSLMODE"},
		"server.address":    {"SERVER_ADDRESS"},
	}

	for key, envs := range bindings {
		args := append([]string{key}, envs...)
		if err := viper.BindEnv(args...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	return nil
}

// setupDevelopmentLogging configures development logging based on
// environment and the debug flag.
func setupDevelopmentLogging() {
	debugFlag := Debug || viper.GetBool("app.debug")
	isDev := viper.GetString("app.environment") == "development"

	if debugFlag {
		viper.Set("logger.level", "debug")
	}

	if isDev {
		viper.Set("logger.development", true)
		viper.Set("logger.encoding", "console")
	}

	Debug = debugFlag
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults - production safe
	viper.SetDefault("app", map[string]any{
		"name":        "prowler",
		"version":     "1.0.0",
		"environment": "production",
		"debug":       false,
	})

	// Logger defaults - production safe
	viper.SetDefault("logger", map[string]any{
		"level":       "info",
		"development": false,
		"encoding":    "json",
	})

	// Server defaults
	viper.SetDefault("server", map[string]any{
		"address":       ":8080",
		"read_timeout":  "15s",
		"write_timeout": "15s",
		"idle_timeout":  "60s",
	})

	// Database defaults
	viper.SetDefault("database", map[string]any{
		"host":    dbconfig.DefaultHost,
		"port":    dbconfig.DefaultPort,
		"sslmode": dbconfig.DefaultSSLMode,
	})

	// Content source defaults
	viper.SetDefault("source", map[string]any{
		"base_url":        sourcecfg.DefaultBaseURL,
		"request_timeout": sourcecfg.DefaultRequestTimeout.String(),
		"post_limit":      sourcecfg.DefaultPostLimit,
	})

	// Extractor defaults
	viper.SetDefault("extractor", map[string]any{
		"model":         extractorcfg.DefaultModel,
		"max_tokens":    extractorcfg.DefaultMaxTokens,
		"batch_size":    extractorcfg.DefaultBatchSize,
		"caption_limit": extractorcfg.DefaultCaptionLimit,
	})

	// Monitor loop defaults
	viper.SetDefault("monitor", map[string]any{
		"idle_poll_interval": monitorcfg.DefaultIdlePollInterval.String(),
		"influencer_delay":   monitorcfg.DefaultInfluencerDelay.String(),
	})
}
