// Package cmd implements the command-line interface for data-vortex.
// It provides the root command and subcommands for crawling rental listings
// and inspecting the store.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matwasilewski/data-vortex/cmd/crawl"
	"github.com/matwasilewski/data-vortex/cmd/listings"
	"github.com/matwasilewski/data-vortex/cmd/schedule"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug mode for all commands.
	debug bool

	// rootCmd represents the root command for the data-vortex CLI.
	rootCmd = &cobra.Command{
		Use:   "datavortex",
		Short: "A rental-listing crawler",
		Long:  `Crawls rental property listings from search results and keeps a local store in sync.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Load .env early so environment variables are available to viper.
	_ = godotenv.Load()

	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug mode")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("datavortex version %s\n", viper.GetString("app.version"))
		},
	})

	rootCmd.AddCommand(crawl.Command())
	rootCmd.AddCommand(listings.Command())
	rootCmd.AddCommand(schedule.Command())
}

// initConfig reads in the config file and environment variables if set.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// The config file is optional; defaults and environment variables are
	// enough to run.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: config file not found: %v (using defaults and environment variables)\n", err)
	}

	if err := bindEnvVars(); err != nil {
		return err
	}

	if debug || viper.GetBool("app.debug") {
		viper.Set("logger.level", "debug")
		viper.Set("logger.development", true)
	}

	return nil
}

// bindEnvVars maps well-known environment variables to config keys.
func bindEnvVars() error {
	bindings := map[string][]string{
		"app.environment":   {"APP_ENV"},
		"app.debug":         {"APP_DEBUG"},
		"logger.level":      {"LOG_LEVEL"},
		"logger.encoding":   {"LOG_FORMAT"},
		"database.host":     {"DATABASE_HOST"},
		"database.port":     {"DATABASE_PORT"},
		"database.user":     {"DATABASE_USER"},
		"database.password": {"DATABASE_PASSWORD"},
		"database.dbname":   {"DATABASE_NAME"},
		"database.sslmode":  {"DATABASE_SSLMODE"},
		"archive.dir":       {"ARCHIVE_DIR"},
	}

	for key, envs := range bindings {
		if err := viper.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	return nil
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("app", map[string]any{
		"name":        "data-vortex",
		"version":     "1.0.0",
		"environment": "production",
		"debug":       false,
	})

	viper.SetDefault("logger", map[string]any{
		"level":       "info",
		"development": false,
		"encoding":    "json",
	})

	viper.SetDefault("database", map[string]any{
		"host":     "127.0.0.1",
		"port":     "5432",
		"user":     "vortex",
		"password": "",
		"dbname":   "vortex",
		"sslmode":  "disable",
	})

	viper.SetDefault("search", map[string]any{
		"request_timeout": "30s",
		"use_cache":       true,
		"cache_ttl":       "10m",
		"wait_time":       "1s",
	})

	viper.SetDefault("archive", map[string]any{
		"dir": "raw_data",
	})
}
