// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the deskkit CLI: a scanned-image to
// PDF converter, a monthly bill splitter, and a PDF merger.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/deskkit/internal/logging"
	"github.com/pdiddy/deskkit/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is the resolved configuration, filled before any subcommand runs.
	cfg types.Config
	// logger carries per-item status lines to stderr.
	logger *log.Logger
	// configErr holds a config file that exists but could not be read.
	configErr error
)

// rootCmd is the base command for the deskkit CLI.
var rootCmd = &cobra.Command{
	Use:   "deskkit",
	Short: "Small desktop utilities for scans, bills and PDFs",
	Long: `deskkit bundles three small desktop utilities.

convert enhances scanned images and writes each as a single-page PDF.
split divides monthly bills among the people who share them and saves a
report. merge appends child PDFs onto parent PDFs with the same file name.

Each tool prompts for anything not given by flags or configuration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configErr != nil {
			return configErr
		}
		c, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = c

		l, err := logging.New(logging.Config{Level: cfg.Log.Level})
		if err != nil {
			return err
		}
		logger = l
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug("using config file", "path", used)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./deskkit.yaml or ~/.config/deskkit/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().Bool("plain", false, "use plain line prompts even on a terminal")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.SetDefault("convert.extension", "png")
	viper.SetDefault("convert.output_dir", "output")
	viper.SetDefault("split.open", true)
	viper.SetDefault("merge.backup", false)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("deskkit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "deskkit"))
		}
	}

	viper.SetEnvPrefix("DESKKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			configErr = fmt.Errorf("reading config: %w", err)
		}
	}
}

// loadConfig decodes the merged flag, env, file and default values.
func loadConfig() (types.Config, error) {
	var c types.Config
	if err := viper.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decoding config: %w", err)
	}
	return c, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
