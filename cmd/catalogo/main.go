// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the catalogo CLI. Run without
// arguments it converts the catalog export into the product JSON.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/catalogo/internal/logging"
	"github.com/pdiddy/catalogo/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built from the log settings before any command runs.
var logger = zap.NewNop()

// rootCmd is the base command for the catalogo CLI.
var rootCmd = &cobra.Command{
	Use:   "catalogo",
	Short: "Convert the catalog export into the product listing JSON",
	Long: `catalogo reads the tab-separated catalog export (or an .xlsx workbook),
derives variant labels, formats and photos for each article, and writes the
sorted product catalog as JSON.

Running catalogo with no subcommand is the same as running "catalogo convert".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := bindFlag("log.level", cmd, "log-level"); err != nil {
			return err
		}
		if err := bindFlag("log.format", cmd, "log-format"); err != nil {
			return err
		}
		l, err := logging.New(types.LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		})
		if err != nil {
			return err
		}
		logger = l
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug("using config file", zap.String("path", used))
		}
		return nil
	},
	RunE: runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./catalogo.yaml or ~/.config/catalogo/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "console", "log format: console or json")

	addConvertFlags(rootCmd)
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("catalogo")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "catalogo"))
		}
	}

	viper.SetEnvPrefix("CATALOGO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "warning: could not read config: %v\n", err)
		}
	}
}

// bindFlag binds the named flag of cmd to a viper key so that a flag set on
// the command line beats the environment, which beats the config file.
func bindFlag(key string, cmd *cobra.Command, name string) error {
	if err := viper.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
		return fmt.Errorf("binding flag %s: %w", name, err)
	}
	return nil
}

func main() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
