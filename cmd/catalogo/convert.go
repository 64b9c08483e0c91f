// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/catalogo/internal/convert"
	"github.com/pdiddy/catalogo/internal/rules"
	"github.com/pdiddy/catalogo/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert the catalog export into the product JSON",
	Long: `Convert reads the catalog export, skips rows without an article code,
derives variante, colore, formato and foto for every other row, sorts the
entries by code and writes them as an indented JSON array. The output file is
overwritten. A missing source file aborts the run before anything is written.`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	addConvertFlags(convertCmd)
	rootCmd.AddCommand(convertCmd)
}

// addConvertFlags registers the conversion flags. The root command carries
// them too because it runs a conversion when called without a subcommand.
func addConvertFlags(cmd *cobra.Command) {
	cmd.Flags().String("source", types.DefaultSourcePath, "catalog export to read (.tsv or .xlsx)")
	cmd.Flags().String("output", types.DefaultOutputPath, "JSON file to write")
	cmd.Flags().String("rules", "", "YAML file overriding the built-in rule tables")
	cmd.Flags().String("assets-root", "", "directory to check resolved photo paths against")
	cmd.Flags().Bool("dry-run", false, "print the JSON to stdout instead of writing the output file")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := converterConfig(cmd)
	if err != nil {
		return err
	}

	rs, err := loadRules(cfg.RulesPath)
	if err != nil {
		return err
	}

	result, err := convert.Run(cfg, rs, logger, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	logger.Debug("conversion finished",
		zap.Int("written", result.Written),
		zap.Int("skipped", result.Skipped),
		zap.Int("missing_assets", len(result.MissingAssets)))
	return nil
}

// converterConfig resolves the conversion settings from flags, environment
// and config file, in that order of precedence.
func converterConfig(cmd *cobra.Command) (types.ConverterConfig, error) {
	for key, flag := range map[string]string{
		"source":      "source",
		"output":      "output",
		"rules":       "rules",
		"assets_root": "assets-root",
		"dry_run":     "dry-run",
	} {
		if err := bindFlag(key, cmd, flag); err != nil {
			return types.ConverterConfig{}, err
		}
	}

	return types.ConverterConfig{
		SourcePath: viper.GetString("source"),
		OutputPath: viper.GetString("output"),
		RulesPath:  viper.GetString("rules"),
		AssetsRoot: viper.GetString("assets_root"),
		DryRun:     viper.GetBool("dry_run"),
	}, nil
}

// loadRules returns the built-in rules, or the rules file at path when set.
func loadRules(path string) (*rules.Rules, error) {
	if path == "" {
		return rules.Default(), nil
	}
	rs, err := rules.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("rules loaded", zap.String("path", path))
	return rs, nil
}
