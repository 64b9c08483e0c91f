// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SourceFormat identifies the backend used to read the catalog export.
type SourceFormat string

const (
	FormatTSV  SourceFormat = "tsv"
	FormatXLSX SourceFormat = "xlsx"
)

// Default paths, relative to the working directory.
const (
	DefaultSourcePath = "data/catalogo_confezioni_2025.tsv"
	DefaultOutputPath = "data/prodotti.json"
)

// ConverterConfig holds settings for a conversion run.
type ConverterConfig struct {
	// SourcePath is the catalog export to read.
	SourcePath string `json:"source" yaml:"source" mapstructure:"source"`

	// OutputPath is the JSON file to write. It is overwritten on every run.
	OutputPath string `json:"output" yaml:"output" mapstructure:"output"`

	// RulesPath optionally points at a YAML file overriding the built-in
	// rule tables. Empty means built-in rules only.
	RulesPath string `json:"rules,omitempty" yaml:"rules,omitempty" mapstructure:"rules"`

	// AssetsRoot, when set, is the directory asset paths are checked against.
	// Missing assets are reported as warnings.
	AssetsRoot string `json:"assets_root,omitempty" yaml:"assets_root,omitempty" mapstructure:"assets_root"`

	// DryRun writes the JSON document to the progress writer instead of
	// OutputPath.
	DryRun bool `json:"dry_run" yaml:"dry_run" mapstructure:"dry_run"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is console or json (default console).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}
