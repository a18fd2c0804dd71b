// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// LogConfig holds logger settings shared by every subcommand.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

// ConvertConfig holds settings for the image-to-PDF converter.
type ConvertConfig struct {
	// Extension is the image extension to scan for, without the dot (default "png").
	Extension string `json:"extension" yaml:"extension" mapstructure:"extension"`

	// OutputDir is the subdirectory of the input directory that receives
	// the PDFs (default "output").
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`
}

// SplitConfig holds settings for the bill splitter.
type SplitConfig struct {
	// ReportDir is where bill_<Month>.txt is written (default ~/Desktop).
	ReportDir string `json:"report_dir" yaml:"report_dir" mapstructure:"report_dir"`

	// HistoryDB is the SQLite file recording past splits
	// (default ~/.config/deskkit/history.db).
	HistoryDB string `json:"history_db" yaml:"history_db" mapstructure:"history_db"`

	// Open controls whether the report is opened in the default viewer.
	Open bool `json:"open" yaml:"open" mapstructure:"open"`
}

// MergeConfig holds settings for the PDF merger.
type MergeConfig struct {
	// Backup copies each parent to <parent>.bak before it is replaced.
	Backup bool `json:"backup" yaml:"backup" mapstructure:"backup"`
}

// Config groups the settings of all subcommands.
type Config struct {
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
	Convert ConvertConfig `json:"convert" yaml:"convert" mapstructure:"convert"`
	Split   SplitConfig   `json:"split" yaml:"split" mapstructure:"split"`
	Merge   MergeConfig   `json:"merge" yaml:"merge" mapstructure:"merge"`
}
