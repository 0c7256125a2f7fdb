/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	Quiet   bool          `mapstructure:"quiet"`
	Config  string        `mapstructure:"config"`
	Project ProjectConfig `mapstructure:"project" validate:"required"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
	Export  ExportConfig  `mapstructure:"export" validate:"required"`
	Log     LogConfig     `mapstructure:"log"`
}

// ProjectConfig holds project-related settings
type ProjectConfig struct {
	RootDir string `mapstructure:"rootDir" validate:"required"`
}

// DataConfig holds data storage configuration
type DataConfig struct {
	File           string `mapstructure:"file" validate:"required"`
	Format         string `mapstructure:"format" validate:"required,oneof=json yaml toml sqlite"`
	VerifyChecksum bool   `mapstructure:"verifyChecksum"`
}

// ExportConfig holds the default export destination.
type ExportConfig struct {
	File   string `mapstructure:"file" validate:"required"`
	Format string `mapstructure:"format" validate:"required,oneof=csv json yaml"`
}

// LogConfig controls the rotating log file. An empty File means the default
// location under the user's home directory.
type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"maxSizeMB" validate:"omitempty,min=1"`
	MaxBackups int    `mapstructure:"maxBackups" validate:"omitempty,min=0"`
	MaxAgeDays int    `mapstructure:"maxAgeDays" validate:"omitempty,min=0"`
	Compress   bool   `mapstructure:"compress"`
}
