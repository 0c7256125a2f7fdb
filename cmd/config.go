package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/josephgoksu/todopro/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	configName = ".todopro"
	envPrefix  = "TODOPRO"
	// projectConfigDir is searched first for the config file.
	projectConfigDir = ".todopro"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single instance of Validate, it caches struct info
var validate = validator.New(validator.WithRequiredStructEnabled())

// setDefaults registers every key so env vars and Unmarshal can see it.
func setDefaults() {
	viper.SetDefault("project.rootDir", ".")
	viper.SetDefault("data.file", "tasks.json")
	viper.SetDefault("data.format", "json")
	viper.SetDefault("data.verifyChecksum", true)
	viper.SetDefault("export.file", "tasks_export.csv")
	viper.SetDefault("export.format", "csv")
	viper.SetDefault("log.file", "")
	viper.SetDefault("log.maxSizeMB", 10)
	viper.SetDefault("log.maxBackups", 3)
	viper.SetDefault("log.maxAgeDays", 28)
	viper.SetDefault("log.compress", false)
}

// InitConfig reads in the config file, .env and TODOPRO_* environment variables.
// Precedence is flags, then environment, then the config file, then defaults.
func InitConfig() error {
	// It's okay if .env file doesn't exist.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix) // e.g., TODOPRO_DATA_FORMAT
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if info, err := os.Stat(projectConfigDir); err == nil && info.IsDir() {
			viper.AddConfigPath(projectConfigDir) // ./.todopro/.todopro.yaml
		}
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home) // $HOME/.todopro.yaml
		}
		viper.AddConfigPath(".") // ./.todopro.yaml
		viper.SetConfigName(configName)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case cfgFile != "":
			// A file named on the command line must exist.
			return fmt.Errorf("read config file %s: %w", cfgFile, err)
		case !errors.As(err, &notFound):
			return fmt.Errorf("read config file %s: %w", viper.ConfigFileUsed(), err)
		}
		log.Debug().Msg("no config file found, using defaults and environment")
	} else {
		log.Debug().Str("file", viper.ConfigFileUsed()).Msg("using config file")
	}

	var cfg types.AppConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Data.Format = strings.ToLower(strings.TrimSpace(cfg.Data.Format))
	cfg.Export.Format = strings.ToLower(strings.TrimSpace(cfg.Export.Format))

	if err := validateAppConfig(&cfg); err != nil {
		return err
	}
	GlobalAppConfig = cfg
	return nil
}

// validateAppConfig performs validation on the AppConfig struct and reports
// the first problem as a *types.ValidationError.
func validateAppConfig(cfg *types.AppConfig) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := strings.TrimPrefix(fe.Namespace(), "AppConfig.")
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "oneof":
			msg = fmt.Sprintf("must be one of %s, got %q", fe.Param(), fmt.Sprint(fe.Value()))
		case "min":
			msg = fmt.Sprintf("must be at least %s", fe.Param())
		default:
			msg = fmt.Sprintf("failed %q check", fe.Tag())
		}
		return types.NewValidationError("config "+field, msg)
	}
	return fmt.Errorf("validate config: %w", err)
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}
