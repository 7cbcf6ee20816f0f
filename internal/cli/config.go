package cli

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/eav/internal/logging"
	"github.com/mesh-intelligence/eav/internal/paths"
	"github.com/mesh-intelligence/eav/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyBackend   = "backend"
	cfgKeyDataDir   = "data_dir"
	cfgKeyLogFormat = "log_format"
	cfgKeyLogLevel  = "log_level"

	defaultLogLevel = "info"
)

// fileConfig is the content of config.yaml.
type fileConfig struct {
	Backend   string `mapstructure:"backend" yaml:"backend"`
	DataDir   string `mapstructure:"data_dir" yaml:"data_dir,omitempty"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		Backend:   types.BackendSQLite,
		LogFormat: logging.FormatConsole,
		LogLevel:  defaultLogLevel,
	}
}

const configHeader = "# eav CLI configuration.\n# data_dir is optional; --data-dir and EAV_DATA_DIR override the default.\n"

// loadConfig reads config.yaml from configDir with Viper. The directory and
// a default config.yaml are created on first run.
func loadConfig(configDir string) (fileConfig, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fileConfig{}, errors.Wrap(err, "ensure config dir")
	}
	if err := writeConfigIfMissing(paths.ConfigFile(configDir)); err != nil {
		return fileConfig{}, errors.Wrap(err, "ensure default config")
	}

	defaults := defaultFileConfig()
	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaults.Backend)
	v.SetDefault(cfgKeyDataDir, "")
	v.SetDefault(cfgKeyLogFormat, defaults.LogFormat)
	v.SetDefault(cfgKeyLogLevel, defaults.LogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fileConfig{}, errors.Wrapf(types.ErrInvalidArgument, "read config: %v", err)
		}
	}

	var cfg fileConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return fileConfig{}, errors.Wrapf(types.ErrInvalidArgument, "decode config: %v", err)
	}
	return cfg, nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist.
func writeConfigIfMissing(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Wrap(err, "stat config file")
	}

	cfg := defaultFileConfig()
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	return os.WriteFile(path, append([]byte(configHeader), data...), 0o644)
}
