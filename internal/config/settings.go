package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PWP_LOGGING_LEVEL.
const EnvPrefix = "PWP"

// Settings controls how the CLI runs. Plans and rule tables are loaded
// separately by InputParser.
type Settings struct {
	Logging     LoggingSettings `mapstructure:"logging"      yaml:"logging"`
	Output      OutputSettings  `mapstructure:"output"       yaml:"output"`
	TaxYear     string          `mapstructure:"tax_year"     yaml:"tax_year"`
	RulesFile   string          `mapstructure:"rules_file"   yaml:"rules_file"`
	Concurrency int             `mapstructure:"concurrency"  yaml:"concurrency"`
}

// LoggingSettings selects the zap level and encoding.
type LoggingSettings struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "console" or "json"
}

// OutputSettings selects the report formatter and, when Dir is set, saves
// reports there instead of printing them.
type OutputSettings struct {
	Format string `mapstructure:"format" yaml:"format"`
	Dir    string `mapstructure:"dir"    yaml:"dir"`
}

// LoadSettings reads settings from path when it is non-empty, then applies
// PWP_ environment overrides on top of the defaults.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading settings file %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.UnmarshalExact(&s); err != nil {
		return nil, fmt.Errorf("error unmarshaling settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate rejects settings the CLI cannot honour.
func (s *Settings) Validate() error {
	switch s.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level %q: must be debug, info, warn or error", s.Logging.Level)
	}
	switch s.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid logging.format %q: must be console or json", s.Logging.Format)
	}
	if s.Concurrency < 0 {
		return fmt.Errorf("invalid concurrency %d: must not be negative", s.Concurrency)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("output.format", "console")
	v.SetDefault("output.dir", "")
	v.SetDefault("tax_year", "")
	v.SetDefault("rules_file", "")
	v.SetDefault("concurrency", 4)
}
