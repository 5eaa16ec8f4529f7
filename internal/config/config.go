// Package config loads ftskel settings with Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/chriserin/ftskel/internal/generator"
)

const (
	// FileName is the project-local config file looked up in the working directory.
	FileName  = "ftskel.yaml"
	EnvPrefix = "FTSKEL"
	dbName    = "ftskel.db"
)

// Config holds the settings shared by every command.
type Config struct {
	FeaturesDir string `mapstructure:"features_dir" yaml:"features_dir"`
	OutputDir   string `mapstructure:"output_dir" yaml:"output_dir"`
	Runner      string `mapstructure:"runner" yaml:"runner"`
	Extension   string `mapstructure:"extension" yaml:"extension"`
	Indent      int    `mapstructure:"indent" yaml:"indent"`
	Workers     int    `mapstructure:"workers" yaml:"workers"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		FeaturesDir: "features",
		Runner:      string(generator.RunnerMocha),
		Extension:   ".spec.js",
		Indent:      2,
		Workers:     4,
	}
}

// Load reads configuration in this order, later sources winning:
// 1. built-in defaults
// 2. cfgPath if given, else ./ftskel.yaml when present
// 3. FTSKEL_* environment variables, after loading ./.env
func Load(cfgPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	v := viper.New()
	def := Default()
	v.SetDefault("features_dir", def.FeaturesDir)
	v.SetDefault("output_dir", def.OutputDir)
	v.SetDefault("runner", def.Runner)
	v.SetDefault("extension", def.Extension)
	v.SetDefault("indent", def.Indent)
	v.SetDefault("workers", def.Workers)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		log.Debug().Str("file", v.ConfigFileUsed()).Msg("Loaded config")
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if !generator.Runner(c.Runner).IsValid() {
		return fmt.Errorf("invalid runner %q: must be one of %v", c.Runner, generator.ValidRunners())
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Indent < 0 {
		return fmt.Errorf("indent must not be negative, got %d", c.Indent)
	}
	if c.FeaturesDir == "" {
		return fmt.Errorf("features_dir must not be empty")
	}
	return nil
}

// DBPath is the registry location inside the features directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.FeaturesDir, dbName)
}

// OutputPath maps a feature file to its generated test file.
func (c *Config) OutputPath(featurePath string) string {
	base := filepath.Base(featurePath)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + c.Extension
	dir := c.OutputDir
	if dir == "" {
		dir = filepath.Dir(featurePath)
	}
	return filepath.Join(dir, name)
}

func (c *Config) GeneratorOptions() generator.Options {
	indent := c.Indent
	if indent == 0 {
		indent = Default().Indent
	}
	return generator.Options{
		Runner: generator.Runner(c.Runner),
		Indent: strings.Repeat(" ", indent),
	}
}

// WriteDefault writes the default config to path unless a file already exists.
// It reports whether the file was created.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return false, fmt.Errorf("encoding default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}
