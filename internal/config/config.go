package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	InputPath string `mapstructure:"input_path" yaml:"input_path" validate:"required"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir" validate:"required"`
	// Raster resolution of every chart image.
	DPI      float64 `mapstructure:"dpi" yaml:"dpi" validate:"gt=0"`
	HeadRows int     `mapstructure:"head_rows" yaml:"head_rows" validate:"gte=0"`

	// Input parsing
	Delimiter  string `mapstructure:"delimiter" yaml:"delimiter" validate:"omitempty,oneof=comma semicolon tab"`
	SheetName  string `mapstructure:"sheet_name" yaml:"sheet_name"`
	SheetIndex int    `mapstructure:"sheet_index" yaml:"sheet_index" validate:"gte=1"`

	// Rendering
	Parallel      bool `mapstructure:"parallel" yaml:"parallel"`
	WriteManifest bool `mapstructure:"write_manifest" yaml:"write_manifest"`
}

// Default returns the configuration used when no file or env override is present.
func Default() *Global {
	return &Global{
		InputPath:  "fifa_players.csv",
		OutputDir:  ".",
		DPI:        300,
		HeadRows:   5,
		SheetIndex: 1,
	}
}

// Validate checks struct tags on the configuration.
func (c *Global) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// DelimiterRune maps the configured delimiter name to a rune. Zero means auto.
func (c *Global) DelimiterRune() rune {
	switch c.Delimiter {
	case "comma":
		return ','
	case "semicolon":
		return ';'
	case "tab":
		return '\t'
	default:
		return 0
	}
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.fifaviz/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".fifaviz")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file (cfgFile or ~/.fifaviz/config.yaml) > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("FIFAVIZ")
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("input_path", d.InputPath)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("dpi", d.DPI)
	v.SetDefault("head_rows", d.HeadRows)
	v.SetDefault("delimiter", "")
	v.SetDefault("sheet_name", "")
	v.SetDefault("sheet_index", d.SheetIndex)
	v.SetDefault("parallel", false)
	v.SetDefault("write_manifest", false)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".fifaviz"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
