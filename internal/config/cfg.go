package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"cube-generator/internal/gen"
)

//go:embed config.yaml
var defaultConfig []byte

type (
	GeneratorConfig struct {
		MaxArity      int    `yaml:"max_arity" validate:"min=1,max=30"`
		FileSuffix    string `yaml:"file_suffix" validate:"required,endswith=.go"`
		OptionPackage string `yaml:"option_package" validate:"required"`
		OutputDir     string `yaml:"output_dir"`
		Cube          bool   `yaml:"cube"`
		Roll          bool   `yaml:"roll"`
		Comments      bool   `yaml:"comments"`
	}

	Config struct {
		Version   int             `yaml:"version" validate:"eq=1"`
		Generator GeneratorConfig `yaml:"generator"`
		Logging   LoggingConfig   `yaml:"logging"`
	}
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// Unknown keys are mistakes, so yaml.Unmarshal is not enough
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of the embedded defaults and performs
// validation. An empty path yields the defaults.
func LoadConfiguration(path string) (*Config, error) {
	haveFile := len(path) > 0

	cfg, err := unmarshalConfig(defaultConfig, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process default configuration: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare returns the default configuration file.
func Prepare() []byte {
	return bytes.Clone(defaultConfig)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}

// GenConfig converts the generator section to code generator settings.
func (c *GeneratorConfig) GenConfig() gen.GeneratorConfig {
	return gen.GeneratorConfig{
		OutputDir:        c.OutputDir,
		FileSuffix:       c.FileSuffix,
		OptionPkgPath:    c.OptionPackage,
		Cube:             c.Cube,
		Roll:             c.Roll,
		GenerateComments: c.Comments,
	}
}
