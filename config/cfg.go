package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"gridder/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	GridConfig struct {
		Columns int         `yaml:"columns" toml:"columns" validate:"min=1,max=1000"`
		Mode    common.Mode `yaml:"mode" toml:"mode" validate:"gte=0"`
	}

	OutputConfig struct {
		Extension string `yaml:"extension" toml:"extension" validate:"required,startswith=."`
		// Banner is a text/template (with slim-sprig functions) put as a
		// comment at the top of every produced style sheet
		Banner string `yaml:"banner" toml:"banner"`
	}

	Config struct {
		Version   int            `yaml:"version" toml:"version" validate:"eq=1"`
		Grid      GridConfig     `yaml:"grid" toml:"grid"`
		Output    OutputConfig   `yaml:"output" toml:"output"`
		Logging   LoggingConfig  `yaml:"logging" toml:"logging"`
		Reporting ReporterConfig `yaml:"reporting" toml:"reporting"`
	}
)

// decoder fills cfg from data leaving fields absent in data untouched.
type decoder func(data []byte, cfg *Config) error

func decodeYAML(data []byte, cfg *Config) error {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(cfg)
}

func decodeTOML(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// decoderFor selects configuration format by file extension, YAML unless
// told otherwise.
func decoderFor(path string) decoder {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return decodeTOML
	}
	return decodeYAML
}

func unmarshalConfig(data []byte, cfg *Config, decode decoder, process bool) (*Config, error) {
	if err := decode(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
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
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation. Files with ".toml" extension are
// read as TOML, anything else as YAML.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, decodeYAML, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, decoderFor(path), haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

// Dump returns configuration as YAML.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
