package utils

import (
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

const ConfigFileName = "tablextract.yaml"

// Config holds the settings that can be persisted in tablextract.yaml.
type Config struct {
	OutputDir string `yaml:"output_dir,omitempty"`
	Verbose   bool   `yaml:"verbose,omitempty"`
	Delimiter string `yaml:"delimiter,omitempty"`
	CRLF      bool   `yaml:"crlf,omitempty"`
}

// DelimiterRune returns the configured field delimiter, ',' when unset.
func (c Config) DelimiterRune() (rune, error) {
	if c.Delimiter == "" {
		return ',', nil
	}
	if c.Delimiter == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(c.Delimiter)
	if size != len(c.Delimiter) || r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
		return 0, errors.Newf("invalid delimiter %q: must be a single character other than quote or newline", c.Delimiter)
	}
	return r, nil
}

// FindConfigFile tries to find the tablextract config file in the current directory
// or any parent directory, falling back to the global config if needed
func FindConfigFile() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "getting working directory")
	}
	return findConfigFrom(dir)
}

func findConfigFrom(dir string) (string, error) {
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(configPath); err == nil && info.Mode().IsRegular() {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // Reached root directory
		}
		dir = parent
	}

	// Fall back to global config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "getting home directory")
	}

	globalConfig := filepath.Join(homeDir, ".tablextract", "config.yaml")
	if _, err := os.Stat(globalConfig); err == nil {
		return globalConfig, nil
	}

	return "", errors.New("no config file found in project or ~/.tablextract/config.yaml")
}

// ReadConfig reads and parses a tablextract config file
func ReadConfig(configPath string) (Config, error) {
	var config Config

	data, err := os.ReadFile(configPath)
	if err != nil {
		return config, errors.Wrap(err, "reading config file")
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, errors.Wrap(err, "parsing config file")
	}
	if _, err := config.DelimiterRune(); err != nil {
		return config, errors.Wrap(err, "parsing config file")
	}
	return config, nil
}

// LoadConfig reads the file at explicitPath, or the nearest config file when
// explicitPath is empty. A missing implicit config yields the zero Config.
func LoadConfig(explicitPath string) (Config, string, error) {
	if explicitPath != "" {
		config, err := ReadConfig(explicitPath)
		return config, explicitPath, err
	}

	configPath, err := FindConfigFile()
	if err != nil {
		return Config{}, "", nil
	}
	config, err := ReadConfig(configPath)
	return config, configPath, err
}

// WriteConfig writes config as YAML to path
func WriteConfig(path string, config Config) error {
	yamlData, err := yaml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "creating yaml")
	}
	if err := os.WriteFile(path, yamlData, 0644); err != nil {
		return errors.Wrap(err, "writing config file")
	}
	return nil
}
