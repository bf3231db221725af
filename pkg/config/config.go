// Package config describes the settings of the ddr tools.
package config

import (
	"io/ioutil"

	"github.com/oneconcern/ddr/pkg/errors"
	"gopkg.in/yaml.v2"
)

// ErrConfig indicates a configuration file which cannot be used
var ErrConfig = errors.New("invalid configuration")

// Config holds the settings shared by all commands
type Config struct {
	// BasePath is the directory holding the collection checkouts
	BasePath string `json:"basepath" yaml:"basepath" mapstructure:"basepath"`
	MediaURL string `json:"media_url,omitempty" yaml:"media_url,omitempty" mapstructure:"media_url"`

	// Schemas is an optional directory of yaml schemas replacing the embedded ones
	Schemas string `json:"schemas,omitempty" yaml:"schemas,omitempty" mapstructure:"schemas"`
	// Vocab is a directory of controlled vocabularies
	Vocab string `json:"vocab,omitempty" yaml:"vocab,omitempty" mapstructure:"vocab"`

	LogLevel           string   `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	RequiredExceptions []string `json:"required_exceptions" yaml:"required_exceptions" mapstructure:"required_exceptions"`

	// Application, AppCommit and AnnexVersion go into the header of written documents
	Application  string `json:"application" yaml:"application" mapstructure:"application"`
	AppCommit    string `json:"app_commit,omitempty" yaml:"app_commit,omitempty" mapstructure:"app_commit"`
	AnnexVersion string `json:"annex_version,omitempty" yaml:"annex_version,omitempty" mapstructure:"annex_version"`

	User string `json:"user,omitempty" yaml:"user,omitempty" mapstructure:"user"`
	Mail string `json:"mail,omitempty" yaml:"mail,omitempty" mapstructure:"mail"`
}

// Default settings
func Default() Config {
	return Config{
		BasePath:           "/var/www/media/ddr",
		LogLevel:           "info",
		RequiredExceptions: []string{"record_created", "record_lastmod", "files"},
		Application:        "https://github.com/oneconcern/ddr",
	}
}

// Parse yaml settings over the defaults
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, ErrConfig.Wrap(err)
	}
	return cfg, nil
}

// Load a yaml configuration file
func Load(path string) (Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return Config{}, ErrConfig.Wrap(err)
	}
	return Parse(data)
}

// Marshal the configuration as yaml
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
