package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads, defaults and validates the configuration from the YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}
	return ParseYAML(cfgFile)
}

// ParseYAML decodes a YAML document into ConfigData
func ParseYAML(data []byte) (*ConfigData, error) {
	// Load into temporary struct with YAML tags
	var yamlConfig struct {
		Analysis AnalysisYAML `yaml:"analysis"`
		Storage  StorageYAML  `yaml:"storage,omitempty"`
		REST     *RESTYAML    `yaml:"rest,omitempty"`
	}

	if err := yaml.UnmarshalStrict(data, &yamlConfig); err != nil {
		return nil, err
	}

	// Convert to our internal format
	config := &ConfigData{
		Analysis: AnalysisData{
			SamplingRate:   yamlConfig.Analysis.SamplingRate,
			ResamplingRate: yamlConfig.Analysis.ResamplingRate,
			Interpolation:  yamlConfig.Analysis.Interpolation,
			Transform:      yamlConfig.Analysis.Transform,
			Window:         yamlConfig.Analysis.Window,
		},
	}
	if yamlConfig.Storage.SQLite != nil {
		config.Storage.SQLite = &SQLiteData{Path: yamlConfig.Storage.SQLite.Path}
	}
	if yamlConfig.REST != nil {
		config.REST = &RESTServerData{
			ListenAddr: yamlConfig.REST.ListenAddr,
			HTTPPort:   yamlConfig.REST.HTTPPort,
		}
	}

	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// YAML-specific structs for parsing

type AnalysisYAML struct {
	SamplingRate   float64 `yaml:"sampling_rate"`
	ResamplingRate float64 `yaml:"resampling_rate"`
	Interpolation  string  `yaml:"interpolation"`
	Transform      string  `yaml:"transform"`
	Window         string  `yaml:"window"`
}

type StorageYAML struct {
	SQLite *SQLiteYAML `yaml:"sqlite,omitempty"`
}

type SQLiteYAML struct {
	Path string `yaml:"path"`
}

type RESTYAML struct {
	ListenAddr string `yaml:"listen_addr,omitempty"`
	HTTPPort   int    `yaml:"http_port,omitempty"`
}
