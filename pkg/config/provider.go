package config

import (
	"fmt"

	"github.com/chrissnell/cardiorhythm/pkg/hrv"
	"github.com/chrissnell/cardiorhythm/pkg/spectral"
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Analysis AnalysisData    `json:"analysis"`
	Storage  StorageData     `json:"storage,omitempty"`
	REST     *RESTServerData `json:"rest,omitempty"`
}

// AnalysisData holds the parameters of the HRV pipeline
type AnalysisData struct {
	SamplingRate   float64 `json:"sampling_rate"`   // Hz of the source ECG
	ResamplingRate float64 `json:"resampling_rate"` // Hz of the uniform RR grid
	Interpolation  string  `json:"interpolation"`   // linear | cubic
	Transform      string  `json:"transform"`       // gonum | godsp
	Window         string  `json:"window"`          // hamming | hanning | none
}

// StorageData holds the configuration for report storage backends
type StorageData struct {
	SQLite *SQLiteData `json:"sqlite,omitempty"`
}

// SQLiteData holds the location of the SQLite report database
type SQLiteData struct {
	Path string `json:"path"`
}

// RESTServerData holds the configuration for the REST API
type RESTServerData struct {
	ListenAddr string `json:"listen_addr,omitempty"`
	HTTPPort   int    `json:"http_port,omitempty"`
}

const (
	DefaultSamplingRate   = 250.0
	DefaultResamplingRate = 4.0
	DefaultListenAddr     = "0.0.0.0"
	DefaultHTTPPort       = 8080
)

// ApplyDefaults fills unset fields with their defaults
func (c *ConfigData) ApplyDefaults() {
	if c.Analysis.SamplingRate == 0 {
		c.Analysis.SamplingRate = DefaultSamplingRate
	}
	if c.Analysis.ResamplingRate == 0 {
		c.Analysis.ResamplingRate = DefaultResamplingRate
	}
	if c.Analysis.Interpolation == "" {
		c.Analysis.Interpolation = spectral.InterpolationCubic
	}
	if c.Analysis.Transform == "" {
		c.Analysis.Transform = spectral.TransformGonum
	}
	if c.Analysis.Window == "" {
		c.Analysis.Window = hrv.Hamming.String()
	}

	if c.REST != nil {
		if c.REST.ListenAddr == "" {
			c.REST.ListenAddr = DefaultListenAddr
		}
		if c.REST.HTTPPort == 0 {
			c.REST.HTTPPort = DefaultHTTPPort
		}
	}
}

// Validate checks the configuration for values the pipeline can't run with
func (c *ConfigData) Validate() error {
	a := c.Analysis
	if a.SamplingRate <= 0 {
		return fmt.Errorf("analysis.sampling_rate must be positive, got %v", a.SamplingRate)
	}
	if a.ResamplingRate <= 0 {
		return fmt.Errorf("analysis.resampling_rate must be positive, got %v", a.ResamplingRate)
	}
	if _, err := spectral.LookupInterpolator(a.Interpolation); err != nil {
		return fmt.Errorf("analysis.interpolation: %w", err)
	}
	if _, err := spectral.LookupTransformer(a.Transform); err != nil {
		return fmt.Errorf("analysis.transform: %w", err)
	}
	if _, err := hrv.ParseWindow(a.Window); err != nil {
		return fmt.Errorf("analysis.window: %w", err)
	}

	if c.REST != nil && (c.REST.HTTPPort < 0 || c.REST.HTTPPort > 65535) {
		return fmt.Errorf("rest.http_port out of range: %d", c.REST.HTTPPort)
	}
	if c.Storage.SQLite != nil && c.Storage.SQLite.Path == "" {
		return fmt.Errorf("storage.sqlite.path is required when sqlite storage is configured")
	}
	return nil
}
