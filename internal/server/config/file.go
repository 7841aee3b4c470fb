package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/lembretes/internal/flagx"
	"github.com/dmitrijs2005/lembretes/internal/timex"
)

// FileConfig is the on-disk shape of the server configuration. It is only
// used for decoding; zero values mean "keep what is already set".
type FileConfig struct {
	HTTPAddr        string         `json:"http_addr" yaml:"http_addr"`
	HealthAddrGRPC  string         `json:"health_addr_grpc" yaml:"health_addr_grpc"`
	DatabaseDSN     string         `json:"database_dsn" yaml:"database_dsn"`
	AllowedOrigins  []string       `json:"allowed_origins" yaml:"allowed_origins"`
	LogFormat       string         `json:"log_format" yaml:"log_format"`
	OTLPEndpoint    string         `json:"otlp_endpoint" yaml:"otlp_endpoint"`
	OTLPInsecure    *bool          `json:"otlp_insecure" yaml:"otlp_insecure"`
	RunMigrations   *bool          `json:"run_migrations" yaml:"run_migrations"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// parseFile overlays cfg with the file named by -c/-config, if any.
// Files ending in .yaml or .yml are decoded as YAML, anything else as JSON.
func parseFile(cfg *Config) error {
	path := flagx.ConfigFileFlags()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return err
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	if fc.HTTPAddr != "" {
		cfg.HTTPAddr = fc.HTTPAddr
	}
	if fc.HealthAddrGRPC != "" {
		cfg.HealthAddrGRPC = fc.HealthAddrGRPC
	}
	if fc.DatabaseDSN != "" {
		cfg.DatabaseDSN = fc.DatabaseDSN
	}
	if len(fc.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = fc.AllowedOrigins
	}
	if fc.LogFormat != "" {
		cfg.LogFormat = fc.LogFormat
	}
	if fc.OTLPEndpoint != "" {
		cfg.OTLPEndpoint = fc.OTLPEndpoint
	}
	if fc.OTLPInsecure != nil {
		cfg.OTLPInsecure = *fc.OTLPInsecure
	}
	if fc.RunMigrations != nil {
		cfg.RunMigrations = *fc.RunMigrations
	}
	if fc.ShutdownTimeout.Duration > 0 {
		cfg.ShutdownTimeout = fc.ShutdownTimeout.Duration
	}
}
