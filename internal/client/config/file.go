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

// FileConfig is a DTO used exclusively for decoding the config file.
type FileConfig struct {
	ServerURL           string         `json:"server_url" yaml:"server_url"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	PersistSession      *bool          `json:"persist_session" yaml:"persist_session"`
	DBFile              string         `json:"db_file" yaml:"db_file"`
	RequestTimeout      timex.Duration `json:"request_timeout" yaml:"request_timeout"`
}

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

	if fc.ServerURL != "" {
		cfg.ServerURL = fc.ServerURL
	}
	if fc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	if fc.PersistSession != nil {
		cfg.PersistSession = *fc.PersistSession
	}
	if fc.DBFile != "" {
		cfg.DBFile = fc.DBFile
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	return nil
}
