package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	DBPath           string           `json:"db_path"`
	Port             int              `json:"port"`
	LogConfig        logger.LogConfig `json:"log_config"`
	VersionMaxKeep   int              `json:"version_max_keep"`
	VersionPruneSpec string           `json:"version_prune_spec"`
	CacheSize        int              `json:"cache_size"`
	CacheTTLSeconds  int              `json:"cache_ttl_seconds"`
	CORSAllowlist    []string         `json:"cors_allowlist"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db_path is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.VersionMaxKeep == 0 {
		cfg.VersionMaxKeep = 20
	}
	if cfg.VersionPruneSpec == "" {
		cfg.VersionPruneSpec = "0 3 * * *"
	}
	if cfg.CacheSize == 0 {
		cfg.CacheSize = 128
	}
	if cfg.CacheTTLSeconds == 0 {
		cfg.CacheTTLSeconds = 300
	}
	return &cfg, nil
}
