package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadServer loads the server configuration.
// Search order: customPath -> ./server.yaml -> built-in default
func LoadServer(customPath string) (ServerConfig, error) {
	cfg := DefaultServer()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return applyDefaults(cfg), nil
	}

	if data, err := os.ReadFile("server.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return applyDefaults(cfg), nil
		}
	}

	return cfg, nil
}

func applyDefaults(cfg ServerConfig) ServerConfig {
	def := DefaultServer()
	if cfg.Port == 0 {
		cfg.Port = def.Port
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = def.TickRate
	}
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	return cfg
}
