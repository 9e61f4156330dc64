package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/bntti/gomoku/engine"
)

type Config struct {
	GhostMode         bool          `json:"ghost_mode"`
	AiGhostThrottleMs int           `json:"ai_ghost_throttle_ms"`
	AiLogSearchStats  bool          `json:"ai_log_search_stats"`
	Engine            engine.Config `json:"engine"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		GhostMode:         true,
		AiGhostThrottleMs: 50,
		AiLogSearchStats:  false,
		Engine:            engine.DefaultConfig(),
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}

// LoadConfigFile overlays the JSON file at path on top of the defaults.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// searchConfig is the engine configuration an AI search should run with.
func (c Config) searchConfig() engine.Config {
	cfg := c.Engine
	cfg.LogSearchStats = cfg.LogSearchStats || c.AiLogSearchStats
	return cfg
}
