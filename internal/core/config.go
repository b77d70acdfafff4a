package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

const (
	configDirName  = ".procreate"
	configFileName = "config.json"

	DefaultBlockRepo  = "ant-design/pro-blocks"
	DefaultBlockRef   = "master"
	DefaultBlockTool  = "umi"
	DefaultCatalogURL = "https://api.github.com"
)

// ConfigManager handles reading and writing the procreate configuration.
type ConfigManager struct {
	configDir string
	mu        sync.RWMutex
}

// NewConfigManager creates a ConfigManager using the default config path (~/.procreate/).
func NewConfigManager() (*ConfigManager, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}
	return &ConfigManager{
		configDir: filepath.Join(home, configDirName),
	}, nil
}

// NewConfigManagerWithDir creates a ConfigManager using a custom config directory.
// Useful for testing.
func NewConfigManagerWithDir(dir string) *ConfigManager {
	return &ConfigManager{configDir: dir}
}

// ConfigDir returns the configuration directory path.
func (cm *ConfigManager) ConfigDir() string {
	return cm.configDir
}

// ConfigPath returns the full path to the config file.
func (cm *ConfigManager) ConfigPath() string {
	return filepath.Join(cm.configDir, configFileName)
}

// Load reads the config from disk. Returns default config if file doesn't exist.
// Settings missing from the file fall back to their defaults.
func (cm *ConfigManager) Load() (*Config, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	path := cm.ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := defaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Settings.fillDefaults()
	return cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (cm *ConfigManager) Save(cfg *Config) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if err := os.MkdirAll(cm.configDir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Write atomically: write to temp file then rename
	tmpPath := cm.ConfigPath() + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Rename(tmpPath, cm.ConfigPath()); err != nil {
		_ = os.Remove(tmpPath) // clean up on failure
		return fmt.Errorf("saving config: %w", err)
	}

	return nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Settings.fillDefaults()
	return cfg
}

func (s *Settings) fillDefaults() {
	if s.BlockRepo == "" {
		s.BlockRepo = DefaultBlockRepo
	}
	if s.BlockRef == "" {
		s.BlockRef = DefaultBlockRef
	}
	if s.BlockTool == "" {
		s.BlockTool = DefaultBlockTool
	}
	if s.CatalogURL == "" {
		s.CatalogURL = DefaultCatalogURL
	}
}

// settingFields maps setting keys to their string fields.
func (s *Settings) settingFields() map[string]*string {
	return map[string]*string{
		"blockRepo":    &s.BlockRepo,
		"blockRef":     &s.BlockRef,
		"blockTool":    &s.BlockTool,
		"catalogURL":   &s.CatalogURL,
		"templateRepo": &s.TemplateRepo,
		"npmRegistry":  &s.NpmRegistry,
	}
}

// SettingKeys returns the keys accepted by Get and Set, sorted.
func SettingKeys() []string {
	var s Settings
	fields := s.settingFields()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of the setting named key.
func (s *Settings) Get(key string) (string, error) {
	f, ok := s.settingFields()[key]
	if !ok {
		return "", fmt.Errorf("unknown setting %q", key)
	}
	return *f, nil
}

// Set updates the setting named key. An empty value restores the default.
func (s *Settings) Set(key, value string) error {
	f, ok := s.settingFields()[key]
	if !ok {
		return fmt.Errorf("unknown setting %q", key)
	}
	*f = value
	s.fillDefaults()
	return nil
}
