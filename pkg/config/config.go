/*
Package config manages TOML config for SongServe.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/songserve/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Catalog CatalogConfig `toml:"catalog"`
	CLI     CliConfig     `toml:"cli"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxPrefix int  `toml:"max_prefix"`
	MaxTopK   int  `toml:"max_top_k"`
	Watch     bool `toml:"watch"`
}

// CatalogConfig holds options for the in-memory catalog.
type CatalogConfig struct {
	CacheSize int `toml:"cache_size"`
}

// CliConfig holds demo walkthrough options.
type CliConfig struct {
	TopK  int  `toml:"top_k"`
	Color bool `toml:"color"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxPrefix: 60,
			MaxTopK:   50,
			Watch:     true,
		},
		Catalog: CatalogConfig{
			CacheSize: 256,
		},
		CLI: CliConfig{
			TopK:  3,
			Color: true,
		},
	}
}

// GetConfigDir returns the config directory with fallback priority:
// 1. $XDG_CONFIG_HOME/songserve or ~/.config/songserve
// 2. ~/Library/Application Support/songserve (macOS)
// 3. os.TempDir()/songserve
func GetConfigDir() (string, error) {
	var candidates []string
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		candidates = append(candidates, filepath.Join(configHome, utils.AppDirName))
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(homeDir, ".config", utils.AppDirName),
			filepath.Join(homeDir, "Library", "Application Support", utils.AppDirName),
		)
	} else {
		log.Errorf("Failed to get home directory: %v", err)
	}
	candidates = append(candidates, filepath.Join(os.TempDir(), utils.AppDirName))

	var lastErr error
	for _, dir := range candidates {
		result := utils.CheckDirStatus(dir)
		if result.Writable {
			return dir, nil
		}
		lastErr = result.Error
	}
	if lastErr == nil {
		lastErr = os.ErrPermission
	}
	return "", lastErr
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/songserve/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Keys missing from the file keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.sanitize()
	return config, nil
}

// tryPartialParse salvages whatever sections still decode
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "catalog"); ok {
		extractCatalogConfig(section, &config.Catalog)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	config.sanitize()
	return config, nil
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_prefix"); ok {
		server.MaxPrefix = val
	}
	if val, ok := utils.ExtractInt64(data, "max_top_k"); ok {
		server.MaxTopK = val
	}
	if val, ok := utils.ExtractBool(data, "watch"); ok {
		server.Watch = val
	}
}

func extractCatalogConfig(data map[string]any, catalog *CatalogConfig) {
	if val, ok := utils.ExtractInt64(data, "cache_size"); ok {
		catalog.CacheSize = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "top_k"); ok {
		cli.TopK = val
	}
	if val, ok := utils.ExtractBool(data, "color"); ok {
		cli.Color = val
	}
}

// sanitize replaces negative numbers with their defaults
func (c *Config) sanitize() {
	defaults := DefaultConfig()
	if c.Server.MaxPrefix < 0 {
		log.Warnf("server.max_prefix %d is negative, using %d", c.Server.MaxPrefix, defaults.Server.MaxPrefix)
		c.Server.MaxPrefix = defaults.Server.MaxPrefix
	}
	if c.Server.MaxTopK < 0 {
		log.Warnf("server.max_top_k %d is negative, using %d", c.Server.MaxTopK, defaults.Server.MaxTopK)
		c.Server.MaxTopK = defaults.Server.MaxTopK
	}
	if c.Catalog.CacheSize < 0 {
		log.Warnf("catalog.cache_size %d is negative, using %d", c.Catalog.CacheSize, defaults.Catalog.CacheSize)
		c.Catalog.CacheSize = defaults.Catalog.CacheSize
	}
	if c.CLI.TopK < 0 {
		log.Warnf("cli.top_k %d is negative, using %d", c.CLI.TopK, defaults.CLI.TopK)
		c.CLI.TopK = defaults.CLI.TopK
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
