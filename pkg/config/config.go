/*
Package config manages the TOML config of the tashbetz builder.

Values are resolved in this order: environment (TASHBETZ_*), the config file, built-in
defaults. A missing config file is created with the defaults; a file that does not decode
cleanly is salvaged section by section.

	[paths]     output tree and ignore list
	[sources]   raw inputs; an empty path disables that source
	[compress]  how compressed counterparts are built
	[publish]   optional upload of the finished tree
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/bastiangx/tashbetz/internal/utils"
)

// DefaultFileName is the config file looked up in the user config directory.
const DefaultFileName = "tashbetz.toml"

// Config holds the entire config structure
type Config struct {
	Paths    PathsConfig    `toml:"paths"`
	Sources  SourcesConfig  `toml:"sources"`
	Compress CompressConfig `toml:"compress"`
	Publish  PublishConfig  `toml:"publish"`
}

// PathsConfig holds the output and ignore list locations.
type PathsConfig struct {
	Output     string `toml:"output"      env:"TASHBETZ_OUTPUT"`
	IgnoreList string `toml:"ignore_list" env:"TASHBETZ_IGNORE_LIST"`
}

// SourcesConfig holds one input path per source kind.
type SourcesConfig struct {
	Hspell     string `toml:"hspell"     env:"TASHBETZ_HSPELL"`
	Wiktionary string `toml:"wiktionary" env:"TASHBETZ_WIKTIONARY"`
	Wikipedia  string `toml:"wikipedia"  env:"TASHBETZ_WIKIPEDIA"`
	WordNet    string `toml:"wordnet"    env:"TASHBETZ_WORDNET"`
}

// CompressConfig selects the compression mode.
type CompressConfig struct {
	Mode    string   `toml:"mode"    env:"TASHBETZ_COMPRESS_MODE"`
	Codec   string   `toml:"codec"   env:"TASHBETZ_COMPRESS_CODEC"`
	Command string   `toml:"command" env:"TASHBETZ_COMPRESS_COMMAND"`
	Args    []string `toml:"args"    env:"TASHBETZ_COMPRESS_ARGS"`
}

// PublishConfig holds the object storage target.
type PublishConfig struct {
	Enabled   bool   `toml:"enabled"    env:"TASHBETZ_PUBLISH"`
	Backend   string `toml:"backend"    env:"TASHBETZ_PUBLISH_BACKEND"`
	Endpoint  string `toml:"endpoint"   env:"TASHBETZ_PUBLISH_ENDPOINT"`
	Region    string `toml:"region"     env:"TASHBETZ_PUBLISH_REGION"`
	Bucket    string `toml:"bucket"     env:"TASHBETZ_PUBLISH_BUCKET"`
	Prefix    string `toml:"prefix"     env:"TASHBETZ_PUBLISH_PREFIX"`
	AccessKey string `toml:"access_key" env:"TASHBETZ_PUBLISH_ACCESS_KEY"`
	SecretKey string `toml:"secret_key" env:"TASHBETZ_PUBLISH_SECRET_KEY"`
	UseSSL    bool   `toml:"use_ssl"    env:"TASHBETZ_PUBLISH_USE_SSL"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			Output:     "wordlists",
			IgnoreList: "data/ignore_list.txt",
		},
		Sources: SourcesConfig{
			Hspell:     "data/he_IL.dic",
			Wiktionary: "data/hewiktionary-latest-all-titles.txt",
			Wikipedia:  "data/hewiki-latest-all-titles-in-ns0.txt",
			WordNet:    "data/hebrew_synonyms.xml",
		},
		Compress: CompressConfig{
			Mode:  "trie",
			Codec: "zstd",
			Args:  []string{"{in}", "{out}"},
		},
		Publish: PublishConfig{
			Backend: "s3",
			Prefix:  "wordlists",
			UseSSL:  true,
		},
	}
}

// GetDefaultConfigPath returns the path of the config file in the user config directory.
func GetDefaultConfigPath() (string, error) {
	resolver, err := utils.NewPathResolver()
	if err != nil {
		return "", err
	}
	return resolver.GetConfigPath(DefaultFileName)
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/tashbetz/tashbetz.toml
// 3. Builtin defaults
//
// Environment overrides are applied on top in every case.
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	config, path := loadFile(customConfigPath)
	if err := ApplyEnv(config); err != nil {
		return nil, path, err
	}
	if err := config.Validate(); err != nil {
		return nil, path, err
	}
	return config, path, nil
}

func loadFile(customConfigPath string) (*Config, string) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), ""
	}
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), ""
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath
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

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// ApplyEnv overrides config values with the TASHBETZ_* environment variables that are set.
func ApplyEnv(config *Config) error {
	if err := cleanenv.ReadEnv(config); err != nil {
		return fmt.Errorf("config: read env: %w", err)
	}
	return nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	var errs []error
	if c.Paths.Output == "" {
		errs = append(errs, errors.New("paths.output is empty"))
	}
	if c.Paths.IgnoreList == "" {
		errs = append(errs, errors.New("paths.ignore_list is empty"))
	}
	switch c.Compress.Mode {
	case "trie", "none":
	case "exec":
		if c.Compress.Command == "" {
			errs = append(errs, errors.New("compress.command is required in exec mode"))
		}
	default:
		errs = append(errs, fmt.Errorf("compress.mode %q is not one of trie, exec, none", c.Compress.Mode))
	}
	if c.Publish.Enabled && c.Publish.Bucket == "" {
		errs = append(errs, errors.New("publish.bucket is required when publishing"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// tryPartialParse salvages the sections of a TOML file that still parse
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "paths"); ok {
		extractPathsConfig(section, &config.Paths)
	}
	if section, ok := utils.ExtractSection(tempConfig, "sources"); ok {
		extractSourcesConfig(section, &config.Sources)
	}
	if section, ok := utils.ExtractSection(tempConfig, "compress"); ok {
		extractCompressConfig(section, &config.Compress)
	}
	if section, ok := utils.ExtractSection(tempConfig, "publish"); ok {
		extractPublishConfig(section, &config.Publish)
	}
	return config, nil
}

func extractPathsConfig(data map[string]any, paths *PathsConfig) {
	if val, ok := utils.ExtractString(data, "output"); ok {
		paths.Output = val
	}
	if val, ok := utils.ExtractString(data, "ignore_list"); ok {
		paths.IgnoreList = val
	}
}

func extractSourcesConfig(data map[string]any, sources *SourcesConfig) {
	if val, ok := utils.ExtractString(data, "hspell"); ok {
		sources.Hspell = val
	}
	if val, ok := utils.ExtractString(data, "wiktionary"); ok {
		sources.Wiktionary = val
	}
	if val, ok := utils.ExtractString(data, "wikipedia"); ok {
		sources.Wikipedia = val
	}
	if val, ok := utils.ExtractString(data, "wordnet"); ok {
		sources.WordNet = val
	}
}

func extractCompressConfig(data map[string]any, compress *CompressConfig) {
	if val, ok := utils.ExtractString(data, "mode"); ok {
		compress.Mode = val
	}
	if val, ok := utils.ExtractString(data, "codec"); ok {
		compress.Codec = val
	}
	if val, ok := utils.ExtractString(data, "command"); ok {
		compress.Command = val
	}
	if val, ok := utils.ExtractStringSlice(data, "args"); ok {
		compress.Args = val
	}
}

func extractPublishConfig(data map[string]any, publish *PublishConfig) {
	if val, ok := utils.ExtractBool(data, "enabled"); ok {
		publish.Enabled = val
	}
	for key, dst := range map[string]*string{
		"backend":    &publish.Backend,
		"endpoint":   &publish.Endpoint,
		"region":     &publish.Region,
		"bucket":     &publish.Bucket,
		"prefix":     &publish.Prefix,
		"access_key": &publish.AccessKey,
		"secret_key": &publish.SecretKey,
	} {
		if val, ok := utils.ExtractString(data, key); ok {
			*dst = val
		}
	}
	if val, ok := utils.ExtractBool(data, "use_ssl"); ok {
		publish.UseSSL = val
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "built-in defaults"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
