// Package config loads gitlogue settings from defaults, config files, the environment
// and command-line overrides, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/masmgr/gitlogue/internal/condense"
	"github.com/masmgr/gitlogue/internal/git"
	"github.com/masmgr/gitlogue/internal/llm"
	"github.com/masmgr/gitlogue/internal/output"
)

// EnvPrefix prefixes environment overrides, e.g. GITLOGUE_ENDPOINT or GITLOGUE_CONDENSE__THRESHOLD.
const EnvPrefix = "GITLOGUE_"

const configBaseName = ".gitlogue"

var configExtensions = []string{".yml", ".yaml", ".json"}

// Config is the root configuration structure.
type Config struct {
	Provider  string         `koanf:"provider"`
	Endpoint  string         `koanf:"endpoint"`
	Model     string         `koanf:"model"`
	MaxTokens int            `koanf:"max_tokens"`
	// Timeout bounds the API request; 0 leaves it unbounded.
	Timeout time.Duration `koanf:"timeout"`
	// APIKeyEnv names the variable holding the key. The key itself is never configured.
	APIKeyEnv string         `koanf:"api_key_env"`
	Engine    string         `koanf:"engine"`
	Branch    string         `koanf:"branch"`
	Output    string         `koanf:"output"`
	Condense  CondenseConfig `koanf:"condense"`
	Filters   FilterConfig   `koanf:"filters"`
}

// CondenseConfig controls grouping of long commit lists.
type CondenseConfig struct {
	Enabled   bool `koanf:"enabled"`
	Threshold int  `koanf:"threshold"`
	GroupSize int  `koanf:"group_size"`
}

// FilterConfig holds file path filtering options.
type FilterConfig struct {
	Include []string `koanf:"include"`
	Exclude []string `koanf:"exclude"`
}

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// ConfigPath replaces project config discovery. The file must exist.
	ConfigPath string
	// HomeDir overrides the user home directory used for user config discovery.
	HomeDir string
	// WorkDir is searched for the project config. Defaults to ".".
	WorkDir string
	// Overrides are applied last, keyed like the config file (e.g. "condense.enabled").
	Overrides map[string]any
}

// Defaults returns the default value for every key that has one.
// Endpoint and credential have no default.
func Defaults() map[string]any {
	return map[string]any{
		"provider":            llm.ProviderGemini,
		"max_tokens":          0,
		"engine":              string(git.EngineCLI),
		"branch":              "HEAD",
		"output":              output.DefaultPath,
		"condense.enabled":    true,
		"condense.threshold":  condense.Threshold,
		"condense.group_size": condense.GroupSize,
	}
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Provider:  llm.ProviderGemini,
		APIKeyEnv: "GEMINI_API_KEY",
		Engine:    string(git.EngineCLI),
		Branch:    "HEAD",
		Output:    output.DefaultPath,
		Condense: CondenseConfig{
			Enabled:   true,
			Threshold: condense.Threshold,
			GroupSize: condense.GroupSize,
		},
	}
}

// LoadConfig loads configuration with an optional explicit file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	return Load(LoadOptions{ConfigPath: path})
}

// Load merges defaults, the user file, the project file, GITLOGUE_* variables and overrides.
func Load(opts LoadOptions) (*Config, error) {
	k := newWithDefaults()

	if err := loadUserConfig(k, opts.HomeDir); err != nil {
		return nil, err
	}
	if err := loadProjectConfig(k, opts.ConfigPath, opts.WorkDir); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}
	for key, value := range opts.Overrides {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to apply override %s: %w", key, err)
		}
	}

	return finalize(k)
}

func newWithDefaults() *koanf.Koanf {
	k := koanf.New(".")
	for key, value := range Defaults() {
		_ = k.Set(key, value)
	}
	return k
}

func loadUserConfig(k *koanf.Koanf, home string) error {
	if home == "" {
		if h, err := os.UserHomeDir(); err == nil && h != "" {
			home = h
		} else {
			home = os.Getenv("HOME")
		}
	}
	if home == "" {
		return nil
	}
	if path := findConfigFile(home); path != "" {
		return loadFile(k, path, "user")
	}
	return nil
}

func loadProjectConfig(k *koanf.Koanf, customPath, workDir string) error {
	if customPath != "" {
		if !fileExists(customPath) {
			return fmt.Errorf("config file %s does not exist", customPath)
		}
		return loadFile(k, customPath, "project")
	}
	if workDir == "" {
		workDir = "."
	}
	if path := findConfigFile(workDir); path != "" {
		return loadFile(k, path, "project")
	}
	return nil
}

// findConfigFile returns the first .gitlogue.{yml,yaml,json} in dir.
func findConfigFile(dir string) string {
	for _, ext := range configExtensions {
		p := filepath.Join(dir, configBaseName+ext)
		if fileExists(p) {
			return p
		}
	}
	return ""
}

func loadFile(k *koanf.Koanf, path, configType string) error {
	var parser koanf.Parser = yaml.Parser()
	if strings.EqualFold(filepath.Ext(path), ".json") {
		parser = json.Parser()
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

func finalize(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	cfg.Engine = strings.ToLower(strings.TrimSpace(cfg.Engine))
	cfg.Endpoint = strings.TrimSpace(cfg.Endpoint)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.APIKeyEnv == "" {
		p, _ := llm.ProviderFor(cfg.Provider)
		cfg.APIKeyEnv = p.DefaultAPIKeyEnv()
	}
	return &cfg, nil
}

// Validate checks values that can be judged without contacting anything.
func (c *Config) Validate() error {
	if _, err := llm.ProviderFor(c.Provider); err != nil {
		return err
	}
	switch git.Engine(c.Engine) {
	case git.EngineCLI, git.EngineGoGit:
	default:
		return fmt.Errorf("unknown engine %q; available: %s, %s", c.Engine, git.EngineCLI, git.EngineGoGit)
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must not be negative, got %d", c.MaxTokens)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %v", c.Timeout)
	}
	if c.Condense.Threshold <= 0 {
		return fmt.Errorf("condense.threshold must be positive, got %d", c.Condense.Threshold)
	}
	if c.Condense.GroupSize <= 0 {
		return fmt.Errorf("condense.group_size must be positive, got %d", c.Condense.GroupSize)
	}
	return nil
}

// APIKey reads the credential from the environment variable named by APIKeyEnv.
func (c *Config) APIKey() string {
	if c.APIKeyEnv == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(c.APIKeyEnv))
}

// LLM returns the requestor settings with the credential resolved from the environment.
func (c *Config) LLM() llm.Config {
	return llm.Config{
		Provider:  c.Provider,
		Endpoint:  c.Endpoint,
		APIKey:    c.APIKey(),
		APIKeyEnv: c.APIKeyEnv,
		Model:     c.Model,
		MaxTokens: c.MaxTokens,
		Timeout:   c.Timeout,
	}
}

// Condenser returns the condenser configured by the condense section.
func (c *Config) Condenser() condense.Condenser {
	return condense.Condenser{Threshold: c.Condense.Threshold, GroupSize: c.Condense.GroupSize}
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// envTransform maps GITLOGUE_MAX_TOKENS to max_tokens and GITLOGUE_CONDENSE__THRESHOLD
// to condense.threshold.
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}
