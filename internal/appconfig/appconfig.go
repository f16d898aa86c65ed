// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pangyo-qna/kbqa/internal/search"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// defaultRequestTimeout bounds a single remote generation call.
	defaultRequestTimeout = 30 * time.Second
	defaultSearchLimit    = 3
	defaultContextLimit   = 4
	defaultHistoryTurns   = 6
	defaultListenAddr     = ":8080"
)

// Generator types understood by the provider factory.
const (
	GeneratorNone   = "none"
	GeneratorRemote = "remote"
	GeneratorOllama = "ollama"
)

// Config represents the top-level application configuration.
type Config struct {
	CorpusPath      string                `json:"corpusPath,omitempty"`
	SearchLimit     int                   `json:"searchLimit,omitempty"`
	ContextLimit    int                   `json:"contextLimit,omitempty"`
	MaxHistoryTurns int                   `json:"maxHistoryTurns,omitempty"`
	Generator       GeneratorConfig       `json:"generator"`
	TimeoutSeconds  int                   `json:"timeout,omitempty"`
	ListenAddr      string                `json:"listenAddr,omitempty"`
	LogFile         string                `json:"logFile,omitempty"`
	LogLevel        string                `json:"logLevel,omitempty"`
	Debug           bool                  `json:"debug"`
	JSONMode        bool                  `json:"jsonMode"`
	Ranking         search.PolicyOverride `json:"ranking"`
	ConfigPath      string                `json:"-"`
}

// GeneratorConfig describes the optional remote text generator.
type GeneratorConfig struct {
	Type         string `json:"type"`
	URL          string `json:"url,omitempty"`
	Model        string `json:"model,omitempty"`
	SystemPrompt string `json:"systemPrompt,omitempty"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() Config {
	return Config{
		SearchLimit:     defaultSearchLimit,
		ContextLimit:    defaultContextLimit,
		MaxHistoryTurns: defaultHistoryTurns,
		Generator:       GeneratorConfig{Type: GeneratorNone},
		TimeoutSeconds:  int(defaultRequestTimeout.Seconds()),
		ListenAddr:      defaultListenAddr,
		LogLevel:        "info",
	}
}

// ApplyDefaults fills every unset field.
func (c *Config) ApplyDefaults() {
	d := Defaults()
	if c.SearchLimit <= 0 {
		c.SearchLimit = d.SearchLimit
	}
	if c.ContextLimit <= 0 {
		c.ContextLimit = d.ContextLimit
	}
	if c.MaxHistoryTurns <= 0 {
		c.MaxHistoryTurns = d.MaxHistoryTurns
	}
	c.Generator.Type = c.GeneratorType()
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = d.TimeoutSeconds
	}
	if strings.TrimSpace(c.ListenAddr) == "" {
		c.ListenAddr = d.ListenAddr
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = d.LogLevel
	}
}

// Validate reports configuration that cannot be served.
func (c Config) Validate() error {
	switch c.GeneratorType() {
	case GeneratorNone:
	case GeneratorRemote, GeneratorOllama:
		if strings.TrimSpace(c.Generator.URL) == "" {
			return fmt.Errorf("generator %q requires a url", c.Generator.Type)
		}
	default:
		return fmt.Errorf("unsupported generator type %q", c.Generator.Type)
	}
	if c.SearchLimit < 0 || c.ContextLimit < 0 || c.MaxHistoryTurns < 0 {
		return errors.New("limits must not be negative")
	}
	return nil
}

// GeneratorType returns the normalized generator type. An empty type means
// remote when a URL is set and none otherwise.
func (c Config) GeneratorType() string {
	t := strings.ToLower(strings.TrimSpace(c.Generator.Type))
	if t != "" {
		return t
	}
	if strings.TrimSpace(c.Generator.URL) != "" {
		return GeneratorRemote
	}
	return GeneratorNone
}

// RequestTimeout returns the timeout duration for HTTP requests, falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RankingPolicy returns the default ranking policy with configured overrides applied.
func (c Config) RankingPolicy() search.Policy {
	return search.DefaultPolicy().Merge(c.Ranking)
}

// LogFilePath returns the path to the application log file. Empty disables file logging.
func (c Config) LogFilePath() string {
	return strings.TrimSpace(c.LogFile)
}

// Load reads the application configuration from path. A missing file at the
// default path yields Defaults().
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if !explicit {
				return Defaults(), nil
			}
			return Config{}, fmt.Errorf("no configuration file found at %q", path)
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %q: %w", path, err)
	}
	config.ConfigPath = path
	return config, nil
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	config.ApplyDefaults()
	return config, nil
}
