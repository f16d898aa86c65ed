// internal/cli/root.go
package kbqa

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pangyo-qna/kbqa/internal/appconfig"
	"github.com/pangyo-qna/kbqa/internal/logging"
)

// envPrefix namespaces environment overrides, e.g. KBQA_GENERATOR_URL.
const envPrefix = "KBQA"

var (
	cfgFile       string
	currentConfig *appconfig.Config
)

var rootCmd = &cobra.Command{
	Use:           "kbqa",
	Short:         "kbqa answers school FAQ questions from an official corpus",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1) .env first so its values are visible as environment overrides.
		if err := loadDotEnv(".env"); err != nil {
			return err
		}

		// 2) Load config (file or defaults)
		if err := ensureConfigLoaded(cmd.Flags().Changed("config")); err != nil {
			return err
		}

		// 3) Keep flags and viper on the same final value.
		for _, name := range []string{"debug", "jsonMode"} {
			if !cmd.Flags().Changed(name) {
				val := viper.GetBool(name)
				_ = cmd.Flags().Set(name, strconv.FormatBool(val))
			}
		}

		// 4) Materialize flags > env > config > defaults into currentConfig.
		cfg, err := unmarshalConfig()
		if err != nil {
			return err
		}
		currentConfig = cfg

		return logging.Init(logging.Options{
			Path:    cfg.LogFilePath(),
			Level:   logLevel(cfg),
			Console: consoleFor(cmd, cfg),
		})
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Close()
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("jsonMode", false, "enable JSON output mode")
	rootCmd.PersistentFlags().String("corpus", "", "corpus file (.json or .yaml); empty uses the embedded corpus")
	rootCmd.PersistentFlags().String("logLevel", "", "log level (debug, info, warn, error)")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("jsonMode", rootCmd.PersistentFlags().Lookup("jsonMode"))
	_ = viper.BindPFlag("corpusPath", rootCmd.PersistentFlags().Lookup("corpus"))
	_ = viper.BindPFlag("logLevel", rootCmd.PersistentFlags().Lookup("logLevel"))

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("generator.url", envPrefix+"_GENERATOR_URL", envPrefix+"_API_BASE_URL")
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = appconfig.DefaultConfigPath
	}
	viper.SetConfigFile(path)
	viper.SetConfigType("json")
}

// ensureConfigLoaded reads the config file and registers every key so that
// environment overrides reach Unmarshal. A missing file is only an error when
// the path was given explicitly.
func ensureConfigLoaded(explicit bool) error {
	d := appconfig.Defaults()
	viper.SetDefault("corpusPath", "")
	viper.SetDefault("searchLimit", d.SearchLimit)
	viper.SetDefault("contextLimit", d.ContextLimit)
	viper.SetDefault("maxHistoryTurns", d.MaxHistoryTurns)
	viper.SetDefault("generator.type", "")
	viper.SetDefault("generator.url", "")
	viper.SetDefault("generator.model", "")
	viper.SetDefault("generator.systemPrompt", "")
	viper.SetDefault("timeout", d.TimeoutSeconds)
	viper.SetDefault("listenAddr", d.ListenAddr)
	viper.SetDefault("logFile", "")
	viper.SetDefault("logLevel", d.LogLevel)
	viper.SetDefault("debug", false)
	viper.SetDefault("jsonMode", false)

	err := viper.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		if explicit {
			return fmt.Errorf("no configuration file found at %q", viper.ConfigFileUsed())
		}
		// Drop values left by an earlier read of a different file.
		return viper.ReadConfig(strings.NewReader("{}"))
	}
	return fmt.Errorf("failed to load config: %w", err)
}

// unmarshalConfig decodes the merged viper state using the config's json tags.
func unmarshalConfig() (*appconfig.Config, error) {
	var cfg appconfig.Config
	err := viper.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "json"
	})
	if err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if used := viper.ConfigFileUsed(); used != "" {
		if _, statErr := os.Stat(used); statErr == nil {
			cfg.ConfigPath = used
		}
	}
	return &cfg, nil
}

// loadDotEnv loads variables from path without overriding the environment.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func logLevel(cfg *appconfig.Config) string {
	if cfg.Debug {
		return "debug"
	}
	return cfg.LogLevel
}

// consoleFor mirrors logs to stderr in debug mode, except under the full
// screen chat where they would corrupt the display.
func consoleFor(cmd *cobra.Command, cfg *appconfig.Config) io.Writer {
	if !cfg.Debug || cmd.Name() == "chat" {
		return nil
	}
	return os.Stderr
}

// getConfig returns the loaded application configuration for other packages.
func getConfig() *appconfig.Config {
	if currentConfig == nil {
		d := appconfig.Defaults()
		return &d
	}
	return currentConfig
}

// SetVersionInfo sets the version reported by --version.
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
}
