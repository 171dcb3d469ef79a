package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/claimcheck/internal/model"
)

// loadConfig assembles the effective configuration: built-in defaults,
// overlaid with the config file and CLAIMCHECK_* environment variables via
// viper, then the legacy environment variables the original deployment
// scripts still export.
func loadConfig() model.Config {
	cfg := model.DefaultConfig()

	overrideString(&cfg.Server.Addr, "server.addr")
	if viper.IsSet("server.allowed_origins") {
		cfg.Server.AllowedOrigins = viper.GetStringSlice("server.allowed_origins")
	}

	overrideString(&cfg.Search.BaseURL, "search.base_url")
	overrideString(&cfg.Search.Engines, "search.engines")
	overrideString(&cfg.Search.Language, "search.language")
	overrideDuration(&cfg.Search.Timeout, "search.timeout")

	overrideString(&cfg.LLM.Provider, "llm.provider")
	overrideString(&cfg.LLM.Model, "llm.model")
	overrideString(&cfg.LLM.BaseURL, "llm.base_url")
	overrideDuration(&cfg.LLM.Timeout, "llm.timeout")
	overrideString(&cfg.LLM.HTTPProxy, "llm.http_proxy")
	overrideString(&cfg.LLM.HTTPSProxy, "llm.https_proxy")

	overrideDuration(&cfg.Fetch.Timeout, "fetch.timeout")
	overrideString(&cfg.Fetch.UserAgent, "fetch.user_agent")
	if viper.IsSet("fetch.max_body_bytes") {
		cfg.Fetch.MaxBodyBytes = viper.GetInt64("fetch.max_body_bytes")
	}
	if viper.IsSet("fetch.respect_robots") {
		cfg.Fetch.RespectRobots = viper.GetBool("fetch.respect_robots")
	}
	if viper.IsSet("fetch.per_host_rps") {
		cfg.Fetch.PerHostRPS = viper.GetFloat64("fetch.per_host_rps")
	}
	overrideInt(&cfg.Fetch.PerHostBurst, "fetch.per_host_burst")

	overrideInt(&cfg.Pipeline.DefaultSources, "pipeline.default_sources")
	overrideInt(&cfg.Pipeline.MaxExamined, "pipeline.max_examined")
	overrideInt(&cfg.Pipeline.SourceWorkers, "pipeline.source_workers")
	overrideInt(&cfg.Pipeline.SummaryInputLimit, "pipeline.summary_input_limit")
	overrideInt(&cfg.Pipeline.RawFallbackLimit, "pipeline.raw_fallback_limit")
	if viper.IsSet("pipeline.keep_zero_scores") {
		cfg.Pipeline.KeepZeroScores = viper.GetBool("pipeline.keep_zero_scores")
	}

	// Legacy environment variables, kept for compatibility with existing
	// deployments. They lose to nothing: exporting them is an explicit choice.
	if v := os.Getenv("SEARXNG_URL"); v != "" {
		cfg.Search.BaseURL = v
	}
	if v := os.Getenv("OLLAMA_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}

	return cfg
}

func overrideString(dst *string, key string) {
	if viper.IsSet(key) {
		*dst = viper.GetString(key)
	}
}

func overrideInt(dst *int, key string) {
	if viper.IsSet(key) {
		*dst = viper.GetInt(key)
	}
}

func overrideDuration(dst *time.Duration, key string) {
	if viper.IsSet(key) {
		*dst = viper.GetDuration(key)
	}
}

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Claimcheck configuration",
	Long: `Manage Claimcheck configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (CLAIMCHECK_*, plus legacy SEARXNG_URL, OLLAMA_URL, OLLAMA_MODEL)
3. Config file (~/.claimcheck/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	Long:  `Display the effective configuration after defaults, config file and environment variables are merged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if configFile := viper.ConfigFileUsed(); configFile != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		yamlData, err := yaml.Marshal(loadConfig())
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}
		fmt.Println(string(yamlData))

		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.claimcheck/config.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error finding home directory: %w", err)
		}

		configDir := home + "/.claimcheck"
		configPath := configDir + "/config.yaml"

		// Check if config already exists
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s\nUse 'claimcheck config show' to view it, or delete it first to recreate", configPath)
		}

		// Create directory
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("error creating config directory: %w", err)
		}

		f, err := os.Create(configPath)
		if err != nil {
			return fmt.Errorf("error creating config file: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close config file: %w", closeErr)
			}
		}()

		yamlData, err := yaml.Marshal(model.DefaultConfig())
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}

		header := "# Claimcheck Configuration File\n" +
			"#\n" +
			"# Configuration hierarchy (highest to lowest priority):\n" +
			"#   1. CLI flags\n" +
			"#   2. Environment variables (CLAIMCHECK_*)\n" +
			"#   3. This config file\n" +
			"#   4. Built-in defaults\n\n"
		if _, err := f.WriteString(header); err != nil {
			return fmt.Errorf("error writing config: %w", err)
		}
		if _, err := f.Write(yamlData); err != nil {
			return fmt.Errorf("error writing config: %w", err)
		}

		fmt.Printf("Created default configuration: %s\n", configPath)
		fmt.Printf("\nTo view the effective configuration:\n")
		fmt.Printf("  claimcheck config show\n")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
