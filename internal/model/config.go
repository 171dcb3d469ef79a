package model

import "time"

// Config is the complete process configuration. It is assembled once at
// startup and injected into each component; nothing mutates it afterwards.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Search   SearchConfig   `yaml:"search"`
	LLM      LLMConfig      `yaml:"llm"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// SearchConfig configures the SearxNG collaborator.
type SearchConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Engines  string        `yaml:"engines"`
	Language string        `yaml:"language"`
	Timeout  time.Duration `yaml:"timeout"`
}

// LLMConfig configures the completion-service provider.
type LLMConfig struct {
	Provider   string        `yaml:"provider"` // "ollama" or "openai"
	Model      string        `yaml:"model"`
	BaseURL    string        `yaml:"base_url"`
	APIKey     string        `yaml:"-"`
	Timeout    time.Duration `yaml:"timeout"`
	HTTPProxy  string        `yaml:"http_proxy"`
	HTTPSProxy string        `yaml:"https_proxy"`
}

// FetchConfig configures page fetching for content extraction.
type FetchConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
	RespectRobots bool          `yaml:"respect_robots"`
	PerHostRPS    float64       `yaml:"per_host_rps"`
	PerHostBurst  int           `yaml:"per_host_burst"`
}

// PipelineConfig holds the per-request budgets and policy switches.
type PipelineConfig struct {
	DefaultSources    int  `yaml:"default_sources"`
	MaxExamined       int  `yaml:"max_examined"`
	SourceWorkers     int  `yaml:"source_workers"`
	SummaryInputLimit int  `yaml:"summary_input_limit"`
	RawFallbackLimit  int  `yaml:"raw_fallback_limit"`
	KeepZeroScores    bool `yaml:"keep_zero_scores"`
}

// Sites reject unidentified clients, so page fetches identify as a browser.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// DefaultConfig returns the built-in defaults. Environment variables, config
// file and flags are layered on top by the CLI.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":5000",
			AllowedOrigins: []string{"*"},
		},
		Search: SearchConfig{
			BaseURL:  "http://localhost:8080",
			Engines:  "google,bing",
			Language: "en",
			Timeout:  30 * time.Second,
		},
		LLM: LLMConfig{
			Provider: "ollama",
			Model:    "llama3.2:1b",
			BaseURL:  "http://localhost:11434",
			Timeout:  120 * time.Second,
		},
		Fetch: FetchConfig{
			Timeout:      10 * time.Second,
			UserAgent:    browserUserAgent,
			MaxBodyBytes: 2_000_000,
			PerHostRPS:   2,
			PerHostBurst: 4,
		},
		Pipeline: PipelineConfig{
			DefaultSources:    DefaultNumSources,
			MaxExamined:       20,
			SourceWorkers:     1,
			SummaryInputLimit: 12000,
			RawFallbackLimit:  8000,
		},
	}
}
