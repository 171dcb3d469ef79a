package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/claimcheck/internal/extract"
	"github.com/ppiankov/claimcheck/internal/httpapi"
	"github.com/ppiankov/claimcheck/internal/llm"
	"github.com/ppiankov/claimcheck/internal/model"
	"github.com/ppiankov/claimcheck/internal/pipeline"
	"github.com/ppiankov/claimcheck/internal/score"
	"github.com/ppiankov/claimcheck/internal/search"
	"github.com/ppiankov/claimcheck/internal/util"
	"github.com/ppiankov/claimcheck/internal/worker"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the fact-check HTTP server",
	Long: `Serve starts the HTTP API.

Endpoints:
  GET/POST /fact-check  run a fact-check, streaming progress as server-sent events
  GET      /healthz     liveness check

Example:
  claimcheck serve
  claimcheck serve --addr :8000
  SEARXNG_URL=http://searx.local:8080 claimcheck serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :5000)")
}

// buildRunner wires the pipeline from configuration: provider, search client,
// fetcher with per-host rate limiting and optional robots.txt gate, extractor
// and relevance scorer.
func buildRunner(cfg model.Config) (*pipeline.Runner, llm.Provider, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, nil, fmt.Errorf("create LLM provider: %w", err)
	}

	searcher := search.NewClient(cfg.Search, nil)

	var limiter *worker.Limiter
	if cfg.Fetch.PerHostRPS > 0 {
		limiter = worker.NewLimiter(cfg.Fetch.PerHostRPS, cfg.Fetch.PerHostBurst)
	}
	var robots *util.RobotsGate
	if cfg.Fetch.RespectRobots {
		robots = util.NewRobotsGate(cfg.Fetch.UserAgent, cfg.Fetch.Timeout, nil)
	}
	fetcher := extract.NewFetcher(cfg.Fetch, limiter, robots)
	extractor := extract.NewExtractor(fetcher, cfg.Pipeline.SummaryInputLimit)

	scorer := score.NewScorer(provider)

	return pipeline.NewRunner(provider, searcher, extractor, scorer, cfg.Pipeline), provider, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	runner, provider, err := buildRunner(cfg)
	if err != nil {
		return err
	}

	probeCtx, probeCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if !provider.IsAvailable(probeCtx) {
		log.Printf("warning: LLM provider %q is not reachable at startup; requests will fail until it is", provider.Name())
	}
	probeCancel()

	handler := httpapi.NewHandler(runner, cfg.Server, cfg.Pipeline.DefaultSources)
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s (provider=%s model=%s search=%s)",
			cfg.Server.Addr, provider.Name(), cfg.LLM.Model, cfg.Search.BaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		log.Printf("received %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
