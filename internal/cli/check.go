package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/claimcheck/internal/model"
)

var (
	checkSources int
	checkTimeout time.Duration
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <claim>",
	Short: "Fact-check a single claim from the terminal",
	Long: `Check runs the full pipeline for one claim: query formulation, search,
per-source extraction and relevance scoring, and verdict synthesis.

Progress goes to stderr; the verdict streams to stdout as it is generated.

Example:
  claimcheck check "The Eiffel Tower is 330 metres tall"
  claimcheck check "Bananas are berries" --sources 5`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().IntVar(&checkSources, "sources", model.DefaultNumSources, "number of sources to base the verdict on")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 10*time.Minute, "overall check timeout")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	runner, provider, err := buildRunner(cfg)
	if err != nil {
		return err
	}

	// The flag default is the built-in; a configured default wins unless the
	// flag was set explicitly.
	if !cmd.Flags().Changed("sources") && cfg.Pipeline.DefaultSources > 0 {
		checkSources = cfg.Pipeline.DefaultSources
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Provider: %s (%s)\n", provider.Name(), cfg.LLM.Model)
		fmt.Fprintf(os.Stderr, "Search: %s\n\n", cfg.Search.BaseURL)
	}

	req := model.Request{Claim: strings.TrimSpace(args[0]), NumSources: checkSources}

	// The result event carries the full accumulated verdict each time, so
	// only the unseen suffix is printed.
	printed := 0
	var sources []model.SourceRef
	var failure string

	emit := func(ev model.Event) error {
		switch ev.Kind {
		case model.EventStatus:
			fmt.Fprintf(os.Stderr, "%s\n", ev.Message)
		case model.EventError:
			failure = ev.Message
		case model.EventResult:
			if printed == 0 {
				fmt.Fprintln(os.Stderr)
			}
			if len(ev.Result) > printed {
				fmt.Print(ev.Result[printed:])
				printed = len(ev.Result)
			}
			sources = ev.Sources
		case model.EventComplete:
			fmt.Println()
		}
		return nil
	}

	if err := runner.Run(ctx, req, emit); err != nil {
		return fmt.Errorf("check failed: %w", err)
	}
	if failure != "" {
		return fmt.Errorf("%s", failure)
	}

	if len(sources) > 0 {
		fmt.Fprintf(os.Stderr, "\nSources:\n")
		for i, src := range sources {
			fmt.Fprintf(os.Stderr, "  %d. %s\n     %s\n", i+1, src.Title, src.URL)
		}
	}

	return nil
}
