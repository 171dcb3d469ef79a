// Package pipeline sequences the claim-verification stages: query
// formulation, search, per-source extract/summarize/score, ranking, and
// streamed verdict synthesis. The controller owns ordering, budgets, and
// failure policy; everything else is a collaborator behind an interface.
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/ppiankov/claimcheck/internal/llm"
	"github.com/ppiankov/claimcheck/internal/model"
	"github.com/ppiankov/claimcheck/internal/score"
	"github.com/ppiankov/claimcheck/internal/worker"
)

// Searcher is the search-engine collaborator boundary.
type Searcher interface {
	Search(ctx context.Context, query string) ([]model.SearchResult, error)
}

// Extractor is the content-extraction boundary. Extract never fails: ok
// reports whether content is page text or an error description.
type Extractor interface {
	Extract(ctx context.Context, rawURL string) (content string, ok bool)
}

// RelevanceScorer rates content against the claim, collapsing every failure
// to a zero score.
type RelevanceScorer interface {
	Score(ctx context.Context, content, claim string) model.RelevanceScore
}

// Runner executes one fact-check request end to end, reporting progress and
// results through an ordered event stream.
type Runner struct {
	formulator  *Formulator
	summarizer  *Summarizer
	synthesizer *Synthesizer
	searcher    Searcher
	extractor   Extractor
	scorer      RelevanceScorer
	cfg         model.PipelineConfig
}

// NewRunner creates a pipeline runner.
func NewRunner(provider llm.Provider, searcher Searcher, extractor Extractor, scorer RelevanceScorer, cfg model.PipelineConfig) *Runner {
	if cfg.MaxExamined <= 0 {
		cfg.MaxExamined = 20
	}
	if cfg.SourceWorkers <= 0 {
		cfg.SourceWorkers = 1
	}
	if cfg.RawFallbackLimit <= 0 {
		cfg.RawFallbackLimit = 8000
	}

	return &Runner{
		formulator:  NewFormulator(provider),
		summarizer:  NewSummarizer(provider, cfg.RawFallbackLimit),
		synthesizer: NewSynthesizer(provider),
		searcher:    searcher,
		extractor:   extractor,
		scorer:      scorer,
		cfg:         cfg,
	}
}

// Run executes the request. Fatal pipeline conditions (bad input, query
// formulation failure, search failure, zero surviving sources) are reported
// as a single terminal error event and Run returns nil: the request was
// handled. Run returns an error only when an event could not be delivered,
// in which case all further external calls stop promptly.
func (r *Runner) Run(ctx context.Context, req model.Request, emit func(model.Event) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sink := newEventSink(emit, cancel)

	if err := req.Validate(); err != nil {
		sink.send(model.ErrorEvent(err.Error()))
		return sink.err()
	}

	sink.send(model.StatusEvent("Generating optimized search query..."))
	query, err := r.formulator.Formulate(ctx, req.Claim)
	if err != nil {
		sink.send(model.ErrorEvent(err.Error()))
		return sink.err()
	}

	sink.send(model.StatusEvent("Searching for relevant sources..."))
	results, err := r.searcher.Search(ctx, query)
	if err != nil {
		sink.send(model.ErrorEvent("Search failed: " + err.Error()))
		return sink.err()
	}

	processed := r.processSources(ctx, req, results, sink)
	if sink.failed() {
		return sink.err()
	}
	if len(processed) == 0 {
		sink.send(model.ErrorEvent("No valid sources found"))
		return sink.err()
	}

	top := score.SelectTop(processed, req.NumSources)
	refs := model.Refs(top)

	sink.send(model.StatusEvent("Generating fact-check analysis..."))
	_, err = r.synthesizer.Synthesize(ctx, req.Claim, top, func(accumulated string) error {
		return sink.trySend(model.ResultEvent(accumulated, refs))
	})
	if sink.failed() {
		return sink.err()
	}
	if err != nil {
		sink.send(model.ErrorEvent(err.Error()))
		return sink.err()
	}

	sink.send(model.CompleteEvent())
	return sink.err()
}

// processSources walks the search results in encounter order through
// extract, summarize, and score. Per-source failures only cost that source.
// The walk ends when req.NumSources sources are retained or MaxExamined
// results have been examined, whichever comes first; with several workers
// both checks are atomic across them. Retained sources come back in
// encounter order no matter which worker finished first, so ranking ties
// preserve upstream order.
func (r *Runner) processSources(ctx context.Context, req model.Request, results []model.SearchResult, sink *eventSink) []model.ProcessedSource {
	budget := worker.NewBudget(len(results), r.cfg.MaxExamined, req.NumSources)
	kept := make([]*model.ProcessedSource, len(results))
	announced := min(len(results), req.NumSources)

	var mu sync.Mutex
	worker.Process(ctx, r.cfg.SourceWorkers, budget, func(ctx context.Context, idx int) {
		result := results[idx]

		sink.send(model.StatusEvent(fmt.Sprintf("Extracting and summarizing content from source %d of %d...", idx+1, announced)))
		content, ok := r.extractor.Extract(ctx, result.URL)
		if ok {
			content = r.summarizer.Summarize(ctx, content)
		}

		sink.send(model.StatusEvent(fmt.Sprintf("Analyzing relevance of source %d...", idx+1)))
		relevance := r.scorer.Score(ctx, content, req.Claim)

		if relevance.Score > 0 || r.cfg.KeepZeroScores {
			mu.Lock()
			kept[idx] = &model.ProcessedSource{
				URL:       result.URL,
				Title:     result.Title,
				Content:   content,
				Relevance: relevance,
			}
			mu.Unlock()
			budget.Retain()
		}
	})

	processed := make([]model.ProcessedSource, 0, req.NumSources)
	for _, s := range kept {
		if s != nil {
			processed = append(processed, *s)
		}
	}
	return processed
}

// eventSink serializes event delivery and latches the first delivery
// failure. Once delivery fails the request context is canceled and all
// later events are dropped: a gone client must not keep external calls
// running.
type eventSink struct {
	mu       sync.Mutex
	emit     func(model.Event) error
	cancel   context.CancelFunc
	firstErr error
}

func newEventSink(emit func(model.Event) error, cancel context.CancelFunc) *eventSink {
	return &eventSink{emit: emit, cancel: cancel}
}

// send delivers the event, dropping it if delivery has already failed.
func (s *eventSink) send(ev model.Event) {
	_ = s.trySend(ev)
}

// trySend delivers the event and returns the delivery error, if any.
func (s *eventSink) trySend(ev model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.firstErr != nil {
		return s.firstErr
	}
	if err := s.emit(ev); err != nil {
		s.firstErr = err
		s.cancel()
		return err
	}
	return nil
}

func (s *eventSink) failed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.firstErr != nil
}

func (s *eventSink) err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.firstErr
}
