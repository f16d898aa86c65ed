// internal/cli/wiring.go
package kbqa

import (
	"fmt"

	"github.com/pangyo-qna/kbqa/internal/appconfig"
	"github.com/pangyo-qna/kbqa/internal/assistant"
	"github.com/pangyo-qna/kbqa/internal/knowledge"
	"github.com/pangyo-qna/kbqa/internal/logging"
	"github.com/pangyo-qna/kbqa/internal/metrics"
	"github.com/pangyo-qna/kbqa/internal/providerfactory"
	"github.com/pangyo-qna/kbqa/internal/search"
)

// buildAssistant loads the corpus, indexes it once and attaches the
// configured generator, if any.
func buildAssistant(cfg *appconfig.Config) (*assistant.Assistant, error) {
	entries, err := knowledge.Load(cfg.CorpusPath)
	if err != nil {
		return nil, err
	}
	engine := search.NewEngine(search.BuildIndex(entries), search.WithPolicy(cfg.RankingPolicy()))

	generator, err := providerfactory.NewGenerator(cfg)
	if err != nil {
		return nil, fmt.Errorf("configure generator: %w", err)
	}

	source := cfg.CorpusPath
	if source == "" {
		source = "embedded"
	}
	logging.LogEvent("indexed %d entries from %s", engine.Index().Len(), source)

	return assistant.New(engine, generator, assistant.Options{
		SearchLimit:     cfg.SearchLimit,
		ContextLimit:    cfg.ContextLimit,
		MaxHistoryTurns: cfg.MaxHistoryTurns,
		SystemPrompt:    cfg.Generator.SystemPrompt,
		Model:           cfg.Generator.Model,
		Metrics:         metrics.NewAggregator(),
	}), nil
}
