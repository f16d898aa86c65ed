// internal/assistant/assistant.go

// Package assistant is the chat-facing facade over the search engine. It
// answers locally from ranked corpus entries and, when a generator is
// configured, asks it to phrase the reply from the same entries. A failing
// generator never reaches the caller: the local answer is returned instead.
package assistant

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pangyo-qna/kbqa/internal/knowledge"
	"github.com/pangyo-qna/kbqa/internal/logging"
	"github.com/pangyo-qna/kbqa/internal/metrics"
	"github.com/pangyo-qna/kbqa/internal/providers"
	"github.com/pangyo-qna/kbqa/internal/reply"
	"github.com/pangyo-qna/kbqa/internal/search"
)

const (
	defaultSearchLimit  = 3
	defaultContextLimit = 4
	defaultHistoryTurns = 6
)

var errEmptyGeneration = errors.New("generator reply is empty after footer removal")

// Options tunes the assistant. Zero fields take defaults.
type Options struct {
	SearchLimit     int
	ContextLimit    int
	MaxHistoryTurns int
	SystemPrompt    string
	Model           string
	Synthesizer     reply.Synthesizer
	// Metrics receives one sample per search, reply and generation. Nil
	// disables collection.
	Metrics *metrics.Aggregator
}

// Response is one chat reply.
type Response struct {
	Reply     string   `json:"reply"`
	Sources   []string `json:"sources"`
	RequestID string   `json:"requestId"`
	// Fallback is set when the generator failed and the local answer was used.
	Fallback bool `json:"fallback"`
}

// Assistant answers questions from an engine and an optional generator.
// It is safe for concurrent use.
type Assistant struct {
	engine    *search.Engine
	generator providers.Generator
	opts      Options
}

// New builds an Assistant. generator may be nil.
func New(engine *search.Engine, generator providers.Generator, opts Options) *Assistant {
	if engine == nil {
		engine = search.NewEngine(nil)
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = defaultSearchLimit
	}
	if opts.ContextLimit <= 0 {
		opts.ContextLimit = defaultContextLimit
	}
	if opts.MaxHistoryTurns <= 0 {
		opts.MaxHistoryTurns = defaultHistoryTurns
	}
	if strings.TrimSpace(opts.SystemPrompt) == "" {
		opts.SystemPrompt = reply.DefaultSystemPrompt
	}
	return &Assistant{engine: engine, generator: generator, opts: opts}
}

// Engine returns the underlying search engine.
func (a *Assistant) Engine() *search.Engine { return a.engine }

// Metrics returns the aggregator samples are recorded to, possibly nil.
func (a *Assistant) Metrics() *metrics.Aggregator { return a.opts.Metrics }

// Search ranks the corpus for query; see search.Engine.Search.
func (a *Assistant) Search(query string, limit int) []search.Result {
	start := time.Now()
	results := a.engine.Search(query, limit)
	a.opts.Metrics.Observe("search", start, utf8.RuneCountInString(query), len(results), false)
	return results
}

// Answer returns the locally synthesized reply for query, or
// reply.NotFoundMessage when nothing matched.
func (a *Assistant) Answer(query string) string {
	return a.Render(a.Search(query, a.opts.SearchLimit), query)
}

// Render formats already ranked results with the configured synthesizer.
func (a *Assistant) Render(results []search.Result, query string) string {
	return a.opts.Synthesizer.Synthesize(results, query)
}

// Reply answers question in the context of the conversation so far.
func (a *Assistant) Reply(ctx context.Context, question string, history []reply.Turn) Response {
	start := time.Now()
	resp := a.reply(ctx, question, history)
	a.opts.Metrics.Observe("reply", start, utf8.RuneCountInString(question), len(resp.Sources), resp.Fallback)
	return resp
}

func (a *Assistant) reply(ctx context.Context, question string, history []reply.Turn) Response {
	limit := a.opts.SearchLimit
	if a.opts.ContextLimit > limit {
		limit = a.opts.ContextLimit
	}
	results := a.Search(question, limit)

	resp := Response{
		RequestID: uuid.NewString(),
		Sources:   knowledge.UniqueSources(entriesOf(head(results, a.opts.ContextLimit))),
	}
	local := a.Render(head(results, a.opts.SearchLimit), question)

	if a.generator == nil || strings.TrimSpace(question) == "" {
		resp.Reply = local
		return resp
	}

	text, err := a.generate(ctx, question, entriesOf(head(results, a.opts.ContextLimit)), history)
	if err != nil {
		logging.Logger().Warn().
			Err(err).
			Str("generator", a.generator.Name()).
			Str("request_id", resp.RequestID).
			Msg("generation failed, answering from the local corpus")
		resp.Reply = local
		resp.Fallback = true
		return resp
	}
	resp.Reply = text
	return resp
}

func (a *Assistant) generate(ctx context.Context, question string, entries []knowledge.Entry, history []reply.Turn) (string, error) {
	message := reply.BuildPrompt(question, entries, recent(history, a.opts.MaxHistoryTurns))
	start := time.Now()
	text, err := a.generator.Generate(ctx, providers.GenerateRequest{
		System:  a.opts.SystemPrompt,
		Message: message,
		Model:   a.opts.Model,
	})
	a.opts.Metrics.Observe("generate", start, utf8.RuneCountInString(question), len(entries), err != nil)
	if err != nil {
		return "", err
	}
	text = reply.StripReferenceFooter(text)
	if text == "" {
		return "", errEmptyGeneration
	}
	return text, nil
}

func recent(history []reply.Turn, n int) []reply.Turn {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

func head(results []search.Result, n int) []search.Result {
	if len(results) <= n {
		return results
	}
	return results[:n]
}

func entriesOf(results []search.Result) []knowledge.Entry {
	entries := make([]knowledge.Entry, len(results))
	for i, r := range results {
		entries[i] = r.Entry
	}
	return entries
}
