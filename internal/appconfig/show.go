package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config, fallback Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		cfg = &fallback
	}
	corpus := cfg.CorpusPath
	if corpus == "" {
		corpus = "(embedded)"
	}
	policy := cfg.RankingPolicy()

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Corpus:            %s\n", corpus)
	fmt.Fprintf(out, "  Search Limit:      %d\n", cfg.SearchLimit)
	fmt.Fprintf(out, "  Context Limit:     %d\n", cfg.ContextLimit)
	fmt.Fprintf(out, "  History Turns:     %d\n", cfg.MaxHistoryTurns)
	fmt.Fprintf(out, "  Generator:         %s\n", cfg.GeneratorType())
	if cfg.GeneratorType() != GeneratorNone {
		fmt.Fprintf(out, "  Generator URL:     %s\n", cfg.Generator.URL)
		fmt.Fprintf(out, "  Generator Model:   %s\n", cfg.Generator.Model)
	}
	fmt.Fprintf(out, "  Request Timeout:   %s\n", cfg.RequestTimeout())
	fmt.Fprintf(out, "  Listen Address:    %s\n", cfg.ListenAddr)
	fmt.Fprintf(out, "  Log Level:         %s\n", cfg.LogLevel)
	fmt.Fprintf(out, "  Debug:             %v\n", cfg.Debug)
	fmt.Fprintf(out, "  JSON Mode:         %v\n", cfg.JSONMode)
	fmt.Fprintf(out, "  Threshold Tiers:   %v\n", policy.Tiers)
}
