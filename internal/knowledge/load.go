package knowledge

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/corpus.json
var defaultCorpus []byte

// Format identifies a corpus encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the corpus format from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and validates the corpus at path. An empty path loads the
// embedded default corpus.
func Load(path string) ([]Entry, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus %q: %w", path, err)
	}
	entries, err := Parse(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("corpus %q: %w", path, err)
	}
	return entries, nil
}

// Default returns the corpus compiled into the binary.
func Default() ([]Entry, error) {
	return Parse(defaultCorpus, FormatJSON)
}

// Parse decodes a corpus document. Both formats are checked against the same
// JSON schema before the entry invariants are enforced.
func Parse(data []byte, format Format) ([]Entry, error) {
	doc := data
	if format == FormatYAML {
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		converted, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("convert yaml: %w", err)
		}
		doc = converted
	}

	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(doc, &entries); err != nil {
		return nil, fmt.Errorf("decode corpus: %w", err)
	}
	if err := Validate(entries); err != nil {
		return nil, err
	}
	return entries, nil
}
