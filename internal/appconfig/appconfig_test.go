// internal/appconfig/appconfig_test.go
package appconfig

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// TestLoad covers a valid file with defaults applied, invalid JSON, invalid
// generator settings and a missing explicit path.
func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
        "corpusPath": "data/qna.yaml",
        "generator": {"type": "remote", "url": "http://localhost:8000"},
        "ranking": {"phraseQuestion": 20}
    }`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.ConfigPath)
	assert.Equal(t, "data/qna.yaml", cfg.CorpusPath)
	assert.Equal(t, 3, cfg.SearchLimit)
	assert.Equal(t, 4, cfg.ContextLimit)
	assert.Equal(t, 6, cfg.MaxHistoryTurns)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, GeneratorRemote, cfg.GeneratorType())

	policy := cfg.RankingPolicy()
	assert.Equal(t, 20, policy.PhraseQuestion)
	assert.Equal(t, 8, policy.PhraseAnswer)

	cfg, err = Load(writeConfig(t, `{"ranking": {"partialToken": 0, "minScore": 0}}`))
	require.NoError(t, err)
	policy = cfg.RankingPolicy()
	assert.Equal(t, 0, policy.PartialToken)
	assert.Equal(t, 0, policy.MinScore)
	assert.Equal(t, 7, policy.QuestionToken)

	_, err = Load(writeConfig(t, `{ "generator": [`))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `{ "generator": {"type": "ollama"} }`))
	assert.ErrorContains(t, err, "requires a url")

	_, err = Load(filepath.Join(t.TempDir(), "nonexistent.json"))
	assert.ErrorContains(t, err, "no configuration file found")
}

func TestLoadDefaultPathMissingUsesDefaults(t *testing.T) {
	oldCwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(oldCwd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestGeneratorTypeFromURL(t *testing.T) {
	cfg := Config{Generator: GeneratorConfig{URL: "http://localhost:8000"}}
	assert.Equal(t, GeneratorRemote, cfg.GeneratorType())
	cfg.ApplyDefaults()
	assert.Equal(t, GeneratorRemote, cfg.Generator.Type)

	assert.Equal(t, GeneratorNone, Config{}.GeneratorType())
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty type", Config{}, false},
		{"none", Config{Generator: GeneratorConfig{Type: "NONE"}}, false},
		{"remote with url", Config{Generator: GeneratorConfig{Type: "remote", URL: "http://x"}}, false},
		{"remote without url", Config{Generator: GeneratorConfig{Type: "remote"}}, true},
		{"unknown", Config{Generator: GeneratorConfig{Type: "openai", URL: "http://x"}}, true},
		{"url implies remote", Config{Generator: GeneratorConfig{URL: "http://x"}}, false},
		{"negative limit", Config{SearchLimit: -1}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestShowConfig(t *testing.T) {
	var buf bytes.Buffer
	ShowConfig(&buf, "", nil, Defaults())
	out := buf.String()
	assert.Contains(t, out, "No config file loaded (using defaults).")
	assert.Contains(t, out, "(embedded)")
	assert.Contains(t, out, "Generator:         none")
	assert.NotContains(t, out, "Generator URL")

	buf.Reset()
	cfg := Defaults()
	cfg.Generator = GeneratorConfig{Type: "ollama", URL: "http://localhost:11434", Model: "llama3"}
	ShowConfig(&buf, "config/config.json", &cfg, Defaults())
	out = buf.String()
	assert.Contains(t, out, "Config file: config/config.json")
	assert.Contains(t, out, "Generator URL:     http://localhost:11434")
	assert.Contains(t, out, "Generator Model:   llama3")
}
