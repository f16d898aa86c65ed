// internal/providerfactory/factory_test.go
package providerfactory

import (
	"testing"

	"github.com/pangyo-qna/kbqa/internal/appconfig"
	"github.com/pangyo-qna/kbqa/internal/providers/ollama"
	"github.com/pangyo-qna/kbqa/internal/providers/remote"
)

func TestNewGeneratorErrorsOnNilConfig(t *testing.T) {
	if _, err := NewGenerator(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestNewGeneratorDefaultsToNone(t *testing.T) {
	gen, err := NewGenerator(&appconfig.Config{})
	if err != nil {
		t.Fatalf("NewGenerator returned error: %v", err)
	}
	if gen != nil {
		t.Fatalf("expected no generator, got %T", gen)
	}
}

func TestNewGeneratorSelectsByType(t *testing.T) {
	gen, err := NewGenerator(&appconfig.Config{Generator: appconfig.GeneratorConfig{Type: "Remote", URL: "http://localhost:8000"}})
	if err != nil {
		t.Fatalf("NewGenerator returned error: %v", err)
	}
	if _, ok := gen.(*remote.Provider); !ok {
		t.Fatalf("expected remote.Provider, got %T", gen)
	}

	gen, err = NewGenerator(&appconfig.Config{Generator: appconfig.GeneratorConfig{Type: "ollama", URL: "http://localhost:11434", Model: "llama3"}})
	if err != nil {
		t.Fatalf("NewGenerator returned error: %v", err)
	}
	if _, ok := gen.(*ollama.Provider); !ok {
		t.Fatalf("expected ollama.Provider, got %T", gen)
	}
}

func TestNewGeneratorRejectsUnsupported(t *testing.T) {
	if _, err := NewGenerator(&appconfig.Config{Generator: appconfig.GeneratorConfig{Type: "unsupported", URL: "http://x"}}); err == nil {
		t.Fatal("expected error for unsupported generator type")
	}
	if _, err := NewGenerator(&appconfig.Config{Generator: appconfig.GeneratorConfig{Type: "remote"}}); err == nil {
		t.Fatal("expected error for remote generator without url")
	}
}
