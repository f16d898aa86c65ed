// internal/providerfactory/factory.go
package providerfactory

import (
	"fmt"

	"github.com/pangyo-qna/kbqa/internal/appconfig"
	"github.com/pangyo-qna/kbqa/internal/logging"
	"github.com/pangyo-qna/kbqa/internal/providers"
	"github.com/pangyo-qna/kbqa/internal/providers/ollama"
	"github.com/pangyo-qna/kbqa/internal/providers/remote"
)

// NewGenerator selects and configures the generator named by the
// configuration. A nil generator with a nil error means answers are always
// synthesized locally.
func NewGenerator(cfg *appconfig.Config) (providers.Generator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config provided to provider factory")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.GeneratorType() {
	case appconfig.GeneratorNone:
		logging.LogEvent("generator disabled: answering from the local corpus only")
		return nil, nil
	case appconfig.GeneratorRemote:
		logging.LogEvent("remote generator ready: %s", cfg.Generator.URL)
		return remote.New(cfg), nil
	case appconfig.GeneratorOllama:
		logging.LogEvent("ollama generator ready: %s (%s)", cfg.Generator.URL, cfg.Generator.Model)
		return ollama.New(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported generator type %q", cfg.Generator.Type)
	}
}
