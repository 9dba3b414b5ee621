package ai

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed config/providers.yaml
var providersYAML embed.FS

// Registry holds the configuration for all model backends.
type Registry struct {
	Providers []ProviderConfig `yaml:"providers"`
}

// ProviderConfig defines a single model backend.
type ProviderConfig struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Model       string   `yaml:"model"`
	System      string   `yaml:"system,omitempty"`
	Temperature *float64 `yaml:"temperature,omitempty"`
	MaxTokens   int      `yaml:"max_tokens,omitempty"`
	Parser      bool     `yaml:"parser,omitempty"`
}

// LoadRegistry reads the provider registry. AI_PROVIDERS_PATH overrides
// the embedded default, mirroring how source registries are overridden
// in deployment.
func LoadRegistry() (*Registry, error) {
	var data []byte
	var err error

	if path := os.Getenv("AI_PROVIDERS_PATH"); path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = providersYAML.ReadFile("config/providers.yaml")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read provider registry: %w", err)
	}

	var reg Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse provider registry: %w", err)
	}
	if len(reg.Providers) == 0 {
		return nil, fmt.Errorf("provider registry is empty")
	}
	return &reg, nil
}

// Build instantiates an adapter per configured backend, all sharing one
// HTTP client. The returned parser is the designated fixture-parsing
// backend (the first one flagged parser: true).
func (r *Registry) Build(client *Client) (providers []Provider, parser FixtureParser, err error) {
	seen := map[string]bool{}
	for _, pc := range r.Providers {
		if pc.ID == "" || pc.Model == "" {
			return nil, nil, fmt.Errorf("provider entry missing id or model: %+v", pc)
		}
		if seen[pc.ID] {
			return nil, nil, fmt.Errorf("duplicate provider id %q", pc.ID)
		}
		seen[pc.ID] = true

		a := &adapter{
			id:          pc.ID,
			name:        pc.Name,
			model:       pc.Model,
			system:      pc.System,
			temperature: pc.Temperature,
			maxTokens:   pc.MaxTokens,
			client:      client,
		}
		if a.name == "" {
			a.name = pc.ID
		}
		providers = append(providers, a)
		if pc.Parser && parser == nil {
			parser = a
		}
	}
	if parser == nil {
		return nil, nil, fmt.Errorf("no provider is designated as fixture parser")
	}
	return providers, parser, nil
}
