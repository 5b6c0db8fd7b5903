// Package provider maps provider keys to OpenAI-compatible endpoints
// and builds chat backends for them. Credentials are discovered from
// provider-specific environment variables.
package provider

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/chai-cli/chai/internal/api"
	"github.com/chai-cli/chai/internal/chat"
)

// ErrUnknownProvider is returned when a model spec names a provider
// that is not registered.
var ErrUnknownProvider = errors.New("unknown provider")

// Provider describes one chat provider with an OpenAI-compatible API.
type Provider struct {
	// Key is the short name used in model specs, e.g. "openai".
	Key string

	// Name is the display name for listings.
	Name string

	// BaseURL is the endpoint base, without a trailing slash.
	BaseURL string

	// APIKeyEnv names the environment variable holding the API key.
	// Empty means the provider needs no key (e.g. a local server).
	APIKeyEnv string
}

// registry holds the known providers, keyed by Provider.Key.
var registry = map[string]Provider{
	"openai": {
		Key:       "openai",
		Name:      "OpenAI",
		BaseURL:   "https://api.openai.com/v1",
		APIKeyEnv: "OPENAI_API_KEY",
	},
	"openrouter": {
		Key:       "openrouter",
		Name:      "OpenRouter",
		BaseURL:   "https://openrouter.ai/api/v1",
		APIKeyEnv: "OPENROUTER_API_KEY",
	},
	"groq": {
		Key:       "groq",
		Name:      "Groq",
		BaseURL:   "https://api.groq.com/openai/v1",
		APIKeyEnv: "GROQ_API_KEY",
	},
	"mistral": {
		Key:       "mistral",
		Name:      "Mistral",
		BaseURL:   "https://api.mistral.ai/v1",
		APIKeyEnv: "MISTRAL_API_KEY",
	},
	"deepseek": {
		Key:       "deepseek",
		Name:      "DeepSeek",
		BaseURL:   "https://api.deepseek.com/v1",
		APIKeyEnv: "DEEPSEEK_API_KEY",
	},
	"ollama": {
		Key:     "ollama",
		Name:    "Ollama",
		BaseURL: "http://localhost:11434/v1",
	},
}

// Get returns the provider registered under key.
func Get(key string) (Provider, error) {
	p, ok := registry[key]
	if !ok {
		return Provider{}, fmt.Errorf("%w: %s", ErrUnknownProvider, key)
	}
	return p, nil
}

// All returns the registered providers sorted by name.
func All() []Provider {
	providers := make([]Provider, 0, len(registry))
	for _, p := range registry {
		providers = append(providers, p)
	}
	sort.Slice(providers, func(i, j int) bool {
		return providers[i].Name < providers[j].Name
	})
	return providers
}

// SplitModel splits a "provider:modelname" spec into its parts.
func SplitModel(spec string) (key, model string, err error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid model: %s", spec)
	}
	return parts[0], parts[1], nil
}

// APIKey reads the provider's API key from the environment. The second
// return value is false when the provider requires a key and none is
// set.
func (p Provider) APIKey() (string, bool) {
	if p.APIKeyEnv == "" {
		return "", true
	}
	key := os.Getenv(p.APIKeyEnv)
	return key, key != ""
}

// Client builds an API client for the provider. Fails when a required
// API key is missing.
func (p Provider) Client() (api.Client, error) {
	key, ok := p.APIKey()
	if !ok {
		return nil, fmt.Errorf("API key environment variable %s not set", p.APIKeyEnv)
	}
	return api.NewClient(api.Config{
		BaseURL: p.BaseURL,
		APIKey:  key,
	}), nil
}

// ListModels fetches the model IDs the provider advertises, sorted.
func (p Provider) ListModels(ctx context.Context) ([]string, error) {
	client, err := p.Client()
	if err != nil {
		return nil, err
	}

	models, err := client.ListModels(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(models))
	for _, m := range models {
		ids = append(ids, m.ID)
	}
	sort.Strings(ids)
	return ids, nil
}

// backend adapts an api.Client to the chat.Backend seam, bound to one
// model.
type backend struct {
	client api.Client
	model  string
}

// NewBackend builds a chat backend for the given model. Credential
// problems surface here, before the session starts.
func (p Provider) NewBackend(model string) (chat.Backend, error) {
	client, err := p.Client()
	if err != nil {
		return nil, err
	}
	return &backend{client: client, model: model}, nil
}

func (b *backend) Stream(ctx context.Context, messages []chat.Message) (chat.FragmentStream, error) {
	req := &api.ChatRequest{
		Model:    b.model,
		Messages: make([]api.Message, len(messages)),
	}
	for i, m := range messages {
		req.Messages[i] = api.Message{Role: string(m.Role), Content: m.Content}
	}
	return b.client.ChatStream(ctx, req)
}
