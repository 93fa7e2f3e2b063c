// Package ai routes chat prompts to configured model providers.
package ai

import (
	"context"
	"net/http"
	"sort"
	"time"

	"chitchat_server/internal/config"
	"chitchat_server/pkg/errorx"
)

// Provider is one backing model API.
type Provider interface {
	Name() string
	Models() []string
	Generate(ctx context.Context, model, prompt string) (string, error)
	TestConnection(ctx context.Context) error
}

// httpClient is shared by all providers; generation can be slow.
var httpClient = &http.Client{Timeout: 60 * time.Second}

// Registry holds the configured providers keyed by name.
type Registry struct {
	providers   map[string]Provider
	defaultName string
}

// NewRegistry builds providers from config. Unknown provider names are
// rejected at startup rather than at first use.
func NewRegistry(cfg config.AIConfig) (*Registry, error) {
	r := &Registry{providers: map[string]Provider{}, defaultName: cfg.Default}
	for _, pc := range cfg.Providers {
		var p Provider
		switch pc.Name {
		case "openai":
			p = newOpenAI(pc)
		case "gemini":
			p = newGemini(pc)
		case "mistral":
			p = newMistral(pc)
		default:
			return nil, errorx.Newf(errorx.CodeInvalidParam, "unknown ai provider %q", pc.Name)
		}
		r.providers[pc.Name] = p
	}
	if r.defaultName == "" && len(cfg.Providers) > 0 {
		r.defaultName = cfg.Providers[0].Name
	}
	return r, nil
}

// Get returns a provider by name, or the default for an empty name.
func (r *Registry) Get(name string) (Provider, error) {
	if name == "" {
		name = r.defaultName
	}
	p, ok := r.providers[name]
	if !ok {
		return nil, errorx.Newf(errorx.CodeNotFound, "ai provider %q not configured", name)
	}
	return p, nil
}

// Names lists the configured provider names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.providers))
	for name := range r.providers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
