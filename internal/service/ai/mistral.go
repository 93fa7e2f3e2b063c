package ai

import "chitchat_server/internal/config"

const mistralDefaultBase = "https://api.mistral.ai/v1"

// newMistral reuses the chat-completions implementation against Mistral's
// endpoint.
func newMistral(cfg config.AIProviderConfig) *openAI {
	base := cfg.BaseURL
	if base == "" {
		base = mistralDefaultBase
	}
	return &openAI{
		name:    "mistral",
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: base,
		models:  []string{"mistral-large-latest", "mistral-small-latest"},
	}
}
