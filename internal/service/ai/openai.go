package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"chitchat_server/internal/config"
	"chitchat_server/pkg/errorx"
)

const openAIDefaultBase = "https://api.openai.com/v1"

// openAI speaks the chat-completions API. Mistral exposes the same shape, so
// it embeds this implementation with a different base URL.
type openAI struct {
	name    string
	apiKey  string
	model   string
	baseURL string
	models  []string
}

func newOpenAI(cfg config.AIProviderConfig) *openAI {
	base := cfg.BaseURL
	if base == "" {
		base = openAIDefaultBase
	}
	return &openAI{
		name:    "openai",
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: base,
		models:  []string{"gpt-4o", "gpt-4o-mini", "gpt-3.5-turbo"},
	}
}

func (p *openAI) Name() string     { return p.name }
func (p *openAI) Models() []string { return p.models }

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *openAI) Generate(ctx context.Context, model, prompt string) (string, error) {
	if model == "" {
		model = p.model
	}
	body, err := json.Marshal(chatCompletionRequest{
		Model:    model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", errorx.Wrap(err, errorx.CodeServerBusy, "marshal ai request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", errorx.Wrap(err, errorx.CodeServerBusy, "build ai request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", errorx.Wrapf(err, errorx.CodeServerBusy, "%s request failed", p.name)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errorx.Wrapf(err, errorx.CodeServerBusy, "%s response read failed", p.name)
	}
	var out chatCompletionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", errorx.Wrapf(err, errorx.CodeServerBusy, "%s response decode failed", p.name)
	}
	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if out.Error != nil {
			msg = out.Error.Message
		}
		return "", errorx.Newf(errorx.CodeServerBusy, "%s: %s", p.name, msg)
	}
	if len(out.Choices) == 0 {
		return "", errorx.Newf(errorx.CodeServerBusy, "%s returned no choices", p.name)
	}
	return out.Choices[0].Message.Content, nil
}

func (p *openAI) TestConnection(ctx context.Context) error {
	_, err := p.Generate(ctx, "", "ping")
	return err
}
