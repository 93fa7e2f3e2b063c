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

const geminiDefaultBase = "https://generativelanguage.googleapis.com/v1beta"

type gemini struct {
	apiKey  string
	model   string
	baseURL string
}

func newGemini(cfg config.AIProviderConfig) *gemini {
	base := cfg.BaseURL
	if base == "" {
		base = geminiDefaultBase
	}
	return &gemini{apiKey: cfg.APIKey, model: cfg.Model, baseURL: base}
}

func (p *gemini) Name() string { return "gemini" }

func (p *gemini) Models() []string {
	return []string{"gemini-1.5-pro", "gemini-1.5-flash"}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *gemini) Generate(ctx context.Context, model, prompt string) (string, error) {
	if model == "" {
		model = p.model
	}
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", errorx.Wrap(err, errorx.CodeServerBusy, "marshal ai request")
	}
	url := p.baseURL + "/models/" + model + ":generateContent?key=" + p.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", errorx.Wrap(err, errorx.CodeServerBusy, "build ai request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", errorx.Wrap(err, errorx.CodeServerBusy, "gemini request failed")
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errorx.Wrap(err, errorx.CodeServerBusy, "gemini response read failed")
	}
	var out geminiResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", errorx.Wrap(err, errorx.CodeServerBusy, "gemini response decode failed")
	}
	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if out.Error != nil {
			msg = out.Error.Message
		}
		return "", errorx.Newf(errorx.CodeServerBusy, "gemini: %s", msg)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errorx.New(errorx.CodeServerBusy, "gemini returned no candidates")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

func (p *gemini) TestConnection(ctx context.Context) error {
	_, err := p.Generate(ctx, "", "ping")
	return err
}
