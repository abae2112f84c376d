package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"voyage/internal/restclient"
	"voyage/internal/types"
)

const openAIEndpoint = "https://api.openai.com/v1/chat/completions"

// OpenAIProvider implements Invoker over the chat completions endpoint.
type OpenAIProvider struct {
	apiKey   string
	model    string
	endpoint string
	rest     *restclient.Client
}

func NewOpenAIProvider(apiKey, model string) (*OpenAIProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: openai api key is empty", types.ErrConfig)
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIProvider{
		apiKey:   apiKey,
		model:    model,
		endpoint: openAIEndpoint,
		rest:     restclient.New("openai", 60*time.Second),
	}, nil
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *OpenAIProvider) GenerateStructured(ctx context.Context, prompt string, schema *Schema, out any) error {
	full := prompt
	if schema != nil {
		full = fmt.Sprintf("%s\n\nRespond with a single JSON object shaped like:\n%s", prompt, schema.Example())
	}
	text, err := p.complete(ctx, full, &responseFormat{Type: "json_object"})
	if err != nil {
		return err
	}
	return decodeStructured(text, schema, out)
}

func (p *OpenAIProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	return p.complete(ctx, prompt, nil)
}

func (p *OpenAIProvider) complete(ctx context.Context, prompt string, format *responseFormat) (string, error) {
	reqBody, err := json.Marshal(chatRequest{
		Model:          p.model,
		Messages:       []chatMessage{{Role: "user", Content: prompt}},
		ResponseFormat: format,
	})
	if err != nil {
		return "", fmt.Errorf("openai: marshal request: %w", err)
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("Authorization", "Bearer "+p.apiKey)

	var cr chatResponse
	if err := p.rest.Do(ctx, http.MethodPost, p.endpoint, nil, header, bytes.NewReader(reqBody), &cr); err != nil {
		return "", err
	}
	if cr.Error != nil {
		return "", fmt.Errorf("%w: openai: api error: %s", types.ErrUpstream, cr.Error.Message)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("%w: openai: empty choices array", types.ErrUpstream)
	}
	return cr.Choices[0].Message.Content, nil
}
