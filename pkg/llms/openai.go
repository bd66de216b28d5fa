package llms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gistloop/gistloop/pkg/config"
	"github.com/gistloop/gistloop/pkg/httpclient"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIClient talks to the OpenAI API, or any OpenAI-compatible endpoint
// (the litellm proxy reuses this client with a custom base URL).
type OpenAIClient struct {
	model      string
	apiMode    config.APIMode
	apiKey     string
	baseURL    string
	httpClient *httpclient.Client
}

// NewOpenAIClient creates a client for the given model and credential.
func NewOpenAIClient(model string, apiMode config.APIMode, cred *config.LLMCredential) (*OpenAIClient, error) {
	if cred == nil || cred.APIKey == "" {
		return nil, fmt.Errorf("openai: api key is required")
	}
	baseURL := cred.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if apiMode == "" {
		apiMode = config.APIModeChat
	}
	return &OpenAIClient{
		model:      model,
		apiMode:    apiMode,
		apiKey:     cred.APIKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpclient.New(),
	}, nil
}

func (c *OpenAIClient) Model() string { return c.model }
func (c *OpenAIClient) Close() error  { return nil }

// Generate dispatches to the chat-completions or responses API depending on
// the configured api_mode.
func (c *OpenAIClient) Generate(ctx context.Context, req *Request) (string, *Usage, error) {
	if c.apiMode == config.APIModeResponse {
		return c.generateResponses(ctx, req)
	}
	return c.generateChat(ctx, req)
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    *float64        `json:"temperature,omitempty"`
	TopP           *float64        `json:"top_p,omitempty"`
	MaxTokens      *int            `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage *Usage    `json:"usage"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (c *OpenAIClient) generateChat(ctx context.Context, req *Request) (string, *Usage, error) {
	messages := make([]Message, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, Message{Role: "system", Content: req.System})
	}
	messages = append(messages, req.Messages...)

	body := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		TopP:        req.TopP,
	}
	if req.MaxTokens > 0 {
		body.MaxTokens = &req.MaxTokens
	}
	if req.Structured {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	var out chatResponse
	if err := c.post(ctx, "/chat/completions", body, &out); err != nil {
		return "", nil, err
	}
	if out.Error != nil {
		return "", nil, fmt.Errorf("openai: %s", out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", out.Usage, nil
	}
	return out.Choices[0].Message.Content, out.Usage, nil
}

type responsesRequest struct {
	Model           string     `json:"model"`
	Input           []Message  `json:"input"`
	Instructions    string     `json:"instructions,omitempty"`
	Temperature     *float64   `json:"temperature,omitempty"`
	TopP            *float64   `json:"top_p,omitempty"`
	MaxOutputTokens *int       `json:"max_output_tokens,omitempty"`
	Text            *textBlock `json:"text,omitempty"`
}

type textBlock struct {
	Format responseFormat `json:"format"`
}

type responsesResponse struct {
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	Usage *struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
		TotalTokens  int `json:"total_tokens"`
	} `json:"usage"`
	Error *apiError `json:"error,omitempty"`
}

func (c *OpenAIClient) generateResponses(ctx context.Context, req *Request) (string, *Usage, error) {
	body := responsesRequest{
		Model:        c.model,
		Input:        req.Messages,
		Instructions: req.System,
		Temperature:  req.Temperature,
		TopP:         req.TopP,
	}
	if req.MaxTokens > 0 {
		body.MaxOutputTokens = &req.MaxTokens
	}
	if req.Structured {
		body.Text = &textBlock{Format: responseFormat{Type: "json_object"}}
	}

	var out responsesResponse
	if err := c.post(ctx, "/responses", body, &out); err != nil {
		return "", nil, err
	}
	if out.Error != nil {
		return "", nil, fmt.Errorf("openai: %s", out.Error.Message)
	}

	var text strings.Builder
	for _, item := range out.Output {
		if item.Type != "message" {
			continue
		}
		for _, part := range item.Content {
			if part.Type == "output_text" {
				text.WriteString(part.Text)
			}
		}
	}

	var usage *Usage
	if out.Usage != nil {
		usage = &Usage{
			PromptTokens:     out.Usage.InputTokens,
			CompletionTokens: out.Usage.OutputTokens,
			TotalTokens:      out.Usage.TotalTokens,
		}
	}
	return text.String(), usage, nil
}

func (c *OpenAIClient) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(payload)), nil
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("openai: unexpected status %d: %s", resp.StatusCode, truncate(string(data), 300))
	}
	return json.Unmarshal(data, out)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
