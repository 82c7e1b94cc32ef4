package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIClient implements the Client interface against any
// OpenAI-compatible chat completion endpoint.
type OpenAIClient struct {
	client  openai.Client
	model   string
	baseURL string
}

// NewOpenAIClient creates a new OpenAI-compatible client. The API key is
// read from ROTEIRO_API_KEY, falling back to OPENAI_API_KEY.
func NewOpenAIClient(model, baseURL string) (*OpenAIClient, error) {
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("openai model is required")
	}
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}

	apiKey := os.Getenv("ROTEIRO_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("ROTEIRO_API_KEY or OPENAI_API_KEY must be set")
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &OpenAIClient{
		client:  client,
		model:   model,
		baseURL: baseURL,
	}, nil
}

// Chat sends messages to the LLM and returns the response.
func (c *OpenAIClient) Chat(ctx context.Context, messages []Message) (string, error) {
	openaiMessages := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case "system":
			openaiMessages[i] = openai.SystemMessage(msg.Content)
		case "assistant":
			openaiMessages[i] = openai.AssistantMessage(msg.Content)
		default:
			openaiMessages[i] = openai.UserMessage(msg.Content)
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: openaiMessages,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

// ChatJSON sends messages and parses the response as JSON into the provided type.
func (c *OpenAIClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	content, err := c.Chat(ctx, messages)
	if err != nil {
		return err
	}

	jsonContent := extractJSON(content)
	if err := json.Unmarshal([]byte(jsonContent), result); err != nil {
		return fmt.Errorf("parsing JSON response: %w (content: %s)", err, content)
	}

	return nil
}
