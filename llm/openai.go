package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	goopenai "github.com/sashabaranov/go-openai"
)

const defaultModel = "gpt-3.5-turbo"

type options struct {
	token       string
	baseURL     string
	model       string
	temperature float32
	maxTokens   int
	jsonMode    bool
	httpClient  *http.Client
}

type Option func(*options)

func WithToken(token string) Option { return func(o *options) { o.token = token } }

func WithBaseURL(url string) Option { return func(o *options) { o.baseURL = url } }

func WithModel(model string) Option {
	return func(o *options) {
		if model != "" {
			o.model = model
		}
	}
}

func WithTemperature(t float32) Option { return func(o *options) { o.temperature = t } }

func WithMaxTokens(n int) Option { return func(o *options) { o.maxTokens = n } }

// WithJSONMode asks the provider for a json_object response format.
func WithJSONMode(on bool) Option { return func(o *options) { o.jsonMode = on } }

func WithHTTPClient(c *http.Client) Option { return func(o *options) { o.httpClient = c } }

// OpenAI is a Client backed by any OpenAI compatible chat completion API.
type OpenAI struct {
	client      *goopenai.Client
	model       string
	temperature float32
	maxTokens   int
	jsonMode    bool
}

var _ Client = (*OpenAI)(nil)

func NewOpenAI(opts ...Option) (*OpenAI, error) {
	o := &options{
		model:       defaultModel,
		temperature: 0.7,
		maxTokens:   2000,
		httpClient:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.token == "" {
		return nil, errors.New("missing the OpenAI API key, set it in the OPENAI_API_KEY environment variable")
	}

	config := goopenai.DefaultConfig(o.token)
	if o.baseURL != "" {
		config.BaseURL = o.baseURL
	}
	config.HTTPClient = o.httpClient

	return &OpenAI{
		client:      goopenai.NewClientWithConfig(config),
		model:       o.model,
		temperature: o.temperature,
		maxTokens:   o.maxTokens,
		jsonMode:    o.jsonMode,
	}, nil
}

func (l *OpenAI) Complete(ctx context.Context, req Request) (string, error) {
	chat := goopenai.ChatCompletionRequest{
		Model: l.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: req.System},
			{Role: goopenai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: l.temperature,
		MaxTokens:   l.maxTokens,
	}
	if l.jsonMode {
		chat.ResponseFormat = &goopenai.ChatCompletionResponseFormat{Type: goopenai.ChatCompletionResponseFormatTypeJSONObject}
	}

	resp, err := l.client.CreateChatCompletion(ctx, chat)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
