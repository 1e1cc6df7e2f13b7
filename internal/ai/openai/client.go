// Package openai adapts the OpenAI API to the ai.Completer contract.
package openai

import (
	"context"
	"errors"
	"time"

	sdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/goliatone/go-sitecms/internal/ai"
)

const (
	DefaultModel      = "gpt-4o-mini"
	DefaultImageModel = "dall-e-3"
	defaultRetries    = 2
)

var ErrAPIKeyRequired = errors.New("openai: api key is required")

// Config selects credentials and models.
type Config struct {
	APIKey     string
	Model      string
	ImageModel string
	Timeout    time.Duration
	BaseURL    string
}

// Client implements ai.Completer on top of the official SDK.
type Client struct {
	client     sdk.Client
	model      string
	imageModel string
}

var _ ai.Completer = (*Client)(nil)

func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrAPIKeyRequired
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(defaultRetries),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	c := &Client{
		client:     sdk.NewClient(opts...),
		model:      cfg.Model,
		imageModel: cfg.ImageModel,
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.imageModel == "" {
		c.imageModel = DefaultImageModel
	}
	return c, nil
}

func (c *Client) Complete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	model := c.model
	if req.Model != "" {
		model = req.Model
	}
	params := sdk.ChatCompletionNewParams{
		Model:    sdk.ChatModel(model),
		Messages: messages(req),
	}
	if req.Temperature != nil {
		params.Temperature = sdk.Float(*req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = sdk.Int(int64(req.MaxTokens))
	}
	if req.JSON {
		params.ResponseFormat = sdk.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ai.ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) GenerateImage(ctx context.Context, req ai.ImageRequest) (*ai.ImageResult, error) {
	params := sdk.ImageGenerateParams{
		Prompt: req.Prompt,
		Model:  sdk.ImageModel(c.imageModel),
		N:      sdk.Int(1),
	}
	if req.Size != "" {
		params.Size = sdk.ImageGenerateParamsSize(req.Size)
	}
	if req.Quality != "" {
		params.Quality = sdk.ImageGenerateParamsQuality(req.Quality)
	}

	resp, err := c.client.Images.Generate(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return nil, ai.ErrNoImage
	}
	return &ai.ImageResult{
		URL:           resp.Data[0].URL,
		RevisedPrompt: resp.Data[0].RevisedPrompt,
	}, nil
}

func messages(req ai.CompletionRequest) []sdk.ChatCompletionMessageParamUnion {
	out := make([]sdk.ChatCompletionMessageParamUnion, 0, 2)
	if req.System != "" {
		out = append(out, sdk.SystemMessage(req.System))
	}
	if req.ImageURL == "" {
		return append(out, sdk.UserMessage(req.User))
	}
	parts := []sdk.ChatCompletionContentPartUnionParam{
		sdk.TextContentPart(req.User),
		sdk.ImageContentPart(sdk.ChatCompletionContentPartImageImageURLParam{URL: req.ImageURL, Detail: req.ImageDetail}),
	}
	return append(out, sdk.UserMessage(parts))
}
