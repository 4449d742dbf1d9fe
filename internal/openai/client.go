// Package openai adapts the OpenAI chat completions API to the feedback
// pipeline: text completion for stages and image transcription for OCR.
package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	oai "github.com/sashabaranov/go-openai"
)

const defaultMaxTokens = 2048

var errNoChoices = errors.New("response has no choices")

// Client satisfies feedback.Completer.
type Client struct {
	api       *oai.Client
	model     string
	maxTokens int
}

type Option func(*settings)

type settings struct {
	baseURL   string
	maxTokens int
}

// WithBaseURL targets an OpenAI-compatible endpoint, e.g. ".../v1".
func WithBaseURL(url string) Option {
	return func(s *settings) {
		s.baseURL = url
	}
}

func WithMaxTokens(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxTokens = n
		}
	}
}

func NewClient(apiKey, model string, opts ...Option) *Client {
	s := settings{maxTokens: defaultMaxTokens}
	for _, opt := range opts {
		opt(&s)
	}

	cfg := oai.DefaultConfig(apiKey)
	if s.baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(s.baseURL, "/")
	}

	return &Client{
		api:       oai.NewClientWithConfig(cfg),
		model:     model,
		maxTokens: s.maxTokens,
	}
}

func (c *Client) Model() string {
	return c.model
}

// Complete sends prompt as a single user message.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, oai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []oai.ChatCompletionMessage{
			{Role: oai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: %w", errNoChoices)
	}
	return resp.Choices[0].Message.Content, nil
}

const recognizePrompt = `이 이미지는 사용자가 손으로 필사한 한국어 문장입니다.
이미지에 적힌 글자를 그대로 텍스트로 옮겨 주세요.
설명이나 따옴표 없이 인식된 문장만 출력해 주세요.`

// Recognizer transcribes handwriting photos with a vision-capable model.
type Recognizer struct {
	api   *oai.Client
	model string
}

// Recognizer returns an OCR helper sharing this client's connection settings.
func (c *Client) Recognizer(model string) *Recognizer {
	return &Recognizer{api: c.api, model: model}
}

// Recognize returns the text written in image. mimeType is e.g. "image/png".
func (r *Recognizer) Recognize(ctx context.Context, image []byte, mimeType string) (string, error) {
	if len(image) == 0 {
		return "", errors.New("empty image")
	}
	dataURI := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image)

	resp, err := r.api.CreateChatCompletion(ctx, oai.ChatCompletionRequest{
		Model: r.model,
		Messages: []oai.ChatCompletionMessage{
			{
				Role: oai.ChatMessageRoleUser,
				MultiContent: []oai.ChatMessagePart{
					{Type: oai.ChatMessagePartTypeText, Text: recognizePrompt},
					{Type: oai.ChatMessagePartTypeImageURL, ImageURL: &oai.ChatMessageImageURL{
						URL:    dataURI,
						Detail: oai.ImageURLDetailHigh,
					}},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("recognize image: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("recognize image: %w", errNoChoices)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
