// Package llm summarizes article text with an OpenAI-compatible chat completion api
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/umputun/flowreader/pkg/config"
)

// ErrNothingToSummarize is returned for an article without readable text
var ErrNothingToSummarize = errors.New("nothing to summarize")

// default system prompt for article summaries
const defaultSystemPrompt = `You summarize news articles for a feed reader.
Write a concise summary of 3-5 sentences that captures the key points, findings and important details.
Write directly about the content itself. NEVER use phrases like "The article discusses", "The author explains" or "This piece covers".
Write the summary in the same language as the article. Reply with the summary text only, no headings or markdown.`

// Summarizer uses LLM to summarize articles
type Summarizer struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
}

// NewSummarizer creates a new LLM summarizer
func NewSummarizer(cfg config.LLMConfig) *Summarizer {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	// use custom system prompt if provided, otherwise use default
	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}

	return &Summarizer{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: systemMsg,
	}
}

// Summarize returns a short summary of article plain text
func (s *Summarizer) Summarize(ctx context.Context, title, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNothingToSummarize
	}

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model:       s.config.Model,
		Temperature: float32(s.config.Temperature),
		MaxTokens:   s.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: s.systemMsg},
			{Role: openai.ChatMessageRoleUser, Content: s.buildPrompt(title, text)},
		},
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from llm")
	}

	summary := cleanSummary(resp.Choices[0].Message.Content)
	if summary == "" {
		return "", fmt.Errorf("empty summary from llm")
	}
	return summary, nil
}

func (s *Summarizer) buildPrompt(title, text string) string {
	if limit := s.config.MaxInputChars; limit > 0 {
		if runes := []rune(text); len(runes) > limit {
			text = string(runes[:limit])
		}
	}

	var sb strings.Builder
	if title = strings.TrimSpace(title); title != "" {
		sb.WriteString("Title: ")
		sb.WriteString(title)
		sb.WriteString("\n\n")
	}
	sb.WriteString("Article:\n")
	sb.WriteString(text)
	return sb.String()
}

// cleanSummary drops markdown heading and "Summary:" lead-ins some models add
func cleanSummary(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "# ")
	for _, prefix := range []string{"Summary:", "summary:", "**Summary:**", "**Summary**:"} {
		s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
	}
	return strings.Trim(s, "\"")
}
