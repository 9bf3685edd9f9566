// Package summary generates outreach briefings for scored businesses via an
// external text-generation API. Summaries are presentation sugar: every
// failure here degrades to a placeholder string and never touches scoring.
package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/CohensCoding/Succession/internal/business"
	"github.com/CohensCoding/Succession/internal/config"
	"github.com/CohensCoding/Succession/internal/score"
)

// Client produces a short outreach narrative for one scored business.
type Client interface {
	Outreach(ctx context.Context, rec business.Record, res score.Result) (string, error)
}

// New creates a Client from the given AI config.
func New(cfg *config.AIConfig, apiKey string) (Client, error) {
	if cfg == nil || apiKey == "" {
		return nil, fmt.Errorf("AI not configured")
	}

	client := &http.Client{Timeout: 30 * time.Second}

	switch cfg.Provider {
	case "openai":
		model := cfg.Model
		if model == "" {
			model = "gpt-3.5-turbo"
		}
		return &openaiProvider{apiKey: apiKey, model: model, client: client}, nil
	case "claude":
		model := cfg.Model
		if model == "" {
			model = "claude-haiku-4-5-20251001"
		}
		return &claudeProvider{apiKey: apiKey, model: model, client: client}, nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %q (valid: openai, claude)", cfg.Provider)
	}
}

// Generate wraps Client with the degradation contract: a nil client or a
// provider error yields a placeholder instead of surfacing into the pipeline.
func Generate(ctx context.Context, c Client, rec business.Record, res score.Result) string {
	if c == nil {
		return "AI summary requires OpenAI API key"
	}
	text, err := c.Outreach(ctx, rec, res)
	if err != nil {
		return fmt.Sprintf("AI summary unavailable: %v", err)
	}
	return text
}

const outreachPrompt = `Create a warm, professional 2-3 sentence summary for a business acquisition outreach. Focus on succession readiness signals.

Business: %s
Industry: %s
Location: %s
Founded: %s
Succession Score: %.1f/100
Key Factors: %s

Write this as if you're briefing a business development professional who will make a respectful call about succession planning. Be specific about the signals but keep it conversational and warm.

Example tone: "John runs ABC Plumbing in Denver, CO. The company has been operating for 25 years, but their website hasn't been updated since 2019 and they're not actively hiring. This suggests potential succession timing - worth a respectful conversation about future planning."`

func buildPrompt(rec business.Record, res score.Result) string {
	founded := "Unknown"
	if rec.FoundedYear != 0 {
		founded = fmt.Sprintf("%d", rec.FoundedYear)
	}
	return fmt.Sprintf(outreachPrompt,
		orUnknown(rec.Name),
		orUnknown(rec.Industry),
		orUnknown(rec.Location),
		founded,
		res.Score,
		strings.Join(topFactors(res.Factors, 3), ", "),
	)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func topFactors(factors []string, n int) []string {
	if len(factors) > n {
		return factors[:n]
	}
	return factors
}

// --- OpenAI provider ---

type openaiProvider struct {
	apiKey string
	model  string
	client *http.Client
}

type openaiRequest struct {
	Model       string          `json:"model"`
	Messages    []openaiMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (o *openaiProvider) Outreach(ctx context.Context, rec business.Record, res score.Result) (string, error) {
	body, _ := json.Marshal(openaiRequest{
		Model:       o.model,
		Messages:    []openaiMessage{{Role: "user", Content: buildPrompt(rec, res)}},
		MaxTokens:   150,
		Temperature: 0.7,
	})

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.openai.com/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("openai API %d: %s", resp.StatusCode, string(b))
	}

	var or openaiResponse
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		return "", err
	}
	if len(or.Choices) == 0 {
		return "", fmt.Errorf("empty openai response")
	}
	return strings.TrimSpace(or.Choices[0].Message.Content), nil
}

// --- Claude provider ---

type claudeProvider struct {
	apiKey string
	model  string
	client *http.Client
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (c *claudeProvider) Outreach(ctx context.Context, rec business.Record, res score.Result) (string, error) {
	body, _ := json.Marshal(claudeRequest{
		Model:     c.model,
		MaxTokens: 150,
		Messages:  []claudeMessage{{Role: "user", Content: buildPrompt(rec, res)}},
	})

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.anthropic.com/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("claude API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("claude API %d: %s", resp.StatusCode, string(b))
	}

	var cr claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Content) == 0 {
		return "", fmt.Errorf("empty claude response")
	}
	return strings.TrimSpace(cr.Content[0].Text), nil
}
