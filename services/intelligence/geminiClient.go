// File: services/intelligence/geminiClient.go
package ai

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel serves when no model is configured.
const DefaultGeminiModel = "models/gemini-1.5-pro"

// GeminiClient generates extraction and chat replies through one configured
// Gemini model. It is the only ContentGenerator implementation.
type GeminiClient struct {
	model *genai.GenerativeModel
}

// NewGeminiClient connects to Gemini with the given API key and model name
// (DefaultGeminiModel when empty). Construction failure is a startup fault.
func NewGeminiClient(apiKey, modelName string) *GeminiClient {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		panic(fmt.Sprintf("failed to create Gemini client: %v", err))
	}

	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiClient{model: client.GenerativeModel(modelName)}
}

// GenerateContent runs one prompt and concatenates the text parts of the
// first candidate.
func (g *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}
