package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const modelTemperature = 0.7

// GeminiClient implements ModelClient on top of the Gemini API.
type GeminiClient struct {
	client    *genai.Client
	modelName string
	maxTokens int32
}

func NewGeminiClient(apiKey, modelName string, maxTokens int) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{
		client:    client,
		modelName: modelName,
		maxTokens: int32(maxTokens),
	}, nil
}

func (g *GeminiClient) Generate(ctx context.Context, systemPrompt, userMessage string) (*ModelReply, error) {
	// GenerativeModel handles are cheap; a fresh one per call keeps the
	// per-turn system instruction off any shared state.
	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(modelTemperature)
	model.SetMaxOutputTokens(g.maxTokens)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(userMessage))
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}

	reply := &ModelReply{Text: sb.String()}
	if usage := resp.UsageMetadata; usage != nil {
		reply.PromptTokens = int(usage.PromptTokenCount)
		reply.CompletionTokens = int(usage.CandidatesTokenCount)
		reply.TotalTokens = int(usage.TotalTokenCount)
	}
	return reply, nil
}
