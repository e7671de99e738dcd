package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini wraps one genai client for both embeddings and completions.
type Gemini struct {
	client           *genai.Client
	modelID          string
	embeddingModelID string
}

// NewGemini creates the client. Model ids fall back to sensible defaults
// when blank.
func NewGemini(ctx context.Context, apiKey, modelID, embeddingModelID string) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("rag: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = "gemini-2.5-flash"
	}
	if strings.TrimSpace(embeddingModelID) == "" {
		embeddingModelID = "text-embedding-004"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("rag: failed to create gemini client: %w", err)
	}

	return &Gemini{
		client:           client,
		modelID:          modelID,
		embeddingModelID: embeddingModelID,
	}, nil
}

// Close releases the underlying client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// EmbedDocuments embeds a batch of chunks in one request.
func (g *Gemini) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	em := g.client.EmbeddingModel(g.embeddingModelID)
	batch := em.NewBatch()
	for _, t := range texts {
		batch.AddContent(genai.Text(t))
	}

	resp, err := em.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("rag: batch embedding failed: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, errors.New("rag: embedding response size mismatch")
	}

	out := make([][]float32, len(resp.Embeddings))
	for i, e := range resp.Embeddings {
		out[i] = e.Values
	}
	return out, nil
}

// EmbedQuery embeds a single query string.
func (g *Gemini) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	em := g.client.EmbeddingModel(g.embeddingModelID)
	resp, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("rag: query embedding failed: %w", err)
	}
	if resp.Embedding == nil {
		return nil, errors.New("rag: empty query embedding")
	}
	return resp.Embedding.Values, nil
}

// Complete sends a single-turn prompt and returns the response text.
func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.modelID)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("rag: gemini completion failed: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("rag: gemini returned no candidates")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("rag: gemini returned empty content")
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String()), nil
}
