package embedding

import (
	"context"

	"github.com/Hsinha11/AI-Journal/pkg/domain/interfaces"
	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

// Gemini embeds text through a gollem LLM client
type Gemini struct {
	client    gollem.LLMClient
	dimension int
}

var _ interfaces.Embedder = &Gemini{}

// NewGemini returns an embedder backed by client. A nil client yields an embedder
// that always fails with model.ErrModelUnavailable.
func NewGemini(client gollem.LLMClient, dimension int) *Gemini {
	return &Gemini{client: client, dimension: dimension}
}

func (g *Gemini) Embed(ctx context.Context, text string) ([]float32, error) {
	if g == nil || g.client == nil {
		return nil, goerr.Wrap(model.ErrModelUnavailable, "gemini client is not configured")
	}
	if err := validateText(text); err != nil {
		return nil, err
	}

	embeddings, err := g.client.GenerateEmbedding(ctx, g.dimension, []string{text})
	if err != nil {
		return nil, goerr.Wrap(model.Classify(model.ErrModelUnavailable, err), "failed to generate embedding")
	}
	if len(embeddings) == 0 {
		return nil, goerr.Wrap(model.ErrModelUnavailable, "no embedding returned")
	}
	if err := checkDimension("gemini", len(embeddings[0]), g.dimension); err != nil {
		return nil, err
	}

	result := make([]float32, len(embeddings[0]))
	for i, v := range embeddings[0] {
		result[i] = float32(v)
	}
	return normalize(result), nil
}
