package embedding

import (
	"context"

	"github.com/Hsinha11/AI-Journal/pkg/domain/interfaces"
	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/sashabaranov/go-openai"
)

// OpenAI embeds text through any OpenAI-compatible embeddings endpoint,
// including a local Ollama server at http://localhost:11434/v1.
type OpenAI struct {
	client    *openai.Client
	model     string
	dimension int
}

var _ interfaces.Embedder = &OpenAI{}

type OpenAIOption func(*openai.ClientConfig)

// WithBaseURL points the client to a compatible server
func WithBaseURL(url string) OpenAIOption {
	return func(cfg *openai.ClientConfig) {
		if url != "" {
			cfg.BaseURL = url
		}
	}
}

func NewOpenAI(apiKey, modelName string, dimension int, opts ...OpenAIOption) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	for _, opt := range opts {
		opt(&cfg)
	}

	return &OpenAI{
		client:    openai.NewClientWithConfig(cfg),
		model:     modelName,
		dimension: dimension,
	}
}

func (o *OpenAI) Embed(ctx context.Context, text string) ([]float32, error) {
	if o == nil || o.client == nil {
		return nil, goerr.Wrap(model.ErrModelUnavailable, "openai client is not configured")
	}
	if err := validateText(text); err != nil {
		return nil, err
	}

	resp, err := o.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      openai.EmbeddingModel(o.model),
		Dimensions: o.dimension,
	})
	if err != nil {
		return nil, goerr.Wrap(model.Classify(model.ErrModelUnavailable, err), "failed to create embedding",
			goerr.V("model", o.model))
	}
	if len(resp.Data) == 0 {
		return nil, goerr.Wrap(model.ErrModelUnavailable, "empty embedding response", goerr.V("model", o.model))
	}

	vec := resp.Data[0].Embedding
	if err := checkDimension("openai", len(vec), o.dimension); err != nil {
		return nil, err
	}

	result := make([]float32, len(vec))
	copy(result, vec)
	return normalize(result), nil
}
