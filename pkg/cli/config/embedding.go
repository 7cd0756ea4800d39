package config

import (
	"context"
	"log/slog"

	"github.com/Hsinha11/AI-Journal/pkg/domain/interfaces"
	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
	"github.com/Hsinha11/AI-Journal/pkg/service/embedding"
	"github.com/Hsinha11/AI-Journal/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Embedding selects and configures the embedding provider
type Embedding struct {
	provider  string
	dimension int

	openAIKey     string
	openAIModel   string
	openAIBaseURL string

	gemini Gemini
}

func (x *Embedding) Flags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "embedding-provider",
			Category:    "Embedding",
			Usage:       "Embedding provider (gemini, openai or hashing)",
			Value:       "gemini",
			Sources:     cli.EnvVars("AI_JOURNAL_EMBEDDING_PROVIDER"),
			Destination: &x.provider,
		},
		&cli.IntFlag{
			Name:        "embedding-dimension",
			Category:    "Embedding",
			Usage:       "Dimension of embedding vectors",
			Value:       model.EmbeddingDimension,
			Sources:     cli.EnvVars("AI_JOURNAL_EMBEDDING_DIMENSION"),
			Destination: &x.dimension,
		},
		&cli.StringFlag{
			Name:        "openai-api-key",
			Category:    "Embedding",
			Usage:       "API key of the OpenAI-compatible endpoint",
			Sources:     cli.EnvVars("AI_JOURNAL_OPENAI_API_KEY"),
			Destination: &x.openAIKey,
		},
		&cli.StringFlag{
			Name:        "openai-model",
			Category:    "Embedding",
			Usage:       "Embedding model name",
			Value:       "text-embedding-3-small",
			Sources:     cli.EnvVars("AI_JOURNAL_OPENAI_MODEL"),
			Destination: &x.openAIModel,
		},
		&cli.StringFlag{
			Name:        "openai-base-url",
			Category:    "Embedding",
			Usage:       "Base URL of the OpenAI-compatible endpoint, e.g. http://localhost:11434/v1 for Ollama",
			Sources:     cli.EnvVars("AI_JOURNAL_OPENAI_BASE_URL"),
			Destination: &x.openAIBaseURL,
		},
	}
	return append(flags, x.gemini.Flags()...)
}

func (x *Embedding) Dimension() int {
	return x.dimension
}

func (x Embedding) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("provider", x.provider),
		slog.Int("dimension", x.dimension),
	}
	switch x.provider {
	case "gemini":
		attrs = append(attrs, x.gemini.LogAttrs()...)
	case "openai":
		attrs = append(attrs,
			slog.String("model", x.openAIModel),
			slog.String("base_url", x.openAIBaseURL),
		)
	}
	return slog.GroupValue(attrs...)
}

// Configure returns the embedder of the configured provider
func (x *Embedding) Configure(ctx context.Context) (interfaces.Embedder, error) {
	if x.dimension <= 0 {
		return nil, goerr.Wrap(ErrInvalidConfig, "embedding dimension must be positive", goerr.V("dimension", x.dimension))
	}

	switch x.provider {
	case "gemini":
		client, err := x.gemini.Configure(ctx)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to configure gemini")
		}
		if client == nil {
			logging.Default().Warn("Gemini project is not set, search is unavailable until it is configured")
		}
		return embedding.NewGemini(client, x.dimension), nil

	case "openai":
		if x.openAIKey == "" && x.openAIBaseURL == "" {
			return nil, goerr.Wrap(ErrInvalidConfig, "openai-api-key or openai-base-url is required for openai provider")
		}
		return embedding.NewOpenAI(x.openAIKey, x.openAIModel, x.dimension,
			embedding.WithBaseURL(x.openAIBaseURL)), nil

	case "hashing":
		logging.Default().Warn("Using hashing embedder, search quality is lexical only (development mode)")
		return embedding.NewHashing(x.dimension), nil

	default:
		return nil, goerr.Wrap(ErrInvalidConfig, "invalid embedding provider", goerr.V("provider", x.provider))
	}
}
