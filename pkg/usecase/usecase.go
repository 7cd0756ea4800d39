package usecase

import (
	"github.com/Hsinha11/AI-Journal/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

type UseCases struct {
	repo       interfaces.Repository
	embedder   interfaces.Embedder
	index      interfaces.VectorIndex
	indexerCfg IndexerConfig

	Entry   *EntryUseCase
	Indexer *Indexer
	Auth    AuthUseCaseInterface
}

type Option func(*UseCases)

// WithEmbedder sets the embedding model. Without it indexing and search report model.ErrModelUnavailable.
func WithEmbedder(embedder interfaces.Embedder) Option {
	return func(uc *UseCases) {
		uc.embedder = embedder
	}
}

// WithVectorIndex sets the vector index. Without it indexing and search report model.ErrIndexUnavailable.
func WithVectorIndex(index interfaces.VectorIndex) Option {
	return func(uc *UseCases) {
		uc.index = index
	}
}

func WithIndexerConfig(cfg IndexerConfig) Option {
	return func(uc *UseCases) {
		uc.indexerCfg = cfg
	}
}

func WithAuth(auth AuthUseCaseInterface) Option {
	return func(uc *UseCases) {
		uc.Auth = auth
	}
}

func New(repo interfaces.Repository, opts ...Option) (*UseCases, error) {
	uc := &UseCases{
		repo:       repo,
		indexerCfg: DefaultIndexerConfig(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	indexer, err := NewIndexer(repo.Entry(), uc.embedder, uc.index, uc.indexerCfg)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create indexer")
	}
	uc.Indexer = indexer
	uc.Entry = NewEntryUseCase(repo.Entry(), indexer)

	return uc, nil
}
