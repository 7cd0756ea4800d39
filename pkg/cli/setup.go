package cli

import (
	"context"

	"github.com/Hsinha11/AI-Journal/pkg/cli/config"
	"github.com/Hsinha11/AI-Journal/pkg/domain/interfaces"
	"github.com/Hsinha11/AI-Journal/pkg/usecase"
	"github.com/Hsinha11/AI-Journal/pkg/utils/logging"
	"github.com/Hsinha11/AI-Journal/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// searchStack groups the configs every command touching the index needs
type searchStack struct {
	repo      config.Repository
	vector    config.VectorIndex
	embedding config.Embedding
	indexing  config.Indexing
}

func (x *searchStack) Flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, x.repo.Flags()...)
	flags = append(flags, x.vector.Flags()...)
	flags = append(flags, x.embedding.Flags()...)
	flags = append(flags, x.indexing.Flags()...)
	return flags
}

// configure builds the repository and use cases. The returned repository must be closed by the caller.
func (x *searchStack) configure(ctx context.Context, opts ...usecase.Option) (interfaces.Repository, *usecase.UseCases, error) {
	repo, err := x.repo.Configure(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to initialize repository")
	}

	closeOnErr := func() { safe.Close(ctx, repo) }

	index, err := x.vector.Configure(repo, x.embedding.Dimension())
	if err != nil {
		closeOnErr()
		return nil, nil, goerr.Wrap(err, "failed to initialize vector index")
	}

	embedder, err := x.embedding.Configure(ctx)
	if err != nil {
		closeOnErr()
		return nil, nil, goerr.Wrap(err, "failed to initialize embedder")
	}

	indexerCfg, err := x.indexing.Configure()
	if err != nil {
		closeOnErr()
		return nil, nil, goerr.Wrap(err, "failed to load indexing config")
	}

	logging.Default().Info("Search configuration",
		"embedding", x.embedding,
		"vector_backend", x.vector.Backend(),
		"indexing", x.indexing,
	)

	base := []usecase.Option{
		usecase.WithEmbedder(embedder),
		usecase.WithVectorIndex(index),
		usecase.WithIndexerConfig(indexerCfg),
	}
	uc, err := usecase.New(repo, append(base, opts...)...)
	if err != nil {
		closeOnErr()
		return nil, nil, goerr.Wrap(err, "failed to initialize use cases")
	}

	return repo, uc, nil
}
