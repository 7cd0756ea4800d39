package config

import (
	"github.com/Hsinha11/AI-Journal/pkg/domain/interfaces"
	"github.com/Hsinha11/AI-Journal/pkg/repository/firestore"
	"github.com/Hsinha11/AI-Journal/pkg/repository/hnsw"
	"github.com/Hsinha11/AI-Journal/pkg/repository/memory"
	"github.com/Hsinha11/AI-Journal/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// VectorIndex holds CLI flags for the vector index backend
type VectorIndex struct {
	backend  string
	m        int
	efSearch int
}

func (x *VectorIndex) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "vector-backend",
			Category:    "Vector Index",
			Usage:       "Vector index backend (firestore, hnsw or memory). firestore requires the firestore repository",
			Value:       "firestore",
			Sources:     cli.EnvVars("AI_JOURNAL_VECTOR_BACKEND"),
			Destination: &x.backend,
		},
		&cli.IntFlag{
			Name:        "hnsw-m",
			Category:    "Vector Index",
			Usage:       "Max neighbors per node of the hnsw graph",
			Value:       16,
			Sources:     cli.EnvVars("AI_JOURNAL_HNSW_M"),
			Destination: &x.m,
		},
		&cli.IntFlag{
			Name:        "hnsw-ef-search",
			Category:    "Vector Index",
			Usage:       "Candidate list size of hnsw searches",
			Value:       64,
			Sources:     cli.EnvVars("AI_JOURNAL_HNSW_EF_SEARCH"),
			Destination: &x.efSearch,
		},
	}
}

func (x *VectorIndex) Backend() string {
	return x.backend
}

// Configure returns the index of the configured backend. repo is the already configured record store.
// Process-local backends start empty and are filled by a backfill.
func (x *VectorIndex) Configure(repo interfaces.Repository, dimension int) (interfaces.VectorIndex, error) {
	switch x.backend {
	case "firestore":
		fs, ok := repo.(*firestore.Firestore)
		if !ok {
			return nil, goerr.Wrap(ErrInvalidConfig, "firestore vector backend requires the firestore repository backend")
		}
		logging.Default().Info("Using Firestore vector index", "collection", firestore.VectorCollection)
		return fs.VectorIndex(), nil

	case "hnsw":
		logging.Default().Info("Using in-process HNSW vector index",
			"dimension", dimension,
			"m", x.m,
			"ef_search", x.efSearch,
		)
		return hnsw.New(dimension, hnsw.WithM(x.m), hnsw.WithEfSearch(x.efSearch)), nil

	case "memory":
		logging.Default().Info("Using in-memory vector index (development mode)")
		return memory.NewVectorIndex(), nil

	default:
		return nil, goerr.Wrap(ErrInvalidConfig, "invalid vector backend", goerr.V(BackendKey, x.backend))
	}
}
