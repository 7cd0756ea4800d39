package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Hsinha11/AI-Journal/pkg/cli/config"
	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
	"github.com/Hsinha11/AI-Journal/pkg/repository/memory"
	"github.com/Hsinha11/AI-Journal/pkg/usecase"
	"github.com/Hsinha11/AI-Journal/pkg/utils/logging"
	"github.com/m-mizutani/gt"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestIndexing_Configure(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.NewIndexingForTest("", false, 0, 0).Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, cfg).Equal(usecase.DefaultIndexerConfig())
	})

	t.Run("file values", func(t *testing.T) {
		path := writeFile(t, "indexing.toml", `
search_limit = 8
preview_length = 200
index_timeout = "3s"
async = true
backfill_concurrency = 2
watermark_size = 50
`)
		cfg, err := config.NewIndexingForTest(path, false, 0, 0).Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, cfg.SearchLimit).Equal(8)
		gt.Value(t, cfg.PreviewLength).Equal(200)
		gt.Value(t, cfg.IndexTimeout).Equal(3 * time.Second)
		gt.Bool(t, cfg.Async).True()
		gt.Value(t, cfg.BackfillConcurrency).Equal(2)
		gt.Value(t, cfg.WatermarkSize).Equal(50)
	})

	t.Run("flags override file", func(t *testing.T) {
		path := writeFile(t, "indexing.toml", `index_timeout = "3s"`)
		cfg, err := config.NewIndexingForTest(path, true, time.Second, 7).Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, cfg.IndexTimeout).Equal(time.Second)
		gt.Value(t, cfg.BackfillConcurrency).Equal(7)
		gt.Bool(t, cfg.Async).True()
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.NewIndexingForTest(filepath.Join(t.TempDir(), "none.toml"), false, 0, 0).Configure()
		gt.Error(t, err).Is(config.ErrConfigNotFound)
	})

	t.Run("invalid values", func(t *testing.T) {
		for _, content := range []string{
			`index_timeout = "soon"`,
			`search_limit = -1`,
			`watermark_size = -5`,
			`search_limit = "five"`,
		} {
			path := writeFile(t, "indexing.toml", content)
			_, err := config.NewIndexingForTest(path, false, 0, 0).Configure()
			gt.Error(t, err).Is(config.ErrInvalidConfig)
		}
	})
}

func TestAuth_Configure(t *testing.T) {
	repo := memory.New()

	t.Run("short secret is rejected", func(t *testing.T) {
		_, err := config.NewAuthForTest("short", time.Hour, "").Configure(repo.User())
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("jwt auth", func(t *testing.T) {
		authUC, err := config.NewAuthForTest("0123456789abcdef0123456789abcdef", time.Hour, "").Configure(repo.User())
		gt.NoError(t, err).Required()
		gt.Bool(t, authUC.IsNoAuthn()).False()
	})

	t.Run("no-auth wins without secret", func(t *testing.T) {
		authUC, err := config.NewAuthForTest("", 0, "dev-user").Configure(repo.User())
		gt.NoError(t, err).Required()
		gt.Bool(t, authUC.IsNoAuthn()).True()

		principal, err := authUC.ValidateToken(context.Background(), "")
		gt.NoError(t, err).Required()
		gt.Value(t, principal.UserID).Equal(model.UserID("dev-user"))
	})
}

func TestEmbedding_Configure(t *testing.T) {
	ctx := context.Background()

	t.Run("hashing", func(t *testing.T) {
		emb, err := config.NewEmbeddingForTest("hashing", 32, "", "").Configure(ctx)
		gt.NoError(t, err).Required()

		vec, err := emb.Embed(ctx, "hello")
		gt.NoError(t, err).Required()
		gt.Array(t, vec).Length(32)
	})

	t.Run("gemini without project is unavailable at use", func(t *testing.T) {
		emb, err := config.NewEmbeddingForTest("gemini", 768, "", "").Configure(ctx)
		gt.NoError(t, err).Required()

		_, err = emb.Embed(ctx, "hello")
		gt.Error(t, err).Is(model.ErrModelUnavailable)
	})

	t.Run("openai requires key or base url", func(t *testing.T) {
		_, err := config.NewEmbeddingForTest("openai", 768, "", "").Configure(ctx)
		gt.Error(t, err).Is(config.ErrInvalidConfig)

		_, err = config.NewEmbeddingForTest("openai", 768, "", "http://localhost:11434/v1").Configure(ctx)
		gt.NoError(t, err)
	})

	t.Run("invalid provider and dimension", func(t *testing.T) {
		_, err := config.NewEmbeddingForTest("word2vec", 768, "", "").Configure(ctx)
		gt.Error(t, err).Is(config.ErrInvalidConfig)

		_, err = config.NewEmbeddingForTest("hashing", 0, "", "").Configure(ctx)
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})
}

func TestRepository_Configure(t *testing.T) {
	ctx := context.Background()

	repo, err := config.NewRepositoryForTest("memory", "").Configure(ctx)
	gt.NoError(t, err).Required()
	gt.NoError(t, repo.Close())

	_, err = config.NewRepositoryForTest("firestore", "").Configure(ctx)
	gt.Error(t, err).Is(config.ErrInvalidConfig)

	_, err = config.NewRepositoryForTest("mongodb", "").Configure(ctx)
	gt.Error(t, err).Is(config.ErrInvalidConfig)
}

func TestVectorIndex_Configure(t *testing.T) {
	repo := memory.New()

	for _, backend := range []string{"memory", "hnsw"} {
		t.Run(backend, func(t *testing.T) {
			idx, err := config.NewVectorIndexForTest(backend).Configure(repo, 16)
			gt.NoError(t, err).Required()
			gt.Value(t, idx).NotNil()
		})
	}

	t.Run("firestore needs firestore repository", func(t *testing.T) {
		_, err := config.NewVectorIndexForTest("firestore").Configure(repo, 16)
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})
}

func TestLogger_Configure(t *testing.T) {
	t.Run("invalid level", func(t *testing.T) {
		_, err := config.NewLoggerForTest("verbose", "console", "stdout").Configure()
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("json to file", func(t *testing.T) {
		prev := logging.Default()
		t.Cleanup(func() { logging.SetDefault(prev) })

		path := filepath.Join(t.TempDir(), "app.log")
		closer, err := config.NewLoggerForTest("info", "json", path).Configure()
		gt.NoError(t, err).Required()
		closer()

		_, err = os.Stat(path)
		gt.Bool(t, errors.Is(err, os.ErrNotExist)).False()
	})
}
