package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/Hsinha11/AI-Journal/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// IndexingFile is the optional TOML file tuning the indexer. Flags override file values.
//
//	search_limit = 5
//	preview_length = 1000
//	index_timeout = "10s"
//	async = false
//	backfill_concurrency = 4
//	watermark_size = 10000
type IndexingFile struct {
	SearchLimit         int    `toml:"search_limit"`
	PreviewLength       int    `toml:"preview_length"`
	IndexTimeout        string `toml:"index_timeout"`
	Async               bool   `toml:"async"`
	BackfillConcurrency int    `toml:"backfill_concurrency"`
	WatermarkSize       int    `toml:"watermark_size"`
}

// Indexing holds CLI flags for the indexing coordinator
type Indexing struct {
	path         string
	async        bool
	timeout      time.Duration
	concurrency  int
	reindexEvery time.Duration
	reindexOnRun bool
}

func (x *Indexing) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "indexing-config",
			Category:    "Indexing",
			Usage:       "Path to TOML file with indexer settings",
			Sources:     cli.EnvVars("AI_JOURNAL_INDEXING_CONFIG"),
			Destination: &x.path,
		},
		&cli.BoolFlag{
			Name:        "index-async",
			Category:    "Indexing",
			Usage:       "Index entries in the background instead of before responding",
			Sources:     cli.EnvVars("AI_JOURNAL_INDEX_ASYNC"),
			Destination: &x.async,
		},
		&cli.DurationFlag{
			Name:        "index-timeout",
			Category:    "Indexing",
			Usage:       "Upper bound of one embed and upsert",
			Sources:     cli.EnvVars("AI_JOURNAL_INDEX_TIMEOUT"),
			Destination: &x.timeout,
		},
		&cli.IntFlag{
			Name:        "backfill-concurrency",
			Category:    "Indexing",
			Usage:       "Entries indexed in parallel during backfill",
			Sources:     cli.EnvVars("AI_JOURNAL_BACKFILL_CONCURRENCY"),
			Destination: &x.concurrency,
		},
		&cli.DurationFlag{
			Name:        "reindex-interval",
			Category:    "Indexing",
			Usage:       "Run a full backfill periodically while serving. Disabled when zero",
			Sources:     cli.EnvVars("AI_JOURNAL_REINDEX_INTERVAL"),
			Destination: &x.reindexEvery,
		},
		&cli.BoolFlag{
			Name:        "reindex-on-start",
			Category:    "Indexing",
			Usage:       "Run a full backfill once when the server starts",
			Sources:     cli.EnvVars("AI_JOURNAL_REINDEX_ON_START"),
			Destination: &x.reindexOnRun,
		},
	}
}

func (x Indexing) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("config", x.path),
		slog.Bool("async", x.async),
		slog.Duration("timeout", x.timeout),
		slog.Int("backfill_concurrency", x.concurrency),
		slog.Duration("reindex_interval", x.reindexEvery),
		slog.Bool("reindex_on_start", x.reindexOnRun),
	)
}

func (x *Indexing) ReindexInterval() time.Duration {
	return x.reindexEvery
}

func (x *Indexing) ReindexOnStart() bool {
	return x.reindexOnRun
}

// LoadIndexingFile reads and validates an indexer TOML file
func LoadIndexingFile(path string) (*IndexingFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "indexing config not found", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read indexing config", goerr.V(ConfigPathKey, path))
	}

	var f IndexingFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse indexing config",
			goerr.V(ConfigPathKey, path), goerr.V("error", err.Error()))
	}

	if f.SearchLimit < 0 || f.PreviewLength < 0 || f.BackfillConcurrency < 0 || f.WatermarkSize < 0 {
		return nil, goerr.Wrap(ErrInvalidConfig, "indexing values must not be negative", goerr.V(ConfigPathKey, path))
	}
	return &f, nil
}

// Configure merges defaults, the TOML file and flags into an IndexerConfig
func (x *Indexing) Configure() (usecase.IndexerConfig, error) {
	cfg := usecase.DefaultIndexerConfig()

	if x.path != "" {
		f, err := LoadIndexingFile(x.path)
		if err != nil {
			return cfg, err
		}
		if f.SearchLimit > 0 {
			cfg.SearchLimit = f.SearchLimit
		}
		if f.PreviewLength > 0 {
			cfg.PreviewLength = f.PreviewLength
		}
		if f.WatermarkSize > 0 {
			cfg.WatermarkSize = f.WatermarkSize
		}
		if f.IndexTimeout != "" {
			d, err := time.ParseDuration(f.IndexTimeout)
			if err != nil || d <= 0 {
				return cfg, goerr.Wrap(ErrInvalidConfig, "invalid index_timeout",
					goerr.V(ConfigPathKey, x.path), goerr.V("value", f.IndexTimeout))
			}
			cfg.IndexTimeout = d
		}
		if f.BackfillConcurrency > 0 {
			cfg.BackfillConcurrency = f.BackfillConcurrency
		}
		cfg.Async = f.Async
	}

	if x.async {
		cfg.Async = true
	}
	if x.timeout > 0 {
		cfg.IndexTimeout = x.timeout
	}
	if x.concurrency > 0 {
		cfg.BackfillConcurrency = x.concurrency
	}
	if x.reindexEvery < 0 {
		return cfg, goerr.Wrap(ErrInvalidConfig, "reindex-interval must not be negative")
	}

	return cfg, nil
}
