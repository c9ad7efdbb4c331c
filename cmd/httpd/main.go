package main

import (
	"fmt"
	"os"

	"github.com/stacklens/stacklens/internal/analysis"
	"github.com/stacklens/stacklens/internal/api"
	"github.com/stacklens/stacklens/internal/catalog"
	"github.com/stacklens/stacklens/internal/config"
	"github.com/stacklens/stacklens/internal/configloader"
	"github.com/stacklens/stacklens/internal/corpus"
	"github.com/stacklens/stacklens/internal/logger"
	"github.com/stacklens/stacklens/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "stacklens: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(configloader.GetConfigPath("config.yml"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting stacklens",
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Service.Port),
		logger.Int("workers", cfg.Analysis.Workers),
	)

	metrics := telemetry.NewMetrics()

	store, err := corpus.Load(cfg.Corpus.Path, log)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	metrics.SetCorpusStats(store.Len(), store.Skipped())

	patterns := catalog.Patterns()
	topics := catalog.NewTopicCatalog(catalog.Topics())
	engine := analysis.NewPatternEngine(patterns)
	log.Info("catalogs compiled",
		logger.Int("patterns", len(patterns)),
		logger.Int("topics", len(topics.Names())),
	)

	workers := cfg.Analysis.Workers
	handler := api.NewHandler(
		store,
		topics,
		analysis.NewPatternFrequency(engine, workers, log, metrics),
		analysis.NewCooccurrence(topics, cfg.Analysis.StopwordTags, workers, log, metrics),
		analysis.NewTrend(topics, workers, log, metrics),
		analysis.NewSolvable(log, metrics),
		log,
	)

	server := api.NewServer(handler, cfg, metrics, log)
	return server.Run()
}
