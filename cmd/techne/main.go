// Copyright 2025 Technelab
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/technelab/techne"
	"github.com/technelab/techne/ai"
	"github.com/technelab/techne/ai/openai"
	"github.com/technelab/techne/api"
	"github.com/technelab/techne/core"
	"github.com/technelab/techne/ingestion"
	"github.com/technelab/techne/reembed"
	"github.com/technelab/techne/search"
	"github.com/technelab/techne/storage/badger"
	"github.com/technelab/techne/trends"
	"github.com/urfave/cli/v2"
)

func main() {
	dbFlag := &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB corpus directory",
		Required: true,
	}
	embeddingHostFlag := &cli.StringFlag{
		Name:  "embedding-host",
		Usage: "Embedding service host URL",
		Value: "http://localhost:11434/v1",
	}
	embeddingModelFlag := &cli.StringFlag{
		Name:  "embedding-model",
		Usage: "Embedding model name",
		Value: "embeddinggemma",
	}

	app := &cli.App{
		Name:  "techne",
		Usage: "Corpus analytics engine for art-technology web content",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the analytics HTTP API",
				Action: serveCommand,
				Flags: []cli.Flag{
					dbFlag,
					embeddingHostFlag,
					embeddingModelFlag,
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address",
						Value: api.DefaultAddr,
					},
				},
			},
			{
				Name:   "ingest",
				Usage:  "Ingest scraped documents from a JSONL file",
				Action: ingestCommand,
				Flags: []cli.Flag{
					dbFlag,
					embeddingHostFlag,
					embeddingModelFlag,
					&cli.StringFlag{
						Name:     "src",
						Aliases:  []string{"s"},
						Usage:    "JSONL file with one document object per line",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "chunk-size",
						Usage: "Chunk size in characters",
						Value: ingestion.DefaultChunkSize,
					},
					&cli.IntFlag{
						Name:  "chunk-overlap",
						Usage: "Chunk overlap in characters",
						Value: ingestion.DefaultChunkOverlap,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Run a hybrid search against the corpus",
				ArgsUsage: "QUERY...",
				Action:    searchCommand,
				Flags: []cli.Flag{
					dbFlag,
					embeddingHostFlag,
					embeddingModelFlag,
					&cli.IntFlag{
						Name:    "n-results",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   10,
					},
					&cli.Float64Flag{
						Name:  "vector-weight",
						Usage: "Weight of the vector similarity signal",
						Value: search.DefaultVectorWeight,
					},
					&cli.Float64Flag{
						Name:  "keyword-weight",
						Usage: "Weight of the keyword overlap signal",
						Value: search.DefaultKeywordWeight,
					},
				},
			},
			{
				Name:   "trends",
				Usage:  "Analyze temporal trends in the corpus",
				Action: trendsCommand,
				Flags: []cli.Flag{
					dbFlag,
					&cli.StringFlag{
						Name:  "facet",
						Usage: "Restrict the analysis to chunks containing this term",
					},
					&cli.StringFlag{
						Name:  "from",
						Usage: "Start date (inclusive)",
					},
					&cli.StringFlag{
						Name:  "to",
						Usage: "End date (inclusive)",
					},
					&cli.StringFlag{
						Name:  "granularity",
						Usage: "Time bucket size (year, month, quarter)",
						Value: "year",
					},
				},
			},
			{
				Name:   "cooccur",
				Usage:  "Report co-occurring technology and art tags",
				Action: cooccurCommand,
				Flags: []cli.Flag{
					dbFlag,
					&cli.IntFlag{
						Name:  "min-count",
						Usage: "Minimum co-occurrence count",
						Value: 2,
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Print corpus statistics",
				Action: statsCommand,
				Flags:  []cli.Flag{dbFlag},
			},
			{
				Name:   "reembed",
				Usage:  "Regenerate embedding vectors for stored chunks",
				Action: reembedCommand,
				Flags: []cli.Flag{
					dbFlag,
					embeddingHostFlag,
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of chunks to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N chunks",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.BoolFlag{
						Name:  "missing-only",
						Usage: "Only embed chunks without a vector",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openEngine(c *cli.Context) (*techne.Engine, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	return techne.NewEngine(c.String("db"), techne.WithAIConfig(aiConfig))
}

func serveCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	searcher, err := engine.NewSearcher()
	if err != nil {
		return err
	}
	analyzer, err := engine.NewAnalyzer()
	if err != nil {
		return err
	}

	server, err := api.New(engine.ChunkRepository(), searcher, analyzer, api.Config{
		Addr: c.String("addr"),
	})
	if err != nil {
		return err
	}

	return server.Start()
}

func ingestCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	pipeline, err := engine.NewIngestionPipeline(
		ingestion.WithChunkSize(c.Int("chunk-size")),
		ingestion.WithChunkOverlap(c.Int("chunk-overlap")),
	)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	documents, err := readDocuments(c.String("src"))
	if err != nil {
		return err
	}

	count, err := pipeline.Ingest(context.Background(), documents)
	if err != nil {
		return err
	}

	fmt.Printf("Ingested %d chunks from %d documents\n", count, len(documents))
	return nil
}

// readDocuments parses a JSONL file of document objects.
func readDocuments(filename string) ([]ingestion.Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var documents []ingestion.Document
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var document ingestion.Document
		if err := json.Unmarshal([]byte(text), &document); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		documents = append(documents, document)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return documents, nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("a search query is required")
	}
	query := strings.Join(c.Args().Slice(), " ")

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	searcher, err := engine.NewSearcher()
	if err != nil {
		return err
	}

	weights := search.Weights{
		Vector:  c.Float64("vector-weight"),
		Keyword: c.Float64("keyword-weight"),
	}

	results, err := searcher.SearchWeighted(context.Background(), query, c.Int("n-results"), weights, nil)
	if err != nil {
		return err
	}

	fmt.Printf("Found %d hits for %q\n", len(results), query)
	for i, hit := range results {
		fmt.Printf("%d. %s (%s)\n", i+1, hit.Record.Title, hit.Record.SourceURL)
		fmt.Printf("   combined %.3f (vector %.3f, keyword %.3f)\n",
			hit.CombinedScore, hit.VectorScore, hit.KeywordScore)
		fmt.Printf("   %s\n", snippet(hit.Record.Text, 120))
	}
	return nil
}

// snippet truncates text to at most n runes on a rune boundary.
func snippet(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}

func openAnalyzer(c *cli.Context) (*trends.Analyzer, func(), error) {
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open corpus: %w", err)
	}

	repo, err := badger.NewChunkRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, fmt.Errorf("failed to create repository: %w", err)
	}

	analyzer, err := trends.NewAnalyzer(repo)
	if err != nil {
		repo.Close()
		backend.Close()
		return nil, nil, err
	}

	cleanup := func() {
		repo.Close()
		backend.Close()
	}
	return analyzer, cleanup, nil
}

func trendsCommand(c *cli.Context) error {
	analyzer, cleanup, err := openAnalyzer(c)
	if err != nil {
		return err
	}
	defer cleanup()

	query := trends.TrendQuery{
		FromDate:    c.String("from"),
		ToDate:      c.String("to"),
		Granularity: core.Granularity(c.String("granularity")),
	}
	if facet := c.String("facet"); facet != "" && facet != "all" {
		query.FacetTerms = []string{facet}
	}

	points, err := analyzer.Trends(context.Background(), query)
	if err != nil {
		return err
	}

	fmt.Println(trends.TrendChart(points))
	return nil
}

func cooccurCommand(c *cli.Context) error {
	analyzer, cleanup, err := openAnalyzer(c)
	if err != nil {
		return err
	}
	defer cleanup()

	pairs, err := analyzer.Cooccurrence(context.Background(), c.Int("min-count"))
	if err != nil {
		return err
	}

	if len(pairs) == 0 {
		fmt.Println("No co-occurring tag pairs found")
		return nil
	}

	for _, pair := range pairs {
		fmt.Printf("%s + %s: %d (correlation %+.2f)\n",
			pair.TagA, pair.TagB, pair.Count, pair.Correlation)
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open corpus: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewChunkRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	ctx := context.Background()
	records, err := repo.GetAllChunks(ctx)
	if err != nil {
		return err
	}

	documents := make(map[string]struct{})
	domains := make(map[string]struct{})
	embedded := 0
	for _, record := range records {
		documents[record.SourceURL] = struct{}{}
		if record.Domain != "" {
			domains[record.Domain] = struct{}{}
		}
		if len(record.Vector) > 0 {
			embedded++
		}
	}

	fmt.Printf("Chunks:    %d\n", len(records))
	fmt.Printf("Documents: %d\n", len(documents))
	fmt.Printf("Domains:   %d\n", len(domains))
	fmt.Printf("Embedded:  %d\n", embedded)
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open corpus: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewChunkRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		MissingOnly:    c.Bool("missing-only"),
	}

	if reembedConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reembedConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reembedConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	reembedder := reembed.NewReembedder(repo, embedder, reembedConfig, os.Stderr)

	fmt.Fprintf(os.Stderr, "Corpus: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if err := reembedder.Run(ctx); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}

	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
