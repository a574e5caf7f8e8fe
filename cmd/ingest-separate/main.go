// Copyright 2025 Poiesic Systems
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
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/poiesic/tabvec"
	"github.com/poiesic/tabvec/ai"
	"github.com/poiesic/tabvec/ingest"
	"github.com/urfave/cli/v2"
)

func main() {
	// Load .env if present; variables already set in the environment win.
	godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "ingest-separate",
		Usage: "Ingest CSV files into one vector collection per file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "Embedding provider API key",
				EnvVars: []string{"OPENAI_API_KEY"},
			},
			&cli.StringFlag{
				Name:    "base-url",
				Usage:   "Embedding provider endpoint override",
				EnvVars: []string{"OPENAI_BASE_URL"},
			},
			&cli.StringFlag{
				Name:    "embedding-model",
				Aliases: []string{"m"},
				Usage:   "Embedding model name",
				Value:   ai.DefaultEmbeddingModel,
				EnvVars: []string{"OPENAI_EMBEDDING_MODEL"},
			},
			&cli.StringFlag{
				Name:    "input-dir",
				Aliases: []string{"i"},
				Usage:   "Directory scanned for CSV files",
				Value:   tabvec.DefaultInputDir,
				EnvVars: []string{"TABVEC_INPUT_DIR"},
			},
			&cli.StringFlag{
				Name:    "output-dir",
				Aliases: []string{"o"},
				Usage:   "Directory the local vector store persists to",
				Value:   tabvec.DefaultOutputDirSeparate,
				EnvVars: []string{"TABVEC_OUTPUT_DIR"},
			},
			&cli.IntFlag{
				Name:    "batch-size",
				Usage:   "Number of documents submitted per batch",
				Value:   ingest.DefaultBatchSize,
				EnvVars: []string{"TABVEC_BATCH_SIZE"},
			},
			&cli.StringFlag{
				Name:    "chroma-url",
				Usage:   "Persist to a remote Chroma server instead of the local store",
				EnvVars: []string{"TABVEC_CHROMA_URL"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"TABVEC_LOG_LEVEL"},
			},
		},
		Before: setupLogger,
		Action: ingestCommand,
	}
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg := tabvec.NewConfig(ingest.ModeSeparate)
	cfg.APIKey = c.String("api-key")
	cfg.BaseURL = c.String("base-url")
	cfg.EmbeddingModel = c.String("embedding-model")
	cfg.InputDir = c.String("input-dir")
	cfg.OutputDir = c.String("output-dir")
	cfg.BatchSize = c.Int("batch-size")
	cfg.ChromaURL = c.String("chroma-url")

	ingestor, err := tabvec.NewIngestor(cfg)
	if err != nil {
		return fmt.Errorf("failed to create ingestor: %w", err)
	}
	defer ingestor.Close()

	fmt.Fprintf(os.Stderr, "Input directory: %s\n", cfg.InputDir)
	if cfg.ChromaURL != "" {
		fmt.Fprintf(os.Stderr, "Chroma server: %s\n", cfg.ChromaURL)
	} else {
		fmt.Fprintf(os.Stderr, "Vector store: %s\n", cfg.OutputDir)
	}
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", cfg.EmbeddingModel)
	fmt.Fprintln(os.Stderr)

	// Per-file failures are already recorded in the printed summary; only a
	// run-level failure exits non-zero.
	if _, err := ingestor.Run(ctx); err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
