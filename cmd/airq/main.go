// Copyright 2026 Skyward Data
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
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/skyward-data/airq"
	"github.com/skyward-data/airq/ai"
	"github.com/skyward-data/airq/ai/ollama"
	"github.com/skyward-data/airq/core"
	"github.com/skyward-data/airq/ingestion"
	"github.com/skyward-data/airq/server"
)

func main() {
	app := &cli.App{
		Name:  "airq",
		Usage: "Hybrid retrieval question answering over the air-quality dataset",
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
				Name:   "build",
				Usage:  "Build the search artifacts from the raw dataset",
				Action: buildCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "csv",
						Usage:    "Path to the raw air-quality CSV",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "data",
						Aliases: []string{"d"},
						Usage:   "Directory for the built artifacts",
						Value:   "data",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "all-minilm",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of rows to embed per request",
						Value: 32,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent embedding requests",
						Value: 4,
					},
				},
			},
			{
				Name:   "validate",
				Usage:  "Validate the raw dataset without building artifacts",
				Action: validateCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "csv",
						Usage:    "Path to the raw air-quality CSV",
						Required: true,
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve the answering engine over HTTP",
				Action: serveCommand,
				Flags: append(engineFlags(),
					&cli.StringFlag{
						Name:    "addr",
						Aliases: []string{"a"},
						Usage:   "Listen address",
						Value:   ":8000",
					},
				),
			},
			{
				Name:      "ask",
				Usage:     "Ask a single question from the command line",
				Action:    askCommand,
				ArgsUsage: "QUESTION",
				Flags:     engineFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// engineFlags are shared by every command that opens the built artifacts.
func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "data",
			Aliases: []string{"d"},
			Usage:   "Directory holding the built artifacts",
			Value:   "data",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434",
		},
		&cli.StringFlag{
			Name:  "chat-host",
			Usage: "Chat service host URL",
			Value: "http://localhost:11434",
		},
		&cli.StringFlag{
			Name:  "chat-model",
			Usage: "Chat model name",
			Value: "mistral",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Timeout for generation requests",
			Value: 120 * time.Second,
		},
	}
}

func buildCommand(c *cli.Context) error {
	ctx := context.Background()

	dataDir := c.String("data")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := ollama.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	manifest, err := airq.BuildArtifacts(ctx, c.String("csv"), dataDir, embedder,
		aiConfig.EmbeddingModel, ingestion.EmbedOptions{
			BatchSize: c.Int("batch-size"),
			Workers:   c.Int("workers"),
		})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Indexed %d rows (dimension %d)\n", manifest.RowCount, manifest.Dimension)
	fmt.Fprintf(os.Stderr, "Fingerprint: %s\n", manifest.Fingerprint)
	return nil
}

func validateCommand(c *cli.Context) error {
	pipeline := ingestion.NewPipeline()
	rows, err := pipeline.LoadRows(c.String("csv"))
	if err != nil {
		return err
	}

	report := core.ValidateRows(rows)
	for _, failure := range report.Failures {
		fmt.Fprintf(os.Stderr, "row %d: %s\n", failure.RowID, failure.Reason)
	}
	fmt.Fprintf(os.Stderr, "Checked %d rows, %d failed\n", report.Checked, report.Failed)

	if !report.Passed() {
		return fmt.Errorf("validation failed")
	}
	return nil
}

func openSystem(ctx context.Context, c *cli.Context) (*airq.System, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithChatHost(c.String("chat-host")),
		ai.WithChatModel(c.String("chat-model")),
		ai.WithTimeout(c.Duration("timeout")),
	)
	return airq.OpenSystem(ctx, c.String("data"), airq.WithAIConfig(aiConfig))
}

func serveCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	system, err := openSystem(ctx, c)
	if err != nil {
		return err
	}
	defer system.Close()

	srv := &http.Server{
		Addr:    c.String("addr"),
		Handler: server.NewServer(system),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required")
	}

	ctx := context.Background()
	system, err := openSystem(ctx, c)
	if err != nil {
		return err
	}
	defer system.Close()

	result, err := system.Ask(ctx, question)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
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
