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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/poiesic/lexorient"
	"github.com/poiesic/lexorient/ai"
	"github.com/poiesic/lexorient/bootstrap"
	"github.com/poiesic/lexorient/core"
	"github.com/poiesic/lexorient/matrix"
	"github.com/poiesic/lexorient/orientation"
	"github.com/poiesic/lexorient/trial"
	"github.com/poiesic/lexorient/vectorize"
	"github.com/urfave/cli/v2"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "lexorient",
		Usage: "Semantic orientation and seed expansion over distributional matrices",
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
				Name:      "import",
				Usage:     "Import a CSV matrix (optionally .gz) into the database",
				ArgsUsage: "<csv-path>",
				Action:    importCommand,
				Flags: []cli.Flag{
					dbFlag(true),
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Name to store the matrix under",
						Required: true,
					},
				},
			},
			{
				Name:      "embed",
				Usage:     "Embed a vocabulary file and store the result as a matrix",
				ArgsUsage: "<vocabulary-path>",
				Action:    embedCommand,
				Flags: []cli.Flag{
					dbFlag(true),
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Name to store the matrix under",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "api-token",
						Usage: "Token for the embedding service",
						Value: "none",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of terms to embed in each request",
						Value: vectorize.DefaultBatchSize,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N terms",
						Value: 1000,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed requests",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List the matrices stored in the database",
				Action: listCommand,
				Flags:  []cli.Flag{dbFlag(true)},
			},
			{
				Name:      "delete",
				Usage:     "Delete a stored matrix",
				ArgsUsage: "<name>",
				Action:    deleteCommand,
				Flags:     []cli.Flag{dbFlag(true)},
			},
			{
				Name:      "expand",
				Usage:     "Grow a seed set over the nearest-neighbor relation of a matrix",
				ArgsUsage: "<seed> [seed...]",
				Action:    expandCommand,
				Flags: append(matrixFlags(),
					&cli.StringFlag{
						Name:  "label",
						Usage: "Label attached to expansion diagnostics",
						Value: "seeds",
					},
					&cli.IntFlag{
						Name:  "steps",
						Usage: "Number of expansion rounds",
						Value: 3,
					},
					&cli.IntFlag{
						Name:  "additions",
						Usage: "Neighbors pulled per frontier term per round",
						Value: 10,
					},
					&cli.Float64Flag{
						Name:  "laplace",
						Usage: "Starting score of seeds and discovered terms",
						Value: bootstrap.DefaultLaplace,
					},
					&cli.StringFlag{
						Name:  "dist-factor",
						Usage: "Weight schedule (constant:W, geometric:W,D, harmonic:W, table:W1,W2,...)",
						Value: "constant:1",
					},
					&cli.IntFlag{
						Name:  "frontier-cap",
						Usage: "Largest frontier visited in a round",
						Value: bootstrap.DefaultFrontierCap,
					},
					&cli.IntFlag{
						Name:  "top",
						Usage: "Print only the N highest scoring terms (0 prints all)",
						Value: 0,
					},
				),
			},
			{
				Name:   "orient",
				Usage:  "Rank matrix rows by semantic orientation",
				Action: orientCommand,
				Flags: append(matrixFlags(),
					&cli.StringSliceFlag{
						Name:  "negative",
						Usage: "Negative seed terms (defaults to the Turney & Littman list)",
					},
					&cli.StringSliceFlag{
						Name:  "positive",
						Usage: "Positive seed terms (defaults to the Turney & Littman list)",
					},
					&cli.IntFlag{
						Name:  "top",
						Usage: "Number of terms to print from each end of the ranking",
						Value: 10,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of scoring workers (0 uses one per CPU)",
						Value: 0,
					},
				),
			},
			{
				Name:      "trial",
				Usage:     "Run a trial from an options file and append the results to it",
				ArgsUsage: "<options-path>",
				Action:    trialCommand,
				Flags: []cli.Flag{
					dbFlag(false),
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "YAML experiment configuration",
					},
					&cli.StringFlag{
						Name:  "data-home",
						Usage: "Directory holding matrices and the ratings file (overrides the config)",
					},
					&cli.StringFlag{
						Name:  "note",
						Usage: "Note appended after the results (prompted for when absent)",
					},
				},
			},
		},
	}
}

func dbFlag(required bool) cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: required,
	}
}

// matrixFlags are shared by commands that read a single matrix either from
// the database or straight from a CSV file.
func matrixFlags() []cli.Flag {
	return []cli.Flag{
		dbFlag(false),
		&cli.StringFlag{
			Name:    "matrix",
			Aliases: []string{"m"},
			Usage:   "Name of a stored matrix (requires --db)",
		},
		&cli.StringFlag{
			Name:  "csv",
			Usage: "Path to a CSV matrix (optionally .gz)",
		},
		&cli.BoolFlag{
			Name:  "ppmi",
			Usage: "Reweight the matrix with positive pointwise mutual information",
			Value: true,
		},
		&cli.StringFlag{
			Name:  "distance",
			Usage: "Distance function (cosine, euclidean, jaccard)",
			Value: "cosine",
		},
	}
}

func importCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one CSV path")
	}
	path := c.Args().First()

	db, err := lexorient.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	manifest, err := db.ImportCSV(ctx, c.String("name"), path)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Imported %s as %q: %d rows x %d columns\n",
		path, manifest.Name, manifest.Rows, len(manifest.Columns))
	return nil
}

func embedCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one vocabulary path")
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithAPIToken(c.String("api-token")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	config := &vectorize.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	terms, err := vectorize.LoadVocabulary(c.Args().First())
	if err != nil {
		return err
	}

	db, err := lexorient.NewDatabase(c.String("db"), lexorient.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	builder, err := db.NewVectorizer(config, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", aiConfig.EmbeddingHost)
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", aiConfig.EmbeddingModel)
	fmt.Fprintln(os.Stderr)

	manifest, err := builder.Run(ctx, c.String("name"), terms)
	if err != nil {
		return fmt.Errorf("embedding failed: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Stored %q: %d rows x %d columns\n",
		manifest.Name, manifest.Rows, len(manifest.Columns))
	return nil
}

func listCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := lexorient.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	manifests, err := db.MatrixRepository().ListMatrices(ctx)
	if err != nil {
		return err
	}
	printManifests(c.App.Writer, manifests)
	return nil
}

func printManifests(w io.Writer, manifests []*core.MatrixManifest) {
	for _, m := range manifests {
		fmt.Fprintf(w, "%s\t%d rows\t%d columns\tupdated %s\n",
			m.Name, m.Rows, len(m.Columns), m.UpdatedAt.Format(time.RFC3339))
	}
}

func deleteCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one matrix name")
	}

	db, err := lexorient.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	return db.MatrixRepository().DeleteMatrix(ctx, c.Args().First())
}

// loadMatrix reads the matrix named by --matrix/--db or --csv.
func loadMatrix(ctx context.Context, c *cli.Context) (*matrix.Matrix, error) {
	name, path := c.String("matrix"), c.String("csv")
	switch {
	case name != "" && path != "":
		return nil, fmt.Errorf("--matrix and --csv are mutually exclusive")
	case path != "":
		m, err := matrix.LoadCSV(path)
		if err != nil {
			return nil, err
		}
		if c.Bool("ppmi") {
			m = matrix.PPMI(m)
		}
		return m, nil
	case name != "":
		if c.String("db") == "" {
			return nil, fmt.Errorf("--matrix requires --db")
		}
		db, err := lexorient.NewDatabase(c.String("db"))
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		return db.LoadMatrix(ctx, name, c.Bool("ppmi"))
	default:
		return nil, fmt.Errorf("one of --matrix or --csv is required")
	}
}

func expandCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	seeds := c.Args().Slice()
	if err := core.ValidateSeeds(seeds); err != nil {
		return err
	}

	distance, err := matrix.DistanceByName(c.String("distance"))
	if err != nil {
		return err
	}
	distFactor, err := bootstrap.ParseDistFactor(c.String("dist-factor"))
	if err != nil {
		return err
	}
	params := bootstrap.Params{
		Label:       c.String("label"),
		DistFactor:  distFactor,
		Laplace:     c.Float64("laplace"),
		Steps:       c.Int("steps"),
		Additions:   c.Int("additions"),
		FrontierCap: c.Int("frontier-cap"),
	}
	if err := params.Validate(); err != nil {
		return err
	}

	m, err := loadMatrix(ctx, c)
	if err != nil {
		return err
	}

	expander, err := lexorient.NewMatrixExpander(m, distance,
		bootstrap.WithMonitor(bootstrap.NewLogMonitor(slog.Default())))
	if err != nil {
		return err
	}

	scores, _, err := expander.Expand(ctx, seeds, params)
	if err != nil {
		return fmt.Errorf("expansion failed: %w", err)
	}

	ranked := scores.Ranked()
	if top := c.Int("top"); top > 0 {
		ranked = scores.Top(top)
	}
	for _, st := range ranked {
		fmt.Fprintf(c.App.Writer, "%s\t%g\n", st.Term, st.Score)
	}
	return nil
}

func orientCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	negative := c.StringSlice("negative")
	if len(negative) == 0 {
		negative = orientation.DefaultNegativeSeeds
	}
	positive := c.StringSlice("positive")
	if len(positive) == 0 {
		positive = orientation.DefaultPositiveSeeds
	}

	distance, err := matrix.DistanceByName(c.String("distance"))
	if err != nil {
		return err
	}
	opts := []orientation.Option{orientation.WithDistance(distance)}
	if workers := c.Int("workers"); workers > 0 {
		opts = append(opts, orientation.WithPoolSize(workers))
	}
	scorer, err := orientation.NewScorer(opts...)
	if err != nil {
		return err
	}
	defer scorer.Release()

	m, err := loadMatrix(ctx, c)
	if err != nil {
		return err
	}

	scores, err := scorer.Score(ctx, m, negative, positive)
	if err != nil {
		return fmt.Errorf("scoring failed: %w", err)
	}
	printEnds(c.App.Writer, scores, c.Int("top"))
	return nil
}

// printEnds prints the n highest and n lowest entries of a ranking,
// or the whole ranking when the two ends would overlap.
func printEnds(w io.Writer, scores []core.ScoredTerm, n int) {
	if n <= 0 || 2*n >= len(scores) {
		for _, st := range scores {
			fmt.Fprintf(w, "%s\t%g\n", st.Term, st.Score)
		}
		return
	}
	for _, st := range scores[:n] {
		fmt.Fprintf(w, "%s\t%g\n", st.Term, st.Score)
	}
	fmt.Fprintln(w, "...")
	for _, st := range scores[len(scores)-n:] {
		fmt.Fprintf(w, "%s\t%g\n", st.Term, st.Score)
	}
}

func trialCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one options file")
	}
	path := c.Args().First()

	config := trial.DefaultConfig()
	if cfgPath := c.String("config"); cfgPath != "" {
		loaded, err := trial.LoadConfig(cfgPath)
		if err != nil {
			return err
		}
		config = loaded
	}
	if dataHome := c.String("data-home"); dataHome != "" {
		config.DataHome = dataHome
	}
	if err := config.Validate(); err != nil {
		return err
	}

	note := c.String("note")
	if !c.IsSet("note") {
		var err error
		note, err = promptNote(c.App.Reader, c.App.Writer)
		if err != nil {
			return err
		}
	}

	var runner *trial.Runner
	if dbPath := c.String("db"); dbPath != "" {
		db, err := lexorient.NewDatabase(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		runner, err = db.NewTrialRunner(config)
		if err != nil {
			return err
		}
	} else {
		var err error
		runner, err = trial.NewRunner(config)
		if err != nil {
			return err
		}
	}
	defer runner.Release()

	report, err := runner.RunFile(ctx, path, note)
	if err != nil {
		return fmt.Errorf("trial failed: %w", err)
	}
	fmt.Fprint(c.App.Writer, trial.FormatResults(report.Results))
	return nil
}

func promptNote(r io.Reader, w io.Writer) (string, error) {
	fmt.Fprint(w, "Describe the change in this trial: ")
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading note: %w", err)
	}
	return strings.TrimSpace(line), nil
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
