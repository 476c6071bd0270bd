// Package cli defines the Cobra command tree for the goembed CLI.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/datar-psa/goembed/gemini"
)

var version = "dev"

// globalFlags are shared by every subcommand
type globalFlags struct {
	model      string
	dimensions int32
	taskType   string
	verbose    bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "goembed",
		Short: "Generate text embeddings with the Google AI Gemini API",
		Long: `goembed sends text to a Gemini embedding model and prints the vectors.

The API key is read from GEMINI_API_KEY. The model, dimensions and task type
default to GEMINI_EMBEDDING_MODEL, GEMINI_EMBEDDING_DIMENSIONS and
GEMINI_EMBEDDING_TASK_TYPE.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.model, "model", "", "embedding model (default from GEMINI_EMBEDDING_MODEL)")
	root.PersistentFlags().Int32Var(&flags.dimensions, "dimensions", 0, "output dimensionality (0 = model default)")
	root.PersistentFlags().StringVar(&flags.taskType, "task-type", "", "Gemini task type, e.g. SEMANTIC_SIMILARITY")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		newEmbedCmd(flags),
		newSimilarityCmd(flags),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute(v string) {
	version = v
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "goembed %s\n", version)
		},
	}
}

// newService merges flags over the environment config and builds the embedding service.
// The returned cleanup flushes the logger.
func newService(ctx context.Context, flags *globalFlags) (*gemini.TextEmbeddingService, func(), error) {
	cfg := gemini.NewConfig()
	if flags.model != "" {
		cfg.ModelID = flags.model
	}
	if flags.dimensions != 0 {
		cfg.Dimensions = flags.dimensions
	}
	if flags.taskType != "" {
		cfg.TaskType = flags.taskType
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger := zap.NewNop()
	if flags.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, nil, fmt.Errorf("create logger: %w", err)
		}
		logger = l
	}

	svc, err := gemini.NewTextEmbeddingService(ctx, cfg.ModelID, cfg.APIKey, append(cfg.Options(), gemini.WithLogger(logger))...)
	if err != nil {
		return nil, nil, err
	}
	return svc, func() { _ = logger.Sync() }, nil
}
