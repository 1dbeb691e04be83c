// Package cli implements the forge command-line interface. Each
// pipeline stage is a subcommand taking exactly one source path; on
// success the stage's output paths are printed to stdout, one per line,
// and any failure exits non-zero with a descriptive message.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/crucible-labs/forge-cli/internal/core/domain"
	"github.com/crucible-labs/forge-cli/internal/core/services"
	"github.com/crucible-labs/forge-cli/internal/logger"
)

// version is the CLI version string.
var version = "0.1.0"

// Persistent flags.
var (
	pipelineRoot string
	verbose      bool
)

// Dependencies wires the composition root into the CLI. Factories take
// the layout resolved from the --root flag at run time, so services are
// constructed per invocation rather than at program start.
type Dependencies struct {
	NewIngest       func(layout domain.Layout) (*services.IngestService, error)
	NewRefine       func(layout domain.Layout) (*services.RefineService, error)
	NewSegment      func(layout domain.Layout) (*services.SegmentService, error)
	NewDraft        func(layout domain.Layout, model string) (*services.DraftService, error)
	NewCanonicalize func(layout domain.Layout) (*services.CanonicalService, error)
}

// deps holds the current dependency wiring.
var deps *Dependencies

// SetDependencies sets the dependency wiring for all stage commands.
func SetDependencies(d *Dependencies) {
	deps = d
}

var rootCmd = &cobra.Command{
	Use:   "forge",
	Short: "Convert source documents into a curated dataset of labeled chunks",
	Long: `Forge drives a staged pipeline from source documents (PDF/DOCX) to a
human-curated dataset of semantically labeled text chunks.

Stages run independently, each reading the previous stage's output
directory under <root>/data and writing its own:

  ingest        PDF/DOCX -> data/raw/<stem>.txt
  refine        raw text -> data/refined/ (normalized, nopunct, lower, counts)
  segment       normalized text -> data/chunks/<stem>.chunks.json
  draft         chunks -> data/drafts/<stem>.drafts.jsonl
  canonicalize  drafts -> data/canonical/<stem>.canonical.jsonl`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&pipelineRoot, "root", ".", "Pipeline root directory (stage data lives under <root>/data)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// layoutFromFlags resolves the pipeline layout from the --root flag.
func layoutFromFlags() domain.Layout {
	return domain.NewLayout(pipelineRoot)
}

// printResult prints a stage's output paths to stdout, the stage's
// success signal.
func printResult(cmd *cobra.Command, result *domain.StageResult) {
	for _, out := range result.Outputs {
		cmd.Println(out)
	}
}
