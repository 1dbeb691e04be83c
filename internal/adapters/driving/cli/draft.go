package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// draftModel is the value of the --model flag. Empty means use the
// configured or default model.
var draftModel string

var draftCmd = &cobra.Command{
	Use:   "draft [source]",
	Short: "Draft semantic annotations for chunks via an LLM",
	Long: `Draft one annotation record per chunk from a data/chunks file into
data/drafts/<stem>.drafts.jsonl. Requires OPENAI_API_KEY in the
environment (a .env file at the working directory is honoured).

Chunks are drafted strictly in order; an unparsable model response is
replaced by an empty draft carrying the chunk id.`,
	Args: cobra.ExactArgs(1),
	RunE: runDraft,
}

func init() {
	draftCmd.Flags().StringVar(&draftModel, "model", "", "LLM model name for drafting (default gpt-4o-mini)")
	rootCmd.AddCommand(draftCmd)
}

func runDraft(cmd *cobra.Command, args []string) error {
	if deps == nil || deps.NewDraft == nil {
		return errors.New("draft service not configured")
	}

	svc, err := deps.NewDraft(layoutFromFlags(), draftModel)
	if err != nil {
		return err
	}

	result, err := svc.Run(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("draft failed: %w", err)
	}

	printResult(cmd, result)
	return nil
}
