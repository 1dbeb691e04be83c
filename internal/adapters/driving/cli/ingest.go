package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [source]",
	Short: "Extract raw text from a PDF or DOCX document",
	Long: `Extract the text of a source document into data/raw/<stem>.txt.

PDF pages are concatenated in page order; DOCX paragraphs are joined
with single newlines, preserving empty paragraphs.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if deps == nil || deps.NewIngest == nil {
		return errors.New("ingest service not configured")
	}

	svc, err := deps.NewIngest(layoutFromFlags())
	if err != nil {
		return err
	}

	result, err := svc.Run(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	printResult(cmd, result)
	return nil
}
