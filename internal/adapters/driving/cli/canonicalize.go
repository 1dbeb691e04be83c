package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var canonicalizeCmd = &cobra.Command{
	Use:   "canonicalize [source]",
	Short: "Review drafts into the canonical dataset",
	Long: `Review a drafts file from data/drafts record by record, writing one
canonical record per draft to data/canonical/<stem>.canonical.jsonl.

Every record is validated before the first prompt; a single malformed
record aborts the whole batch. An empty response to a prompt keeps the
drafted value, and approval defaults to "no".`,
	Args: cobra.ExactArgs(1),
	RunE: runCanonicalize,
}

func init() {
	rootCmd.AddCommand(canonicalizeCmd)
}

func runCanonicalize(cmd *cobra.Command, args []string) error {
	if deps == nil || deps.NewCanonicalize == nil {
		return errors.New("canonicalize service not configured")
	}

	svc, err := deps.NewCanonicalize(layoutFromFlags())
	if err != nil {
		return err
	}

	result, err := svc.Run(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("canonicalize failed: %w", err)
	}

	printResult(cmd, result)
	return nil
}
