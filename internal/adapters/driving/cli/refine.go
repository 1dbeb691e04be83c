package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var refineCmd = &cobra.Command{
	Use:   "refine [source]",
	Short: "Derive normalized text variants and token counts",
	Long: `Refine a raw text file from data/raw into four artifacts under
data/refined: whitespace-normalized text, punctuation-stripped text,
lowercased text, and a token frequency table. All four are computed
independently from the original text.`,
	Args: cobra.ExactArgs(1),
	RunE: runRefine,
}

func init() {
	rootCmd.AddCommand(refineCmd)
}

func runRefine(cmd *cobra.Command, args []string) error {
	if deps == nil || deps.NewRefine == nil {
		return errors.New("refine service not configured")
	}

	svc, err := deps.NewRefine(layoutFromFlags())
	if err != nil {
		return err
	}

	result, err := svc.Run(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("refine failed: %w", err)
	}

	printResult(cmd, result)
	return nil
}
