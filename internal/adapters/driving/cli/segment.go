package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var segmentCmd = &cobra.Command{
	Use:   "segment [source]",
	Short: "Split normalized text into identified chunks",
	Long: `Segment a text file from data/refined into an ordered chunk sequence
in data/chunks/<stem>.chunks.json. Chunks are separated by blank lines;
surviving pieces are numbered chunk-0001, chunk-0002, and so on.`,
	Args: cobra.ExactArgs(1),
	RunE: runSegment,
}

func init() {
	rootCmd.AddCommand(segmentCmd)
}

func runSegment(cmd *cobra.Command, args []string) error {
	if deps == nil || deps.NewSegment == nil {
		return errors.New("segment service not configured")
	}

	svc, err := deps.NewSegment(layoutFromFlags())
	if err != nil {
		return err
	}

	result, err := svc.Run(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("segment failed: %w", err)
	}

	printResult(cmd, result)
	return nil
}
