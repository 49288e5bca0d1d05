package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every trade in the journal",
	Long: `Delete every trade. Accounts, strategies and import history are kept.
Requires --yes.`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

var clearYes bool

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "confirm deleting all trades")
}

func runClear(cmd *cobra.Command, args []string) error {
	if !clearYes {
		return fmt.Errorf("refusing to delete all trades without --yes")
	}

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	if err := j.DeleteAll(); err != nil {
		return fmt.Errorf("clear trades: %w", err)
	}
	success(cmd.OutOrStdout(), "Deleted all trades")
	return nil
}
