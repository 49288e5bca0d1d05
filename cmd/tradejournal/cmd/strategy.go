package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/filter"
	"github.com/rustyeddy/tradejournal/journal"
)

var strategyCmd = &cobra.Command{
	Use:   "strategy",
	Short: "Manage strategy labels",
	Long: `Manage the strategy labels trades can carry.

Examples:
  tradejournal strategy add Breakout
  tradejournal strategy list
  tradejournal strategy rename Breakout "Range Breakout"`,
}

var strategyAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a strategy label",
	Args:  cobra.ExactArgs(1),
	RunE:  runStrategyAdd,
}

var strategyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered strategies and the labels in use",
	Args:  cobra.NoArgs,
	RunE:  runStrategyList,
}

var strategyRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Unregister a strategy; its trades keep their label",
	Args:  cobra.ExactArgs(1),
	RunE:  runStrategyRemove,
}

var strategyRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a strategy and relabel its trades",
	Args:  cobra.ExactArgs(2),
	RunE:  runStrategyRename,
}

func init() {
	rootCmd.AddCommand(strategyCmd)
	strategyCmd.AddCommand(strategyAddCmd)
	strategyCmd.AddCommand(strategyListCmd)
	strategyCmd.AddCommand(strategyRemoveCmd)
	strategyCmd.AddCommand(strategyRenameCmd)
}

func runStrategyAdd(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	if err := j.AddStrategy(args[0]); err != nil {
		return fmt.Errorf("add strategy: %w", err)
	}
	success(cmd.OutOrStdout(), "Added strategy %s", args[0])
	return nil
}

func runStrategyList(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	registered, err := j.Strategies()
	if err != nil {
		return err
	}
	trades, err := j.FindAll()
	if err != nil {
		return err
	}

	known := map[string]bool{}
	var rows [][]string
	for _, s := range registered {
		known[s] = true
		rows = append(rows, []string{s, "registered"})
	}
	for _, s := range filter.Strategies(trades) {
		if !known[s] {
			rows = append(rows, []string{s, "in use"})
		}
	}
	renderTable(cmd.OutOrStdout(), []string{"Strategy", "Status"}, rows)
	return nil
}

func runStrategyRemove(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	ok, err := j.DeleteStrategy(args[0])
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("strategy %q: %w", args[0], journal.ErrNotFound)
	}
	success(cmd.OutOrStdout(), "Removed strategy %s", args[0])
	return nil
}

func runStrategyRename(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	if err := j.RenameStrategy(args[0], args[1]); err != nil {
		return fmt.Errorf("rename strategy: %w", err)
	}
	success(cmd.OutOrStdout(), "Renamed strategy %s to %s", args[0], args[1])
	return nil
}
