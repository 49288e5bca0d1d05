package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage trading accounts",
	Long: `Manage the accounts trades are assigned to. An account's starting
balance anchors its equity curve; with no account filter the sum of all
starting balances is used.

Examples:
  tradejournal account add Main --balance 10000 --description "live"
  tradejournal account list
  tradejournal account rename Main Live
  tradejournal account remove Demo`,
}

var accountAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or update an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountAdd,
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	Args:  cobra.NoArgs,
	RunE:  runAccountList,
}

var accountRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove an account; its trades keep their label",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountRemove,
}

var accountRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename an account and move its trades",
	Args:  cobra.ExactArgs(2),
	RunE:  runAccountRename,
}

var (
	accountBalance     float64
	accountDescription string
)

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountAddCmd)
	accountCmd.AddCommand(accountListCmd)
	accountCmd.AddCommand(accountRemoveCmd)
	accountCmd.AddCommand(accountRenameCmd)

	accountAddCmd.Flags().Float64Var(&accountBalance, "balance", 0, "starting balance")
	accountAddCmd.Flags().StringVar(&accountDescription, "description", "", "description")
}

func runAccountAdd(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	a := journal.Account{Name: args[0], StartingBalance: accountBalance, Description: accountDescription}
	if err := j.SaveAccount(a); err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	success(cmd.OutOrStdout(), "Saved account %s (%.2f)", a.Name, a.StartingBalance)
	return nil
}

func runAccountList(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	accts, err := j.Accounts()
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(accts)+1)
	for _, a := range accts {
		rows = append(rows, []string{a.Name, fmt.Sprintf("%.2f", a.StartingBalance), a.Description})
	}
	rows = append(rows, []string{"All accounts", fmt.Sprintf("%.2f", journal.TotalBalance(accts)), ""})
	renderTable(cmd.OutOrStdout(), []string{"Account", "Starting Balance", "Description"}, rows)
	return nil
}

func runAccountRemove(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	ok, err := j.DeleteAccount(args[0])
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("account %q: %w", args[0], journal.ErrNotFound)
	}
	success(cmd.OutOrStdout(), "Removed account %s", args[0])
	return nil
}

func runAccountRename(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	if err := j.RenameAccount(args[0], args[1]); err != nil {
		return fmt.Errorf("rename account: %w", err)
	}
	success(cmd.OutOrStdout(), "Renamed account %s to %s", args[0], args[1])
	return nil
}
