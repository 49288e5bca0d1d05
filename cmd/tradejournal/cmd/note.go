package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Keep free-form journal notes",
	Long: `Keep notes alongside the trades: plans, reviews, lessons.

Subcommands:
  add     - Write a new note
  list    - List notes, most recently updated first
  show    - Print a note as an Org-mode block
  edit    - Change the title or content of a note
  delete  - Remove a note

Examples:
  tradejournal note add --title "Weekly review" "Cut losers sooner."
  tradejournal note list
  tradejournal note edit 01HX... --content "Cut losers sooner. Size down on Fridays."
  tradejournal note delete 01HX...`,
}

var noteAddCmd = &cobra.Command{
	Use:   "add [content...]",
	Short: "Write a new note",
	Long:  "Write a new note. The content is --content, or the arguments joined by spaces.",
	RunE:  runNoteAdd,
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Args:  cobra.NoArgs,
	RunE:  runNoteList,
}

var noteShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a note as an Org-mode block",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteShow,
}

var noteEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change the title or content of a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteEdit,
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteDelete,
}

var (
	noteTitle   string
	noteContent string
)

func init() {
	rootCmd.AddCommand(noteCmd)
	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteShowCmd)
	noteCmd.AddCommand(noteEditCmd)
	noteCmd.AddCommand(noteDeleteCmd)

	for _, c := range []*cobra.Command{noteAddCmd, noteEditCmd} {
		c.Flags().StringVar(&noteTitle, "title", "", "note title")
		c.Flags().StringVar(&noteContent, "content", "", "note content")
	}
}

func runNoteAdd(cmd *cobra.Command, args []string) error {
	content := noteContent
	if content == "" {
		content = strings.Join(args, " ")
	}
	if strings.TrimSpace(noteTitle) == "" && strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: a note needs a title or content", journal.ErrInvalidInput)
	}

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	n, err := j.SaveNote(journal.Note{Title: noteTitle, Content: content})
	if err != nil {
		return err
	}
	success(cmd.OutOrStdout(), "Added note %s (%s)", n.ID, n.DisplayTitle())
	return nil
}

func runNoteList(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	notes, err := j.Notes()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(notes))
	for _, n := range notes {
		rows = append(rows, []string{n.ID, n.DisplayTitle(), n.Updated.In(loc).Format(timeLayout)})
	}
	renderTable(cmd.OutOrStdout(), []string{"ID", "Title", "Updated"}, rows)
	fmt.Fprintf(cmd.OutOrStdout(), "%d notes\n", len(notes))
	return nil
}

func runNoteShow(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	n, err := j.FindNote(args[0])
	if err != nil {
		return fmt.Errorf("get note: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatNoteOrg(n))
	return nil
}

func runNoteEdit(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	n, err := j.FindNote(args[0])
	if err != nil {
		return fmt.Errorf("get note: %w", err)
	}

	fl := cmd.Flags()
	if !fl.Changed("title") && !fl.Changed("content") {
		return fmt.Errorf("%w: nothing to change; pass --title or --content", journal.ErrInvalidInput)
	}
	if fl.Changed("title") {
		n.Title = noteTitle
	}
	if fl.Changed("content") {
		n.Content = noteContent
	}

	if n, err = j.SaveNote(n); err != nil {
		return err
	}
	success(cmd.OutOrStdout(), "Updated note %s", n.ID)
	return nil
}

func runNoteDelete(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	ok, err := j.DeleteNote(args[0])
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if !ok {
		return fmt.Errorf("note %q: %w", args[0], journal.ErrNotFound)
	}
	success(cmd.OutOrStdout(), "Deleted note %s", args[0])
	return nil
}
