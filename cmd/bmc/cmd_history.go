package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Roman01-info/bmc-v3/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage saved canvas plans",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved plans, newest first",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a saved canvas as JSON",
	Long: `Prints the canvas JSON for one saved plan. Pipe it to a file to
re-run the analysis later:

  bmc history show 7f3a... > plan.json
  bmc analyze plan.json`,
	Args: cobra.ExactArgs(1),
	RunE: runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Remove a saved plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

var historyRestoreOutput string

var historyRestoreCmd = &cobra.Command{
	Use:   "restore [id]",
	Short: "Write a saved canvas to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryRestore,
}

func init() {
	historyRestoreCmd.Flags().StringVarP(&historyRestoreOutput, "output", "o", "", "Output file (default: <id>.json)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyRestoreCmd)
}

func openHistoryStore() (*history.Store, error) {
	store, err := history.NewStore(cfg.HistoryDBPath(), logger)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}
	return store, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer store.Close()

	archive := store.Load()
	if len(archive) == 0 {
		fmt.Println("No saved plans.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSAVED\tPREVIEW")
	for _, item := range archive {
		ts := item.Timestamp
		if t, err := time.Parse(time.RFC3339, item.Timestamp); err == nil {
			ts = t.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", item.ID, ts, item.Preview)
	}
	return w.Flush()
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer store.Close()

	for _, item := range store.Load() {
		if item.ID == args[0] {
			raw, err := json.MarshalIndent(item.Data, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(raw))
			return nil
		}
	}
	return fmt.Errorf("no saved plan with id %s", args[0])
}

func runHistoryRestore(cmd *cobra.Command, args []string) error {
	store, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer store.Close()

	for _, item := range store.Load() {
		if item.ID == args[0] {
			raw, err := json.MarshalIndent(item.Data, "", "  ")
			if err != nil {
				return err
			}
			out := historyRestoreOutput
			if out == "" {
				out = item.ID + ".json"
			}
			if err := os.WriteFile(out, raw, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Printf("Restored canvas to %s\n", out)
			return nil
		}
	}
	return fmt.Errorf("no saved plan with id %s", args[0])
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	store, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer store.Close()

	archive := store.Load()
	next := store.Delete(archive, args[0])
	if len(next) == len(archive) {
		return fmt.Errorf("no saved plan with id %s", args[0])
	}
	fmt.Printf("Deleted %s\n", args[0])
	return nil
}
