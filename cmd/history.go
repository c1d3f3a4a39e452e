package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show launch history",
	Long: `Show the recorded launch history, most launched first. The history
drives frecency ranking in the picker.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store := openHistory(cfg)
		if store == nil {
			return fmt.Errorf("history store unavailable")
		}
		defer store.Close()

		entries, err := store.Entries(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		for _, e := range entries {
			fmt.Fprintf(w, "%d\t%s\t%s\n",
				e.Count, e.Display, e.LastLaunch.Local().Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all launch history",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store := openHistory(cfg)
		if store == nil {
			return fmt.Errorf("history store unavailable")
		}
		defer store.Close()

		return store.Clear(cmd.Context())
	},
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}
