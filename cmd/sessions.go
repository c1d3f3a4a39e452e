package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List live multiplexer sessions",
	Long: `List live terminal multiplexer sessions with window and attachment
counts. A stopped server prints nothing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getMultiplexer()
		if err != nil {
			return err
		}

		sessions, err := m.ListSessions(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		for _, s := range sessions {
			attached := ""
			if s.Attached {
				attached = "attached"
			}
			fmt.Fprintf(w, "%s\t%d windows\t%s\t%s\n",
				s.Name, s.Windows, s.Created.Format("2006-01-02 15:04"), attached)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}
