package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List all candidate targets",
	Long: `List all candidate targets, one per line, in picker order.

Useful for scripting or piping into an external picker. An optional query
filters the candidates the same way the interactive picker does.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) > 0 {
			query = args[0]
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		targets, err := loadTargets(cmd.Context(), cfg, query, nil)
		if err != nil {
			return err
		}

		for _, t := range targets {
			fmt.Println(t.Display)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
