// cmd/ziphopp/recent_cmd.go

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(recentCmd())
}

func recentCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently opened archives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup("")
			if err != nil {
				return err
			}
			defer env.close()

			a, err := env.newApp(nil)
			if err != nil {
				return err
			}
			recent := a.Refresh()

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(recent)
			}

			if len(recent.History) == 0 {
				fmt.Fprintln(out, "Recent files")
				fmt.Fprintln(out, "  Files you open will appear here")
				return nil
			}

			fmt.Fprintln(out, "You previously opened...")
			for i, e := range recent.History {
				fmt.Fprintf(out, "  [%d] %s\n      %s\n", i+1, e.Name, e.Path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the list as JSON")

	return cmd
}
