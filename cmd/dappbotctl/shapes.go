package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Eximchain/dappbot-types/pkg/shapes"
)

var shapesCmd = &cobra.Command{
	Use:   "shapes",
	Short: "List the shapes validate accepts",
	Args:  cobra.NoArgs,
	RunE:  runShapes,
}

func init() {
	rootCmd.AddCommand(shapesCmd)
}

func runShapes(cmd *cobra.Command, args []string) error {
	all := shapes.All()
	if jsonOut {
		out := make([]map[string]string, 0, len(all))
		for _, s := range all {
			out = append(out, map[string]string{"name": s.Name, "description": s.Description})
		}
		return printJSON(cmd, out)
	}

	w := newTable(cmd)
	fmt.Fprintln(w, "NAME\tDESCRIPTION")
	for _, s := range all {
		fmt.Fprintf(w, "%s\t%s\n", s.Name, s.Description)
	}
	return w.Flush()
}
