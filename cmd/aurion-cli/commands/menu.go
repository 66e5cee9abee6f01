package commands

import (
	"os"

	"aurion-client/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(menuCmd)
}

var menuCmd = &cobra.Command{
	Use:   "menu [node id...]",
	Short: "Expands menu nodes and prints their children, to discover planning ids.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		client := createClient(ctx)

		ids := args
		if len(ids) == 0 {
			ids = []string{
				client.Menu.SchoolingId(),
				client.Menu.GroupsPlanningId(),
			}
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Parent", "Id", "Name", "Role"})
		for _, id := range ids {
			children, err := client.ExpandNode(ctx, id)
			if err != nil {
				serviceutil.Fatal("failed to expand node", err)
			}
			for _, child := range children {
				role := "leaf"
				if child.IsCategory() {
					role = "category"
				}
				t.AppendRow(table.Row{id, child.Id, child.Name, role})
			}
		}
		t.Render()
	},
}
