package commands

import (
	"os"

	"aurion-client/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var groupsExpand *[]string

func init() {
	groupsExpand = groupsCmd.Flags().StringSlice(
		"expand", nil,
		"Category nodes to expand (in order) before the leaf becomes reachable.",
	)
	rootCmd.AddCommand(groupsCmd)
}

var groupsCmd = &cobra.Command{
	Use:   "groups <leaf node id> [--expand <id>,...]",
	Short: "Prints the class groups behind a planning leaf node.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		client := createClient(ctx)

		expand := append([]string{client.Menu.GroupsPlanningId()}, *groupsExpand...)
		err := client.LoadNodes(ctx, expand)
		if err != nil {
			serviceutil.Fatal("failed to load menu nodes", err)
		}

		groups, err := client.GetClassGroups(ctx, args[0])
		if err != nil {
			serviceutil.Fatal("failed to fetch class groups", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Id", "Name"})
		for _, group := range groups {
			t.AppendRow(table.Row{group.Id, group.Name})
		}
		t.Render()
	},
}
