package commands

import (
	"os"
	"strings"
	"time"

	"aurion-client/lib/scrapers/aurion"
	"aurion-client/lib/serviceutil"
	"aurion-client/lib/timezone"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	scheduleFrom  *string
	scheduleTo    *string
	scheduleGroup *string
)

func init() {
	scheduleFrom = scheduleCmd.Flags().String("from", "", "Start date (2006-01-02), defaults to the school year start.")
	scheduleTo = scheduleCmd.Flags().String("to", "", "End date (2006-01-02), defaults to the school year end.")
	scheduleGroup = scheduleCmd.Flags().String("group", "", "Fetch the planning behind this group leaf node instead of the user's own.")
	rootCmd.AddCommand(scheduleCmd)
}

func parseDateFlag(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation("2006-01-02", value, timezone.Location)
	if err != nil {
		serviceutil.Fatal("failed to parse date flag", err)
	}
	return t
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule [--from <date>] [--to <date>] [--group <node id>]",
	Short: "Prints a planning's events.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		client := createClient(ctx)

		start := parseDateFlag(*scheduleFrom)
		end := parseDateFlag(*scheduleTo)

		var events []aurion.Event
		var err error
		if *scheduleGroup != "" {
			events, err = client.GetGroupSchedule(ctx, *scheduleGroup, start, end)
		} else {
			events, err = client.GetUserSchedule(ctx, start, end)
		}
		if err != nil {
			serviceutil.Fatal("failed to fetch schedule", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Start", "End", "Kind", "Subject", "Chapter", "Rooms", "Participants"})
		for _, event := range events {
			t.AppendRow(table.Row{
				event.Start.In(timezone.Location).Format("2006-01-02 15:04"),
				event.End.In(timezone.Location).Format("15:04"),
				event.Kind,
				event.Subject,
				event.Chapter,
				strings.Join(event.Rooms, ", "),
				strings.Join(event.Participants, ", "),
			})
		}
		t.Render()
	},
}
