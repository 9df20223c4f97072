package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcsa-hvr/circuit1021/internal/domain/model"
)

func newAnnouncementsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "announcements",
		Aliases: []string{"announcement"},
		Short:   "List and post circuit announcements",
	}
	cmd.AddCommand(newAnnouncementsListCmd(a), newAnnouncementsAddCmd(a))
	return cmd
}

func newAnnouncementsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List announcements, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if _, err := a.requireLogin(ctx); err != nil {
				return err
			}
			items, err := a.ws.Announcements(ctx)
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return a.printJSON(items)
			}
			if len(items) == 0 {
				return writeln(a.out, "No announcements yet.")
			}
			for i, item := range items {
				if i > 0 {
					if err := writeln(a.out); err != nil {
						return err
					}
				}
				if err := printAnnouncement(a, item); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func printAnnouncement(a *app, item model.Announcement) error {
	if err := writef(a.out, "%s  %s\n%s\n", item.CreatedAt.UTC().Format(model.DateLayout), item.Title, strings.TrimSpace(item.Content)); err != nil {
		return err
	}
	if !item.IsFuneral() {
		return nil
	}
	tw := a.table()
	details := [][2]string{
		{"Deceased", orDash(item.DeceasedName)},
		{"Class leader", orDash(item.ClassLeaderName)},
		{"Burial", orDash(item.BurialLocation)},
		{"Financial status", orDash(item.FinancialStatus)},
		{"Attendance", orDash(item.AttendanceRecord)},
	}
	if item.DeathDate != nil {
		details = append(details, [2]string{"Date of death", item.DeathDate.UTC().Format(model.DateLayout)})
	}
	for _, d := range details {
		if err := writef(tw, "  %s\t%s\n", d[0], d[1]); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func newAnnouncementsAddCmd(a *app) *cobra.Command {
	var d model.AnnouncementDraft
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Post an announcement, with optional funeral details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if _, err := a.requireLogin(ctx); err != nil {
				return err
			}
			return a.report(a.ws.AddAnnouncement(ctx, &d))
		},
	}
	f := cmd.Flags()
	f.StringVar(&d.Title, "title", "", "announcement title")
	f.StringVar(&d.Content, "content", "", "announcement text")
	f.StringVar(&d.DeceasedName, "deceased", "", "name of the deceased")
	f.StringVar(&d.ClassLeaderName, "class-leader", "", "class leader of the deceased")
	f.StringVar(&d.DeathDate, "death-date", "", "date of death, YYYY-MM-DD")
	f.StringVar(&d.BurialLocation, "burial", "", "burial location")
	f.StringVar(&d.FinancialStatus, "financial-status", "", strings.Join(model.FinancialStatuses(), " or "))
	f.StringVar(&d.AttendanceRecord, "attendance", "", strings.Join(model.AttendanceRecords(), " or "))
	return cmd
}
