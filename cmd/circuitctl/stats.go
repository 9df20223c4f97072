package main

import (
	"github.com/spf13/cobra"

	"github.com/mcsa-hvr/circuit1021/internal/domain/model"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard totals and the latest announcements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if _, err := a.requireLogin(ctx); err != nil {
				return err
			}
			ov, err := a.ws.Overview(ctx)
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return a.printJSON(ov)
			}

			tw := a.table()
			if err := writef(tw, "Total members\t%d\nSocieties\t%d\nOrganizations\t%d\n\n",
				ov.Stats.TotalMembers, ov.Stats.Societies(), ov.Stats.Organizations()); err != nil {
				return err
			}
			if err := writeln(tw, "SOCIETY\tMEMBERS"); err != nil {
				return err
			}
			for _, row := range ov.Stats.MembersPerSociety() {
				if err := writef(tw, "%s\t%d\n", row.Name, row.Members); err != nil {
					return err
				}
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			return printAnnouncementTitles(a, ov.Announcements)
		},
	}
}

func printAnnouncementTitles(a *app, items []model.Announcement) error {
	if len(items) == 0 {
		return writeln(a.out, "\nNo announcements yet.")
	}
	if err := writeln(a.out, "\nRecent announcements:"); err != nil {
		return err
	}
	for _, item := range items {
		if err := writef(a.out, "  %s  %s\n", item.CreatedAt.UTC().Format(model.DateLayout), item.Title); err != nil {
			return err
		}
	}
	return nil
}
