package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcsa-hvr/circuit1021/internal/domain/model"
)

func newMembersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "members",
		Aliases: []string{"member"},
		Short:   "List and add society members",
	}
	cmd.AddCommand(newMembersListCmd(a), newMembersAddCmd(a))
	return cmd
}

func newMembersListCmd(a *app) *cobra.Command {
	var society, search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List members, optionally by society or name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			opts := model.MembersListOptions{Search: search}
			if society != "" {
				s, ok := model.ParseSociety(society)
				if !ok {
					return fmt.Errorf("unknown society %q", society)
				}
				opts.Society = s
			}
			if _, err := a.requireLogin(ctx); err != nil {
				return err
			}
			members, err := a.ws.Members(ctx, opts)
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return a.printJSON(members)
			}
			if len(members) == 0 {
				return writeln(a.out, "No members found.")
			}

			tw := a.table()
			if err := writeln(tw, "NAME\tSOCIETY\tGENDER\tEMAIL\tOCCUPATION"); err != nil {
				return err
			}
			for _, m := range members {
				name := m.FullName
				if m.Title != nil && *m.Title != "" {
					name = *m.Title + " " + name
				}
				if err := writef(tw, "%s\t%s\t%s\t%s\t%s\n",
					name, m.Society.Name(), m.Gender, orDash(m.EmailAddress), m.OccupationOrNA()); err != nil {
					return err
				}
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&society, "society", "", "society key, e.g. kmt")
	cmd.Flags().StringVar(&search, "search", "", "name search")
	return cmd
}

func newMembersAddCmd(a *app) *cobra.Command {
	var d model.MemberDraft
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if _, err := a.requireLogin(ctx); err != nil {
				return err
			}
			return a.report(a.ws.AddMember(ctx, &d))
		},
	}
	f := cmd.Flags()
	f.StringVar(&d.FullName, "full-name", "", "member's full name")
	f.StringVar(&d.DateOfBirth, "dob", "", "date of birth, YYYY-MM-DD")
	f.StringVar(&d.Gender, "gender", "", "Male or Female")
	f.StringVar(&d.Title, "title", "", "title, e.g. Mr or Mrs")
	f.StringVar(&d.ResidentialAddress, "address", "", "residential address")
	f.StringVar(&d.EmailAddress, "email", "", "email address")
	f.StringVar(&d.Occupation, "occupation", "", "occupation")
	f.StringVar(&d.Society, "society", "", "society key")
	f.StringVar(&d.ClassAllocation, "class", "", "class allocation")
	return cmd
}
