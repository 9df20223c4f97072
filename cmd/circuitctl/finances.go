package main

import (
	"github.com/spf13/cobra"

	"github.com/mcsa-hvr/circuit1021/internal/domain/model"
)

func newFinancesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "finances",
		Aliases: []string{"finance"},
		Short:   "List and record society finances",
	}
	cmd.AddCommand(newFinancesListCmd(a), newFinancesAddCmd(a))
	return cmd
}

func newFinancesListCmd(a *app) *cobra.Command {
	var society, from, to string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List financial entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			opts, fe := model.NewFinancesListOptions(society, from, to)
			if fe != nil {
				return fe
			}
			if _, err := a.requireLogin(ctx); err != nil {
				return err
			}
			entries, err := a.ws.Finances(ctx, opts)
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return a.printJSON(entries)
			}
			if len(entries) == 0 {
				return writeln(a.out, "No financial entries found.")
			}

			tw := a.table()
			if err := writeln(tw, "DATE\tSOCIETY\tSUNDAY\tPLEDGES\tSPECIAL\tEVENTS\tTOTAL"); err != nil {
				return err
			}
			var grand float64
			for _, e := range entries {
				grand += e.Total
				if err := writef(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					e.Date.UTC().Format(model.DateLayout), e.Society.Name(),
					model.FormatRand(e.SundayCollection), model.FormatRand(e.Pledges),
					model.FormatRand(e.SpecialEffort), model.FormatRand(e.CircuitEventsCollection),
					model.FormatRand(e.Total)); err != nil {
					return err
				}
			}
			if err := writef(tw, "\t\t\t\t\tTotal\t%s\n", model.FormatRand(grand)); err != nil {
				return err
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&society, "society", "", "society key")
	cmd.Flags().StringVar(&from, "from", "", "start date, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "end date (inclusive), YYYY-MM-DD")
	return cmd
}

func newFinancesAddCmd(a *app) *cobra.Command {
	var d model.FinanceDraft
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a financial entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if d.Date == "" {
				d.Date = model.NewFinanceDraft(a.now()).Date
			}
			if _, err := a.requireLogin(ctx); err != nil {
				return err
			}
			total := d.DisplayTotal()
			res := a.ws.AddFinance(ctx, &d)
			if err := a.report(res); err != nil {
				return err
			}
			return writef(a.out, "Total: R%s\n", total)
		},
	}
	f := cmd.Flags()
	f.StringVar(&d.Society, "society", "", "society key")
	f.StringVar(&d.Date, "date", "", "entry date, YYYY-MM-DD (default today)")
	f.StringVar(&d.SundayCollection, "sunday", "", "Sunday collection amount")
	f.StringVar(&d.Pledges, "pledges", "", "pledges amount")
	f.StringVar(&d.SpecialEffort, "special", "", "special effort amount")
	f.StringVar(&d.CircuitEventsCollection, "events", "", "circuit events collection amount")
	return cmd
}
