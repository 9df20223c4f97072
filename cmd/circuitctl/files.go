package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mcsa-hvr/circuit1021/internal/domain/model"
	"github.com/mcsa-hvr/circuit1021/internal/http/uiutil"
)

func newFilesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "files",
		Aliases: []string{"file"},
		Short:   "List and upload shared files",
	}
	cmd.AddCommand(newFilesListCmd(a), newFilesUploadCmd(a))
	return cmd
}

func parseCategory(raw string) (string, error) {
	c, ok := model.NormalizeFileCategory(raw)
	if !ok {
		return "", fmt.Errorf("invalid category %q", raw)
	}
	return c, nil
}

func newFilesListCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List files in one category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			c, err := parseCategory(category)
			if err != nil {
				return err
			}
			if _, err := a.requireLogin(ctx); err != nil {
				return err
			}
			files, err := a.ws.Files(ctx, c)
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return a.printJSON(files)
			}
			if len(files) == 0 {
				return writeln(a.out, "No files in this category.")
			}

			tw := a.table()
			if err := writeln(tw, "NAME\tCATEGORY\tUPLOADED BY\tUPLOADED"); err != nil {
				return err
			}
			now := a.now()
			for _, f := range files {
				if err := writef(tw, "%s\t%s\t%s\t%s\n",
					f.OriginalName, f.Category, f.UploadedBy, uiutil.FriendlyRelativeTime(f.UploadedAt.Time, now)); err != nil {
					return err
				}
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&category, "category", model.FileCategoryReports, "file category")
	return cmd
}

func newFilesUploadCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a file into a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := parseCategory(category)
			if err != nil {
				return err
			}
			if _, err := a.requireLogin(ctx); err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open upload: %w", err)
			}
			defer f.Close()
			return a.report(a.ws.Upload(ctx, c, filepath.Base(args[0]), f))
		},
	}
	cmd.Flags().StringVar(&category, "category", model.FileCategoryReports, "file category")
	return cmd
}
