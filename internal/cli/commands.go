package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nconklindev/tabscope/internal/analyzer"
	"github.com/nconklindev/tabscope/internal/header"
	"github.com/nconklindev/tabscope/internal/session"
	"github.com/nconklindev/tabscope/internal/types"
	"github.com/nconklindev/tabscope/internal/workbook"
)

func newCountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "count FILE...",
		Short: "Count the sheets in each workbook",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := session.New()
			if _, skipped := sess.Add(args...); skipped > 0 {
				logger.Warn("Skipped duplicate or unsupported files", "count", skipped)
			}
			if sess.Len() == 0 {
				return fmt.Errorf("no workbooks to count (supported: %v)", workbook.Extensions())
			}

			counts := analyzer.CountAll(cmd.Context(), sess.Files(), a.cfg.Workers)

			total := 0
			for _, c := range counts {
				total += c.Count
			}

			out := cmd.OutOrStdout()
			renderTable(out, types.SheetCountColumns, types.SheetCountRecords(counts))
			fmt.Fprintf(out, "%s %d sheets in %d files\n", StyleHeader.Render("Total:"), total, len(counts))
			return nil
		},
	}
}

func newSheetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sheets FILE",
		Short: "List the sheets of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := workbook.ListSheets(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", StyleHeader.Render("File:"), StylePath.Render(filepath.Base(args[0])))
			fmt.Fprintf(out, "Total sheets: %d\n", len(sheets))
			renderTable(out, types.SheetInfoColumns, types.SheetInfoRecords(sheets))
			return nil
		},
	}
}

func newColumnsCmd(a *app) *cobra.Command {
	var sheetName string

	cmd := &cobra.Command{
		Use:   "columns FILE",
		Short: "Show the detected header of every sheet, or the columns of one sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := analyzer.AnalyzeFile(args[0], a.cfg.MaxRows)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", StyleHeader.Render("File:"), StylePath.Render(filepath.Base(args[0])))

			if sheetName == "" {
				fmt.Fprintf(out, "Sheets found: %d\n", len(fs.Sheets))
				renderTable(out, types.FileStructureColumns, fs.Records())
				return nil
			}

			sheet, ok := fs.Sheet(sheetName)
			if !ok {
				return fmt.Errorf("%w: %q", workbook.ErrSheetNotFound, sheetName)
			}
			if sheet.Err != nil {
				return sheet.Err
			}
			if !sheet.Header.Found() {
				fmt.Fprintf(out, "No header found in sheet %q (no run of %d+ filled cells in the first %d rows)\n",
					sheetName, header.MinRunLength, a.cfg.MaxRows)
				return nil
			}

			fmt.Fprintf(out, "Sheet: %s | Header row: %d | Columns: %d\n",
				sheet.Name, sheet.Header.Row, sheet.ColumnCount())
			renderTable(out, types.HeaderColumns, sheet.Header.Records())
			return nil
		},
	}

	cmd.Flags().StringVarP(&sheetName, "sheet", "s", "", "show the header columns of this sheet")
	return cmd
}

func newCompareCmd(a *app) *cobra.Command {
	var groupNumber int

	cmd := &cobra.Command{
		Use:   "compare FILE",
		Short: "Group sheets that share the same column mapping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, report, err := analyzer.AnalyzeAndCompare(args[0], a.cfg.MaxRows)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", StyleHeader.Render("File:"), StylePath.Render(filepath.Base(args[0])))

			if groupNumber > 0 {
				if groupNumber > len(report.Groups) {
					return fmt.Errorf("group %d does not exist (%d groups found)", groupNumber, len(report.Groups))
				}
				printGroup(cmd, report.Groups[groupNumber-1])
				return nil
			}

			fmt.Fprintf(out, "Groups with identical mapping: %d | Unique sheets: %d | No header: %d\n",
				len(report.Groups), len(report.Unique), len(report.Unmapped))
			renderTable(out, types.MappingReportColumns, report.Records())
			for _, g := range report.Groups {
				fmt.Fprintf(out, "%s %s\n", StyleHeader.Render(g.Label()+":"), StyleDim.Render(g.Description()))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&groupNumber, "group", "g", 0, "show the shared columns of this group")
	return cmd
}

func printGroup(cmd *cobra.Command, g types.MappingGroup) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%d sheets)\n", StyleHeader.Render(g.Label()), len(g.Sheets))
	fmt.Fprintln(out, "Sheets with identical mapping:")
	for _, s := range g.Sheets {
		fmt.Fprintf(out, " %s %s\n", StyleDim.Render("•"), s)
	}
	fmt.Fprintln(out, "Shared column mapping:")
	renderTable(out, types.MappingGroupColumns, g.Records())
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [PATH...]",
		Short: "Open the terminal UI",
		Long:  "Open the terminal UI. Workbook paths are queued; a directory sets where the file picker starts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(a, args)
		},
	}
}
