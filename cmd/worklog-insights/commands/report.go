package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"worklog-insights/internal/export"
	"worklog-insights/internal/report"

	"github.com/goccy/go-json"
	"github.com/pkg/browser"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	formatJSON  = "json"
	formatTable = "table"
	formatCSV   = "csv"
)

type reportFlags struct {
	start, end    string
	project, user string
	format        string
	out           string
	open          bool
}

func newReportCmd() *cobra.Command {
	var f reportFlags

	kinds := make([]string, 0, len(report.Kinds()))
	for _, k := range report.Kinds() {
		kinds = append(kinds, string(k))
	}

	cmd := &cobra.Command{
		Use:       "report <kind>",
		Short:     "Generate one report and print or export it",
		Long:      "Kinds: " + strings.Join(kinds, ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := report.ParseKind(args[0])
			if err != nil {
				return err
			}
			res, err := reports.Generate(cmd.Context(), report.Request{
				Kind:      kind,
				StartDate: f.start,
				EndDate:   f.end,
				Project:   f.project,
				User:      f.user,
			})
			if err != nil {
				return err
			}

			if f.format != formatCSV {
				return render(cmd.OutOrStdout(), res, f.format)
			}

			dir := f.out
			if dir == "" {
				dir = cfg.ExportDir
			}
			paths, err := writeCSV(dir, res, time.Now())
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			if f.open && len(paths) > 0 {
				if err := browser.OpenFile(paths[0]); err != nil {
					log.Warn().Err(err).Str("path", paths[0]).Msg("Failed to open export")
				}
			}
			return nil
		},
	}

	today := time.Now().Format("2006-01-02")
	cmd.Flags().StringVar(&f.start, "start", today, "first day of the range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", today, "last day of the range (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&f.project, "project", "p", "", "project key or ALL")
	cmd.Flags().StringVarP(&f.user, "user", "u", "", "user display name or ALL")
	cmd.Flags().StringVarP(&f.format, "format", "f", formatJSON, "output format: json, table or csv")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "directory for csv output (default EXPORT_PATH)")
	cmd.Flags().BoolVar(&f.open, "open", false, "open the first exported file")
	return cmd
}

// render writes res to w as indented JSON or as one table per sheet.
func render(w io.Writer, res report.Result, format string) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatTable:
		for _, sheet := range res.Sheets() {
			table, err := renderSheet(sheet)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, sheet.Name)
			fmt.Fprintln(w, table)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func renderSheet(sheet export.Sheet) (string, error) {
	data := make(pterm.TableData, 0, len(sheet.Rows)+1)
	data = append(data, sheet.Header)
	data = append(data, sheet.Rows...)
	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
}

// writeCSV exports every sheet under a base name built from the kind and the
// generation time.
func writeCSV(dir string, res report.Result, now time.Time) ([]string, error) {
	base := fmt.Sprintf("%s_%s", res.Kind(), now.Format("20060102_150405"))
	paths, err := export.WriteDir(dir, base, res.Sheets())
	if err != nil {
		return nil, err
	}
	log.Info().Str("dir", dir).Int("files", len(paths)).Msg("Report exported")
	return paths, nil
}
