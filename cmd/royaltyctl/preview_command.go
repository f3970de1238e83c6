package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	"github.com/spf13/cobra"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var unmatchedOnly bool

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Match an earnings CSV/XLSX against the tenant's releases without writing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureServices(cmd.Context())
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			preview, err := svc.CsvImport.PreviewEarningsFile(cmd.Context(), ctx.tenant(), filepath.Base(args[0]), data)
			if err != nil {
				return err
			}
			if ctx.jsonOutput {
				return writeJSON(cmd, preview)
			}

			rows := make([][]string, 0, len(preview.Rows))
			for _, r := range preview.Rows {
				if unmatchedOnly && r.Matched() {
					continue
				}
				rows = append(rows, previewRowCells(r))
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Row", "Catalog", "Title", "Amount", "Release", "Matched By"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			))
			fmt.Fprintln(out, renderColumnMapping(preview.Summary.ColumnMapping))

			s := preview.Summary
			fmt.Fprintf(out, "rows: %d  unmatched: %d  skipped: %d  matched total: %s\n",
				s.TotalRows, s.TotalUnmatched, s.TotalSkipped, s.TotalEarningAmount.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().BoolVar(&unmatchedOnly, "unmatched", false, "Only list rows that did not resolve to a release")
	return cmd
}

func previewRowCells(r domain.PreviewRow) []string {
	release, matchedBy := "-", "-"
	if r.MatchedRelease != nil {
		release = r.MatchedRelease.ReleaseID
		matchedBy = string(r.MatchedRelease.MatchedBy)
	}
	return []string{
		strconv.Itoa(r.RowNumber),
		r.CatalogNo,
		r.ReleaseTitle,
		r.EarningAmount.StringFixed(2),
		release,
		matchedBy,
	}
}

func renderColumnMapping(mapping map[domain.CanonicalField]*domain.ColumnMatch) string {
	fields := []domain.CanonicalField{domain.FieldEarningAmount, domain.FieldCatalogNo, domain.FieldReleaseTitle}
	rows := make([][]string, 0, len(fields))
	for _, f := range fields {
		m := mapping[f]
		if m == nil {
			rows = append(rows, []string{string(f), "(unmapped)", ""})
			continue
		}
		rows = append(rows, []string{string(f), m.Header, strconv.Itoa(m.Score)})
	}
	return renderTable([]string{"Field", "Header", "Score"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight})
}
