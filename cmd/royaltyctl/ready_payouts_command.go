package main

import (
	"fmt"
	"strings"

	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newReadyPayoutsCommand(ctx *commandContext) *cobra.Command {
	var (
		minBalance string
		limit      int
		page       int
		sortBy     string
		ascending  bool
		subLabels  bool
	)

	cmd := &cobra.Command{
		Use:   "ready-payouts",
		Short: "List artists (or sub-labels) that are ready to be paid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := domain.PayoutQuery{
				Page:     page,
				Limit:    limit,
				SortBy:   domain.PayoutSortField(sortBy),
				SortDesc: !ascending,
			}
			if s := strings.TrimSpace(minBalance); s != "" {
				d, err := decimal.NewFromString(s)
				if err != nil {
					return fmt.Errorf("invalid --min-balance %q: %w", s, err)
				}
				q.MinBalance = &d
			}

			svc, err := ctx.ensureServices(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if subLabels {
				result, err := svc.Balance.ListReadySubLabels(cmd.Context(), ctx.tenant(), q)
				if err != nil {
					return err
				}
				if ctx.jsonOutput {
					return writeJSON(cmd, result)
				}
				rows := make([][]string, 0, len(result.Items))
				for _, b := range result.Items {
					rows = append(rows, []string{b.SubLabelID, b.Name, b.Balance.StringFixed(2)})
				}
				fmt.Fprintln(out, renderTable([]string{"ID", "Sub-label", "Balance"}, rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight}))
				fmt.Fprintf(out, "page %d, %d of %d ready\n", result.Page, len(result.Items), result.Total)
				return nil
			}

			result, err := svc.Balance.ListReadyArtists(cmd.Context(), ctx.tenant(), q)
			if err != nil {
				return err
			}
			if ctx.jsonOutput {
				return writeJSON(cmd, result)
			}
			rows := make([][]string, 0, len(result.Items))
			for _, b := range result.Items {
				rows = append(rows, []string{b.ArtistID, b.Name, b.Balance.StringFixed(2), b.PayoutPoint.StringFixed(2)})
			}
			fmt.Fprintln(out, renderTable([]string{"ID", "Artist", "Balance", "Payout Point"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight}))
			fmt.Fprintf(out, "page %d, %d of %d ready\n", result.Page, len(result.Items), result.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&minBalance, "min-balance", "", "Only include balances at or above this amount")
	cmd.Flags().IntVar(&limit, "limit", domain.DefaultPayoutPageLimit, "Page size")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().StringVar(&sortBy, "sort", string(domain.SortByBalance), "Sort by name, balance or created_at")
	cmd.Flags().BoolVar(&ascending, "asc", false, "Sort ascending")
	cmd.Flags().BoolVar(&subLabels, "sub-labels", false, "List the tenant's sub-labels instead of artists")
	return cmd
}
