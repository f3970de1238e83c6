package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newBalanceCommand(ctx *commandContext) *cobra.Command {
	var subLabel bool

	cmd := &cobra.Command{
		Use:   "balance <artistID|subLabelID>",
		Short: "Show the computed balance and payout readiness of an artist or sub-label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureServices(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if subLabel {
				b, err := svc.Balance.SubLabelBalance(cmd.Context(), ctx.tenant(), args[0])
				if err != nil {
					return err
				}
				if ctx.jsonOutput {
					return writeJSON(cmd, b)
				}
				t := b.Totals
				fmt.Fprintln(out, renderTable(
					[]string{"Sub-label", "Music Gross", "Royalties", "Fees", "Event Net", "Paid", "Balance", "Ready"},
					[][]string{{
						b.Name,
						t.GrossMusicEarnings.StringFixed(2),
						t.RoyaltiesPaid.StringFixed(2),
						t.PlatformFees.StringFixed(2),
						t.EventGrossSales.Sub(t.EventPlatformFees).StringFixed(2),
						t.LabelPaymentsReceived.StringFixed(2),
						b.Balance.StringFixed(2),
						strconv.FormatBool(b.ReadyForPayout),
					}},
					[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft},
				))
				return nil
			}

			b, err := svc.Balance.ArtistBalance(cmd.Context(), ctx.tenant(), args[0])
			if err != nil {
				return err
			}
			if ctx.jsonOutput {
				return writeJSON(cmd, b)
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Artist", "Royalties", "Payments", "Balance", "Payout Point", "Methods", "Hold", "Ready"},
				[][]string{{
					b.Name,
					b.TotalRoyalties.StringFixed(2),
					b.TotalPayments.StringFixed(2),
					b.Balance.StringFixed(2),
					b.PayoutPoint.StringFixed(2),
					strconv.Itoa(b.PaymentMethodCount),
					strconv.FormatBool(b.HoldPayouts),
					strconv.FormatBool(b.ReadyForPayout),
				}},
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&subLabel, "sub-label", false, "Treat the id as a sub-label of the tenant")
	return cmd
}
