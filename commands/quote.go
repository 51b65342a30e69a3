package commands

import (
	"fmt"

	"lodge-backend/services"

	"github.com/spf13/cobra"
)

func quoteCmd() *cobra.Command {
	var price float64
	var checkIn, checkOut, country string

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a stay without touching the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			ci, err := services.ParseStayDate(checkIn)
			if err != nil {
				return err
			}
			co, err := services.ParseStayDate(checkOut)
			if err != nil {
				return err
			}

			q := services.QuoteStay(price, ci, co)
			out := cmd.OutOrStdout()
			if !q.Complete {
				fmt.Fprintln(out, "incomplete selection: check-out must be after check-in")
				return nil
			}
			cur := services.LookupCurrency(country)
			fmt.Fprintf(out, "nights: %d\ntotal:  %s\n", q.Nights, services.FormatPrice(cur.Convert(q.Total)))
			return nil
		},
	}

	cmd.Flags().Float64Var(&price, "price", 0, "nightly price in base currency")
	cmd.Flags().StringVar(&checkIn, "check-in", "", "check-in date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&checkOut, "check-out", "", "check-out date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&country, "country", services.DefaultCountry, "country code used for the display currency")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("check-in")
	_ = cmd.MarkFlagRequired("check-out")
	return cmd
}
