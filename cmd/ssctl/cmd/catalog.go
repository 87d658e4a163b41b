package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	domain "github.com/donaldgifford/ssello-gateway/pkg/types"
)

func searchCmd() *cobra.Command {
	var searchType string

	c := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the Amazon catalog",
		Long: "Search the Amazon catalog through the gateway by keyword, ASIN or UPC.\n" +
			"Results are normalized catalog items.",
		Example: `  ssctl search "echo dot"
  ssctl search B08N5WRWNW --type asin
  ssctl search 012345678905 --type upc --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := domain.ParseSearchType(searchType)
			if err != nil {
				return err
			}

			items, err := newClient().Search(cmd.Context(), args[0], st)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(out, items)
			}
			if len(items) == 0 {
				_, err := fmt.Fprintln(out, "No items found.")
				return err
			}
			return printItemsTable(out, items)
		},
	}

	c.Flags().StringVarP(&searchType, "type", "t", string(domain.SearchKeyword), "search type (keyword, asin, upc)")
	return c
}

func buyboxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buybox <asin>",
		Short: "Show buy-box pricing for an ASIN",
		Example: `  ssctl buybox B08N5WRWNW
  ssctl buybox B08N5WRWNW --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newClient().Buybox(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(out, result)
			}
			return printBuybox(out, result)
		},
	}
}
