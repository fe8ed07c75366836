package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cartconsole/cmd/cartconsole/ui"
	"cartconsole/internal/shopcarts"
)

// One-shot actions: the same client and normalizer as the interactive
// console, printed straight to stdout. Useful in scripts and for a quick
// look without entering the UI.

var getCmd = &cobra.Command{
	Use:   "get [customer-id]",
	Short: "Retrieve one customer's shopcart and print its items",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "List every shopcart",
	Args:  cobra.NoArgs,
	RunE:  runSearch,
}

var itemsQuantity string

var itemsCmd = &cobra.Command{
	Use:   "items [customer-id]",
	Short: "List one shopcart's items, optionally filtered by quantity",
	Args:  cobra.ExactArgs(1),
	RunE:  runItems,
}

func init() {
	itemsCmd.Flags().StringVar(&itemsQuantity, "quantity", "", "Only list items with this quantity")
}

func directClient() (*shopcarts.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger.Debug("using shopcarts service", zap.String("url", cfg.Service.BaseURL))
	return shopcarts.NewClient(cfg.Service.BaseURL, cfg.RequestTimeout()), nil
}

func printTable(title string, schema []string, prefix string, rows []shopcarts.RenderRow) {
	table := ui.NewResultTable(title, schema, prefix)
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = r
	}
	table.SetRows(cells)
	fmt.Print(table.View(ui.DefaultStyles()))
}

func runGet(cmd *cobra.Command, args []string) error {
	customerID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("customer id must be a number")
	}

	client, err := directClient()
	if err != nil {
		return err
	}
	raw, err := client.RetrieveCart(cmd.Context(), customerID)
	if err != nil {
		logger.Error("retrieve cart failed", zap.Int("customer_id", customerID), zap.Error(err))
		return fmt.Errorf("%s", shopcarts.FailureMessage(err))
	}

	rows, _, err := shopcarts.Normalize(shopcarts.SingleCartNested, raw)
	if err != nil {
		return err
	}
	printTable(fmt.Sprintf("Shopcart %d", customerID), shopcarts.CartSchema, "cart_row_", rows)
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	client, err := directClient()
	if err != nil {
		return err
	}
	raw, err := client.SearchCarts(cmd.Context())
	if err != nil {
		logger.Error("search carts failed", zap.Error(err))
		return fmt.Errorf("%s", shopcarts.FailureMessage(err))
	}

	rows, _, err := shopcarts.Normalize(shopcarts.CartList, raw)
	if err != nil {
		return err
	}
	printTable("Shopcarts", shopcarts.CartSchema, "row_", rows)
	return nil
}

func runItems(cmd *cobra.Command, args []string) error {
	customerID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("customer id must be a number")
	}

	client, err := directClient()
	if err != nil {
		return err
	}
	raw, err := client.SearchItems(cmd.Context(), customerID, itemsQuantity)
	if err != nil {
		logger.Error("search items failed", zap.Int("customer_id", customerID), zap.Error(err))
		return fmt.Errorf("%s", shopcarts.FailureMessage(err))
	}

	rows, _, err := shopcarts.Normalize(shopcarts.ItemList, raw)
	if err != nil {
		return err
	}
	printTable(fmt.Sprintf("Items for customer %d", customerID), shopcarts.ItemSchema, "item_row_", rows)
	return nil
}
