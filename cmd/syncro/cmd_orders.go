package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cepdnaclk/e22-co2060-Syncro/cmd/syncro/ui"
	"github.com/cepdnaclk/e22-co2060-Syncro/internal/api"
	"github.com/cepdnaclk/e22-co2060-Syncro/internal/session"
)

// Order lifecycle values accepted by the gateway.
var orderStatuses = []string{"pending", "in-progress", "completed", "cancelled"}

// ordersCmd is the parent for order commands
var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "View and manage your orders",
	Long: `View and manage orders for the signed-in user.

Available subcommands:
  list   - Show your order book for the active role
  place  - Place an order against a listing (buyers)
  status - Move an order through its lifecycle`,
}

// ordersListCmd shows the order book
var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show your order book",
	RunE:  runOrdersList,
}

// ordersPlaceCmd places an order
var ordersPlaceCmd = &cobra.Command{
	Use:   "place <listing-id>",
	Short: "Place an order against a listing",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrdersPlace,
}

// ordersStatusCmd updates an order's status
var ordersStatusCmd = &cobra.Command{
	Use:   "status <order-id> <status>",
	Short: "Update an order's status",
	Long: `Update an order's status.

Valid statuses: pending, in-progress, completed, cancelled.`,
	Args: cobra.ExactArgs(2),
	RunE: runOrdersStatus,
}

func init() {
	ordersCmd.AddCommand(ordersListCmd)
	ordersCmd.AddCommand(ordersPlaceCmd)
	ordersCmd.AddCommand(ordersStatusCmd)
}

func runOrdersList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	user, err := a.requireLogin()
	if err != nil {
		return err
	}

	orders := a.fetchOrders(cmd.Context())
	role := a.session.Role()

	var shown []api.Order
	for _, o := range orders {
		if role == session.RoleSeller && o.SellerID == user.UserID {
			shown = append(shown, o)
		}
		if role == session.RoleBuyer && o.BuyerID == user.UserID {
			shown = append(shown, o)
		}
	}
	if len(shown) == 0 {
		fmt.Printf("No orders for your %s side yet.\n", role)
		return nil
	}

	styles := ui.NewStyles(ui.ThemeByName(a.session.Theme()))
	counterparty := "Seller"
	if role == session.RoleSeller {
		counterparty = "Buyer"
	}
	table := ui.NewSimpleTable(fmt.Sprintf("Orders (%s)", role),
		[]string{"ID", "Service", counterparty, "Status", "Reviewed", "Amount"})
	table.AlignRight(5)
	for _, o := range shown {
		other := o.SellerID
		if role == session.RoleSeller {
			other = o.BuyerID
		}
		reviewed := ""
		if o.HasReview {
			reviewed = "yes"
		}
		table.AddRow(
			fmt.Sprintf("ORD-%03d", o.ID),
			o.ServiceName,
			fmt.Sprintf("#%d", other),
			o.Status,
			reviewed,
			fmt.Sprintf("$%.0f", o.Amount),
		)
	}
	fmt.Print(table.View(styles))
	return nil
}

func runOrdersPlace(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	user, err := a.requireLogin()
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid listing id %q", args[0])
	}

	listings, err := a.gw.Listings(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load listings: %w", err)
	}
	var target *api.Listing
	for _, l := range listings {
		if l.ID == id {
			target = &l
			break
		}
	}
	if target == nil {
		return fmt.Errorf("listing %d not found", id)
	}

	logger.Info("Placing order",
		zap.Int("listing", target.ID),
		zap.Float64("amount", target.Price))
	order, err := a.gw.CreateOrder(cmd.Context(), user.Token, api.CreateOrderRequest{
		ServiceName: target.Title,
		Amount:      target.Price,
		SellerID:    target.SellerID,
		ListingID:   target.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to place order: %w", err)
	}

	fmt.Printf("Order ORD-%03d placed: %s ($%.0f)\n", order.ID, order.ServiceName, order.Amount)
	fmt.Printf("Status: %s\n", order.Status)
	return nil
}

func runOrdersStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	user, err := a.requireLogin()
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid order id %q", args[0])
	}
	status := args[1]
	if !validStatus(status) {
		return fmt.Errorf("invalid status %q (want one of %v)", status, orderStatuses)
	}

	order, err := a.gw.UpdateOrderStatus(cmd.Context(), user.Token, id, status)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	fmt.Printf("Order ORD-%03d is now %s.\n", order.ID, order.Status)
	return nil
}

func validStatus(s string) bool {
	for _, v := range orderStatuses {
		if s == v {
			return true
		}
	}
	return false
}
