package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cepdnaclk/e22-co2060-Syncro/cmd/syncro/ui"
	"github.com/cepdnaclk/e22-co2060-Syncro/internal/api"
	"github.com/cepdnaclk/e22-co2060-Syncro/internal/catalog"
)

var (
	listingsSearch   string
	listingsCategory string
	listingsSort     string
	listingsOffline  bool

	createTitle       string
	createDescription string
	createPrice       float64
	createImage       string
)

// listingsCmd is the parent for catalog commands
var listingsCmd = &cobra.Command{
	Use:   "listings",
	Short: "Browse and manage service listings",
	Long: `Browse the service catalog and manage your own listings.

Available subcommands:
  list   - Browse the catalog with search, category and sort filters
  show   - Show one listing in detail
  create - Publish a new listing (sellers)`,
}

// listingsListCmd browses the catalog
var listingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Browse the service catalog",
	RunE:  runListingsList,
}

// listingsShowCmd shows one listing
var listingsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one listing in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runListingsShow,
}

// listingsCreateCmd publishes a new listing
var listingsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a new service listing",
	Long: `Publish a new service listing to the marketplace.

Requires a seller session. The image file, when given, is uploaded with the
listing and hosted by the gateway.`,
	RunE: runListingsCreate,
}

func init() {
	listingsListCmd.Flags().StringVarP(&listingsSearch, "search", "s", "", "Free-text search (title, seller, category, description)")
	listingsListCmd.Flags().StringVarP(&listingsCategory, "category", "c", catalog.CategoryAll, "Category filter")
	listingsListCmd.Flags().StringVar(&listingsSort, "sort", catalog.SortRelevance, "Sort order: relevance, price-low, price-high, rating, reviews")
	listingsListCmd.Flags().BoolVar(&listingsOffline, "offline", false, "Use the offline cache only")

	listingsCreateCmd.Flags().StringVar(&createTitle, "title", "", "Listing title (required)")
	listingsCreateCmd.Flags().StringVar(&createDescription, "description", "", "Listing description (required)")
	listingsCreateCmd.Flags().Float64Var(&createPrice, "price", 0, "Price in USD (required)")
	listingsCreateCmd.Flags().StringVar(&createImage, "image", "", "Path to a cover image")
	listingsCreateCmd.MarkFlagRequired("title")
	listingsCreateCmd.MarkFlagRequired("description")
	listingsCreateCmd.MarkFlagRequired("price")

	listingsCmd.AddCommand(listingsListCmd)
	listingsCmd.AddCommand(listingsShowCmd)
	listingsCmd.AddCommand(listingsCreateCmd)
}

func runListingsList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var listings []catalog.Listing
	if listingsOffline {
		if a.cache == nil {
			return fmt.Errorf("offline cache unavailable")
		}
		listings, err = a.cache.Listings()
		if err != nil {
			return fmt.Errorf("failed to read offline cache: %w", err)
		}
	} else {
		listings = a.fetchCatalog(cmd.Context())
	}

	result := catalog.Apply(listings, catalog.Query{
		Search:   listingsSearch,
		Category: listingsCategory,
		Sort:     listingsSort,
	})
	if len(result) == 0 {
		fmt.Println("No services match your search.")
		return nil
	}

	styles := ui.NewStyles(ui.ThemeByName(a.session.Theme()))
	table := ui.NewSimpleTable(fmt.Sprintf("Services (%d)", len(result)),
		[]string{"ID", "Title", "Seller", "Category", "Rating", "Price"})
	table.AlignRight(4, 5)
	for _, l := range result {
		table.AddRow(
			strconv.Itoa(l.ID),
			l.Title,
			l.Seller,
			l.Category,
			fmt.Sprintf("%.1f (%d)", l.Rating, l.Reviews),
			fmt.Sprintf("$%.0f", l.Price),
		)
	}
	fmt.Print(table.View(styles))
	return nil
}

func runListingsShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid listing id %q", args[0])
	}

	var found *catalog.Listing
	for _, l := range a.fetchCatalog(cmd.Context()) {
		if l.ID == id {
			found = &l
			break
		}
	}
	if found == nil {
		return fmt.Errorf("listing %d not found", id)
	}

	md := listingMarkdown(*found)
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		fmt.Println(md)
		return nil
	}
	out, err := renderer.Render(md)
	if err != nil {
		fmt.Println(md)
		return nil
	}
	fmt.Print(out)
	return nil
}

// listingMarkdown formats a listing as a markdown document for the detail
// view.
func listingMarkdown(l catalog.Listing) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", l.Title)
	fmt.Fprintf(&sb, "**%s** · %s · ★ %.1f (%d reviews)\n\n", l.Seller, l.Category, l.Rating, l.Reviews)
	fmt.Fprintf(&sb, "%s\n\n", l.Description)
	fmt.Fprintf(&sb, "| | |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Price | $%.0f |\n", l.Price)
	if l.DeliveryTime != "" {
		fmt.Fprintf(&sb, "| Delivery | %s |\n", l.DeliveryTime)
	}
	if l.ImageURL != "" {
		fmt.Fprintf(&sb, "\n[Cover image](%s)\n", l.ImageURL)
	}
	return sb.String()
}

func runListingsCreate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	user, err := a.requireLogin()
	if err != nil {
		return err
	}

	req := api.CreateListingRequest{
		Title:       createTitle,
		Description: createDescription,
		Price:       createPrice,
	}
	if createImage != "" {
		f, err := os.Open(createImage)
		if err != nil {
			return fmt.Errorf("failed to open image: %w", err)
		}
		defer f.Close()
		req.Image = f
		req.ImageName = createImage
	}

	logger.Info("Publishing listing", zap.String("title", createTitle))
	resp, err := a.gw.CreateListing(cmd.Context(), user.Token, req)
	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}

	fmt.Println(resp.Message)
	if resp.URL != "" {
		fmt.Printf("Image hosted at: %s\n", resp.URL)
	}
	return nil
}
