package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cepdnaclk/e22-co2060-Syncro/internal/api"
	"github.com/cepdnaclk/e22-co2060-Syncro/internal/session"
)

// profileCmd is the parent for profile commands
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your personal and business profiles",
	Long: `Manage your personal and business profiles.

Available subcommands:
  show     - Show the cached profiles
  edit     - Edit the personal profile
  business - Seller onboarding and business profile updates
  review   - Add a buyer review to a business profile`,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cached profiles",
	RunE:  runProfileShow,
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the personal profile",
	Long: `Edit the personal profile interactively.

The saved profile replaces the previous one wholesale; leave a field blank
to clear it.`,
	RunE: runProfileEdit,
}

var profileBusinessCmd = &cobra.Command{
	Use:   "business",
	Short: "Manage the business profile",
}

var profileBusinessSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Complete seller onboarding",
	Long: `Complete seller onboarding by creating a business profile.

Once a business profile exists the seller dashboard unlocks.`,
	RunE: runBusinessSetup,
}

var profileBusinessPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Publish the local business profile to the gateway",
	RunE:  runBusinessPush,
}

var (
	reviewRating  int
	reviewComment string
	reviewBuyer   string
	reviewOrder   string
)

var profileReviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Add a buyer review to the business profile",
	Long: `Add a buyer review to the business profile.

The profile rating becomes the mean of all review ratings.`,
	RunE: runProfileReview,
}

// themeCmd flips the persisted theme preference
var themeCmd = &cobra.Command{
	Use:   "theme [light|dark]",
	Short: "Show or set the color theme",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTheme,
}

func init() {
	profileReviewCmd.Flags().IntVar(&reviewRating, "rating", 5, "Rating 1-5")
	profileReviewCmd.Flags().StringVar(&reviewComment, "comment", "", "Review text (required)")
	profileReviewCmd.Flags().StringVar(&reviewBuyer, "buyer", "", "Buyer display name (required)")
	profileReviewCmd.Flags().StringVar(&reviewOrder, "order", "", "Order reference, e.g. ORD-003")
	profileReviewCmd.MarkFlagRequired("comment")
	profileReviewCmd.MarkFlagRequired("buyer")

	profileBusinessCmd.AddCommand(profileBusinessSetupCmd)
	profileBusinessCmd.AddCommand(profileBusinessPushCmd)

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileEditCmd)
	profileCmd.AddCommand(profileBusinessCmd)
	profileCmd.AddCommand(profileReviewCmd)
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	p := a.session.UserProfile()
	fmt.Println("Personal Profile")
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Name:  %s %s\n", p.FirstName, p.LastName)
	fmt.Printf("Email: %s\n", p.Email)
	if p.Phone != "" {
		fmt.Printf("Phone: %s\n", p.Phone)
	}
	if p.Bio != "" {
		fmt.Printf("Bio:   %s\n", p.Bio)
	}

	bp := a.session.BusinessProfile()
	if bp == nil {
		fmt.Println("\nNo business profile. Run 'syncro profile business setup' to sell.")
		return nil
	}

	fmt.Println("\nBusiness Profile")
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Name:     %s [%s]\n", bp.Name, bp.Initials)
	fmt.Printf("Rating:   %.1f (%d reviews)\n", bp.Rating, bp.ReviewCount)
	if bp.Category != "" {
		fmt.Printf("Category: %s\n", bp.Category)
	}
	if bp.Description != "" {
		fmt.Printf("About:    %s\n", bp.Description)
	}
	if bp.Website != "" {
		fmt.Printf("Website:  %s\n", bp.Website)
	}
	if len(bp.ServiceTags) > 0 {
		fmt.Printf("Tags:     %s\n", strings.Join(bp.ServiceTags, ", "))
	}
	for _, r := range bp.Reviews {
		fmt.Printf("\n  [%s] %s (%d/5, %s)\n  %s\n", r.BuyerInitials, r.BuyerName, r.Rating, r.Date, r.Comment)
	}
	return nil
}

func runProfileEdit(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	current := a.session.UserProfile()
	fmt.Println("Editing personal profile. Press Enter to keep the shown value.")

	p := session.UserProfile{
		FirstName: promptDefault("First name", current.FirstName),
		LastName:  promptDefault("Last name", current.LastName),
		Email:     promptDefault("Email", current.Email),
		Phone:     promptDefault("Phone", current.Phone),
		Bio:       promptDefault("Bio", current.Bio),
	}
	if err := a.session.SetUserProfile(p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	fmt.Println("Profile saved.")
	return nil
}

func runBusinessSetup(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if a.session.HasSellerProfile() {
		fmt.Println("Business profile already exists. Re-running setup replaces it.")
	}

	name, err := promptLine("Business name: ")
	if err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("business name is required")
	}
	description, _ := promptLine("Description: ")
	category, _ := promptLine("Category: ")
	website, _ := promptLine("Website: ")
	tags, _ := promptLine("Service tags (comma-separated): ")

	bp := session.BusinessProfile{
		Name:        name,
		Description: description,
		Category:    category,
		Website:     website,
		Email:       a.session.UserProfile().Email,
	}
	for _, t := range strings.Split(tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			bp.ServiceTags = append(bp.ServiceTags, t)
		}
	}
	if err := a.session.SetBusinessProfile(bp); err != nil {
		return fmt.Errorf("failed to save business profile: %w", err)
	}

	fmt.Printf("\nBusiness profile created for %s.\n", name)
	fmt.Println("Run 'syncro switch-role' to start acting as a seller.")
	return nil
}

func runBusinessPush(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	user, err := a.requireLogin()
	if err != nil {
		return err
	}
	bp := a.session.BusinessProfile()
	if bp == nil {
		return fmt.Errorf("no business profile; run 'syncro profile business setup' first")
	}

	pushed, err := a.gw.UpdateProfile(cmd.Context(), user.Token, bpToGateway(user.UserID, bp))
	if err != nil {
		return fmt.Errorf("failed to publish profile: %w", err)
	}
	fmt.Printf("Business profile published (gateway id %d).\n", pushed.ID)
	return nil
}

func runProfileReview(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if reviewRating < 1 || reviewRating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}

	review, err := a.session.AddReview(reviewRating, reviewComment, reviewBuyer, reviewOrder)
	if err != nil {
		return fmt.Errorf("failed to add review: %w", err)
	}

	bp := a.session.BusinessProfile()
	fmt.Printf("Review %s recorded.\n", review.ID)
	fmt.Printf("Business rating is now %.1f across %d reviews.\n", bp.Rating, bp.ReviewCount)
	return nil
}

func runTheme(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if len(args) == 0 {
		fmt.Printf("Theme: %s\n", a.session.Theme())
		return nil
	}

	theme := args[0]
	if theme != "light" && theme != "dark" {
		return fmt.Errorf("invalid theme %q (want light or dark)", theme)
	}
	if err := a.session.SetTheme(theme); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	fmt.Printf("Theme set to %s.\n", theme)
	return nil
}

// promptDefault reads a line, keeping def when the input is blank.
func promptDefault(label, def string) string {
	line, err := promptLine(fmt.Sprintf("%s [%s]: ", label, def))
	if err != nil || line == "" {
		return def
	}
	return line
}

// bpToGateway maps the local business profile onto the gateway's profile
// shape. Local-only fields (reviews, tags, gallery) stay local.
func bpToGateway(userID int, bp *session.BusinessProfile) api.Profile {
	return api.Profile{
		UserID:      userID,
		Name:        bp.Name,
		Description: bp.Description,
		Phone:       bp.Phone,
		Website:     bp.Website,
		Address:     bp.Address,
		Logo:        bp.Logo,
		CoverImage:  bp.CoverImage,
	}
}
