package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// loginCmd signs in against the auth gateway
var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Sign in to your Syncro account",
	Long: `Sign in to your Syncro account.

The gateway decides which role the session starts in. One account supports
both Buyer and Seller roles; use 'syncro switch-role' to change sides.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

// registerCmd creates a new account
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new Syncro account",
	Long: `Create a new Syncro account.

New accounts always start as buyers. Complete seller onboarding with
'syncro profile business setup' to start selling.`,
	RunE: runRegister,
}

// logoutCmd clears the local session
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the local session",
	RunE:  runLogout,
}

// whoamiCmd shows the current session
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user and active role",
	RunE:  runWhoami,
}

// switchRoleCmd toggles between buyer and seller
var switchRoleCmd = &cobra.Command{
	Use:   "switch-role",
	Short: "Switch between buyer and seller",
	Long: `Switch the active role between buyer and seller.

The gateway reissues the session token with the new role claim; the old
token stops working immediately.`,
	RunE: runSwitchRole,
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	email := ""
	if len(args) > 0 {
		email = args[0]
	}
	if email == "" {
		email, err = promptLine("Email: ")
		if err != nil {
			return err
		}
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	logger.Info("Signing in", zap.String("email", email))
	if err := a.session.Login(cmd.Context(), email, password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	user := a.session.AuthUser()
	fmt.Printf("\nWelcome back, %s!\n", user.FirstName)
	fmt.Printf("Signed in as %s (%s)\n", user.Email, a.session.Role())
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	firstName, err := promptLine("First name: ")
	if err != nil {
		return err
	}
	lastName, err := promptLine("Last name: ")
	if err != nil {
		return err
	}
	email, err := promptLine("Email: ")
	if err != nil {
		return err
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	logger.Info("Registering account", zap.String("email", email))
	if err := a.session.Register(cmd.Context(), email, password, firstName, lastName); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Printf("\nWelcome to Syncro, %s!\n", firstName)
	fmt.Println("Your account starts as a buyer. Run 'syncro profile business setup' to sell.")
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.session.Logout(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	fmt.Println("Signed out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	user := a.session.AuthUser()
	if user == nil {
		fmt.Println("Not signed in.")
		return nil
	}

	fmt.Printf("User:  %s (#%d)\n", user.Email, user.UserID)
	fmt.Printf("Name:  %s\n", user.FirstName)
	fmt.Printf("Role:  %s\n", a.session.Role())
	if a.session.HasSellerProfile() {
		bp := a.session.BusinessProfile()
		fmt.Printf("Business: %s (★ %.1f, %d reviews)\n", bp.Name, bp.Rating, bp.ReviewCount)
	}
	return nil
}

func runSwitchRole(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.requireLogin(); err != nil {
		return err
	}

	before := a.session.Role()
	logger.Info("Toggling role", zap.String("from", string(before)))
	if err := a.session.ToggleRole(cmd.Context()); err != nil {
		return fmt.Errorf("role switch failed: %w", err)
	}

	fmt.Printf("Switched from %s to %s.\n", before, a.session.Role())
	return nil
}

// promptLine reads one trimmed line from stdin.
func promptLine(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo, falling back to a plain
// line when stdin is not a terminal (pipes, tests).
func promptPassword(label string) (string, error) {
	fmt.Print(label)
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return promptLineRaw()
	}
	raw, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func promptLineRaw() (string, error) {
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
