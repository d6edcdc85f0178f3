package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cepdnaclk/e22-co2060-Syncro/cmd/syncro/config"
	"github.com/cepdnaclk/e22-co2060-Syncro/internal/logging"
)

var (
	// Global flags
	verbose bool
	baseURL string

	// Logger for one-shot commands; the TUI has its own surface.
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "syncro",
	Short: "Syncro - the two-sided service marketplace client",
	Long: `Syncro is a terminal client for the Syncro service marketplace.

One account supports both Buyer and Seller roles. Browse listings, place
and track orders, manage your seller profile, and switch sides at any time.

Run without arguments to start the interactive interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The logger gates on debug_mode in the same config.json the
		// config package owns, so both must resolve the same directory.
		if dir, err := config.ConfigDir(); err == nil {
			_ = logging.Initialize(dir)
		}

		// Skip the zap logger for interactive mode (it has its own UI)
		if cmd.Use == "syncro" && cmd.CalledAs() == "syncro" {
			return nil
		}

		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Gateway base URL (default http://localhost:8000)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(switchRoleCmd)
	rootCmd.AddCommand(listingsCmd)
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(themeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
