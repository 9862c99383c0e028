package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mathieugrimault/vufind/alma"
	"github.com/mathieugrimault/vufind/config"
)

var (
	cfgFile    string
	cfg        *config.Config
	logger     zerolog.Logger
	almaClient *alma.Client

	// Command flags
	patronID string

	version   = "dev"
	buildTime = "unknown"
)

// SetVersion records the build metadata injected by the linker.
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vufind",
	Short: "A diagnostic CLI for the Alma ILS driver",
	Long: `vufind talks to the Ex Libris Alma API the same way the discovery
front end does: it resolves real-time item availability, patron loan and
hold state, and account information, and prints the unified model the
driver produces.`,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(holdingsCmd)
	rootCmd.AddCommand(statusesCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionCmd prints build metadata
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// No config or client needed to print the version.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vufind %s (built %s)\n", version, buildTime)
	},
}

// initializeApp initializes the configuration and the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Create Alma client
	almaClient, err = alma.NewClient(cfg.Alma.BaseURL, cfg.Alma.APIKey, logger,
		alma.WithTimeout(cfg.Alma.Timeout),
		alma.WithItemLimit(cfg.Holdings.ItemLimit),
		alma.WithInventoryTypes(cfg.Inventory.Types),
		alma.WithDigitalDeliveryURL(cfg.Inventory.DigitalDeliveryURL),
	)
	if err != nil {
		return fmt.Errorf("failed to create Alma client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; color only when writing to a terminal
	noColor := !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to the Alma API",
	Long:  `Test the connection to the configured Alma instance and display basic information.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to Alma at %s...\n", cfg.Alma.BaseURL)

	ctx := context.Background()
	if err := almaClient.TestConnection(ctx); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	fmt.Println("✓ Connection successful!")

	locations, err := almaClient.GetPickupLocations(ctx)
	if err != nil {
		return fmt.Errorf("failed to list libraries: %w", err)
	}

	fmt.Printf("\nConfigured inventory types: %s\n", strings.Join(cfg.Inventory.Types, ", "))
	fmt.Printf("Pickup libraries: %d\n", len(locations))
	for _, location := range locations {
		fmt.Printf("  • %s (%s)\n", location.Name, location.ID)
	}

	return nil
}
