package main

import (
	"context"
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/TuranHaqverdiyev/Kredit/internal/config"
	"github.com/TuranHaqverdiyev/Kredit/internal/gateway"
	"github.com/TuranHaqverdiyev/Kredit/internal/logging"
	"github.com/TuranHaqverdiyev/Kredit/internal/wizard"
	"github.com/TuranHaqverdiyev/Kredit/internal/wizard/tui"
)

// Command flags
var (
	apiBaseURL    string
	strictMode    bool
	outputFormat  string
	applicationID string
	accessToken   string
)

func init() {
	// Common flags for service commands (persistent on root)
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api", "", "Service base URL (overrides the config file)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, json)")

	// Add subcommands directly to root
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(initConfigCmd)
}

// loadSettings reads the config file and applies flag overrides.
func loadSettings() (*config.Settings, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if apiBaseURL != "" {
		settings.APIBaseURL = apiBaseURL
	}
	return settings, nil
}

// applyCmd launches the interactive TUI wizard
var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Launch the interactive loan application wizard",
	Long: `Launch an interactive TUI wizard for a new loan application.

The wizard walks through every stage of the application:
- Phone number verification with a one-time password
- Personal data review and consent
- Loan amount and term selection with an indicative payment estimate
- Offer review with accept/reject
- Disclosure form, contract signing and video identification
- Delivery method selection and final confirmation

This is the recommended way to apply for most users.`,
	Example: `  # Launch the wizard
  kredit apply
  # Or simply (apply is default):
  kredit

  # Launch against a specific service instance
  kredit apply --api https://kredo.example.com

  # Require backend confirmation before every step advance
  kredit apply --strict`,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().BoolVar(&strictMode, "strict", false, "Advance steps only after the backend confirms each mutation")
}

func runApply(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	creds := gateway.NewTokenHolder()
	client := gateway.NewClient(settings.APIBaseURL, creds)
	client.SetTimeout(settings.RequestTimeout())

	policy := wizard.Optimistic
	if strictMode || settings.StrictAdvancement {
		policy = wizard.Strict
	}

	machine := wizard.NewMachine(client, settings.OTPChannel, policy)
	// The session and the client must share one token holder so the
	// bearer from OTP verification reaches every subsequent request.
	machine.Session.Credentials = creds
	model := tui.NewAppModel(machine, client, settings.PollInterval())

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("wizard error: %w", err)
	}

	return nil
}

// trackCmd fetches the status of an existing application
var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Show the status of an existing application",
	Long: `Fetch and display the current status of a loan application.

The application ID is printed by the wizard on the final screen. The
access token comes from the same session; tokens are short-lived and
are never written to disk, so an expired one means the application can
only be tracked again after a fresh verification.`,
	Example: `  # Track an application
  kredit track --application-id 7f3a... --token eyJh...

  # JSON output for scripting
  kredit track --application-id 7f3a... --token eyJh... --format json`,
	RunE: runTrack,
}

func init() {
	trackCmd.Flags().StringVar(&applicationID, "application-id", "", "Application ID to track (required)")
	trackCmd.Flags().StringVar(&accessToken, "token", "", "Access token from the verification session (required)")
	_ = trackCmd.MarkFlagRequired("application-id")
	_ = trackCmd.MarkFlagRequired("token")
}

func runTrack(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	creds := gateway.NewTokenHolder()
	creds.Set(accessToken)
	client := gateway.NewClient(settings.APIBaseURL, creds)
	client.SetTimeout(settings.RequestTimeout())

	fmt.Printf("Fetching application %s...\n\n", applicationID)

	result, err := client.GetResult(context.Background(), applicationID)
	if err != nil {
		return fmt.Errorf("%s", gateway.UserMessage(err))
	}

	switch outputFormat {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
	default:
		printResult(result)
	}

	return nil
}

func printResult(result *gateway.LoanResult) {
	fmt.Printf("Application: %s\n", result.ApplicationID)
	fmt.Printf("  Status:    %s\n", result.Status)
	if result.Decision != "" {
		fmt.Printf("  Decision:  %s\n", result.Decision)
	}
	if result.ApprovedAmount != nil {
		fmt.Printf("  Amount:    %.2f AZN\n", *result.ApprovedAmount)
	}
	if result.APR != nil {
		fmt.Printf("  APR:       %.1f%%\n", *result.APR)
	}
	if result.Score != nil {
		fmt.Printf("  Score:     %d\n", *result.Score)
	}
	if len(result.ReasonCodes) > 0 {
		fmt.Printf("  Reasons:   %v\n", result.ReasonCodes)
	}
	if result.LastUpdated != "" {
		fmt.Printf("  Updated:   %s\n", result.LastUpdated)
	}
}

// rateCmd prints an indicative payment estimate without contacting the service
var rateCmd = &cobra.Command{
	Use:   "rate <amount> <term-months>",
	Short: "Show an indicative rate and monthly payment",
	Long: `Compute the indicative annual rate and monthly payment for a given
amount and term.

The figures are estimates only; the binding rate arrives with the offer
during an actual application.`,
	Example: `  # 5000 AZN over 12 months
  kredit rate 5000 12

  # Maximum amount over the longest term
  kredit rate 50000 59`,
	Args: cobra.ExactArgs(2),
	RunE: runRate,
}

func runRate(cmd *cobra.Command, args []string) error {
	var amount float64
	var term int
	if _, err := fmt.Sscanf(args[0], "%f", &amount); err != nil {
		return fmt.Errorf("invalid amount: %q", args[0])
	}
	if _, err := fmt.Sscanf(args[1], "%d", &term); err != nil {
		return fmt.Errorf("invalid term: %q", args[1])
	}

	req := wizard.LoanRequest{Amount: amount, TermMonths: term}
	if err := wizard.ValidateLoanRequest(req); err != nil {
		return err
	}

	rate := wizard.IndicativeRate(amount, term)
	payment := wizard.MonthlyPayment(amount, rate, term)

	fmt.Printf("Amount:           %.2f AZN\n", amount)
	fmt.Printf("Term:             %d months\n", term)
	fmt.Printf("Indicative rate:  %.1f%%\n", rate)
	fmt.Printf("Monthly payment:  %.2f AZN\n", payment)
	fmt.Printf("Total repayment:  %.2f AZN\n", payment*float64(term))

	return nil
}

// initConfigCmd writes a default config file
var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Create a default configuration file",
	Long: `Create the configuration file with default values if it does not
already exist. The file lives under the platform config directory
(XDG_CONFIG_HOME on Linux) and holds connection settings only; access
tokens and OTP codes are never stored.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.CreateDefaultConfig(); err != nil {
			return fmt.Errorf("failed to create config: %w", err)
		}
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Printf("Configuration file: %s\n", path)
		return nil
	},
}
