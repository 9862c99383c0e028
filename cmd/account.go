package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mathieugrimault/vufind/alma"
)

// accountCmd represents the account command
var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Inspect a patron account",
	Long:  `Show fines, holds, loans, or blocks for a patron, as the discovery layer would see them.`,
}

func init() {
	accountCmd.PersistentFlags().StringVarP(&patronID, "patron", "u", "", "patron id (required)")

	accountCmd.AddCommand(finesCmd)
	accountCmd.AddCommand(accountHoldsCmd)
	accountCmd.AddCommand(loansCmd)
	accountCmd.AddCommand(blocksCmd)
}

func requirePatron() (*alma.Patron, error) {
	if patronID == "" {
		return nil, fmt.Errorf("a patron id is required, pass --patron")
	}
	return &alma.Patron{ID: patronID}, nil
}

var finesCmd = &cobra.Command{
	Use:   "fines",
	Short: "List fines and fees on the account",
	RunE: func(cmd *cobra.Command, args []string) error {
		patron, err := requirePatron()
		if err != nil {
			return err
		}

		fees, err := almaClient.GetMyFines(context.Background(), patron)
		if err != nil {
			return err
		}

		if len(fees) == 0 {
			fmt.Println("No fines on this account.")
			return nil
		}

		for _, fee := range fees {
			fmt.Printf("• %s: %.2f (balance %.2f)", fee.Type, fee.Amount, fee.Balance)
			if fee.Title != "" {
				fmt.Printf(" — %s", fee.Title)
			}
			fmt.Println()
			if fee.CreationTime != "" {
				fmt.Printf("  created: %s\n", fee.CreationTime)
			}
		}
		return nil
	},
}

var accountHoldsCmd = &cobra.Command{
	Use:   "holds",
	Short: "List pending hold requests on the account",
	RunE: func(cmd *cobra.Command, args []string) error {
		patron, err := requirePatron()
		if err != nil {
			return err
		}

		holds, err := almaClient.GetMyHolds(context.Background(), patron)
		if err != nil {
			return err
		}

		if len(holds) == 0 {
			fmt.Println("No holds on this account.")
			return nil
		}

		for _, hold := range holds {
			status := "pending"
			if hold.Available {
				status = "on hold shelf"
			} else if hold.InTransit {
				status = "in transit"
			}
			fmt.Printf("• %s — %s, pickup at %s", hold.Title, status, hold.Location)
			if hold.ExpireDate != "" {
				fmt.Printf(", expires %s", hold.ExpireDate)
			}
			fmt.Println()
		}
		return nil
	},
}

var loansCmd = &cobra.Command{
	Use:   "loans",
	Short: "List checked-out items on the account",
	RunE: func(cmd *cobra.Command, args []string) error {
		patron, err := requirePatron()
		if err != nil {
			return err
		}

		page, err := almaClient.GetMyTransactions(context.Background(), patron, alma.TransactionParams{})
		if err != nil {
			return err
		}

		if page.Count == 0 {
			fmt.Println("No active loans on this account.")
			return nil
		}

		fmt.Printf("%d loans:\n", page.Count)
		fmt.Println(strings.Repeat("-", 80))
		for _, loan := range page.Records {
			fmt.Printf("• %s — due %s", loan.Title, loan.DueDate)
			if loan.DueStatus != "" {
				fmt.Printf(" [%s]", strings.ToUpper(loan.DueStatus))
			}
			fmt.Println()
		}
		return nil
	},
}

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "List active blocks on the account",
	RunE: func(cmd *cobra.Command, args []string) error {
		patron, err := requirePatron()
		if err != nil {
			return err
		}

		blocks, err := almaClient.GetAccountBlocks(context.Background(), patron)
		if err != nil {
			return err
		}

		if len(blocks) == 0 {
			fmt.Println("No active blocks on this account.")
			return nil
		}

		for _, block := range blocks {
			fmt.Printf("• %s\n", block.Description)
		}
		return nil
	},
}
