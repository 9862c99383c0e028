package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mathieugrimault/vufind/alma"
)

var (
	holdingsOffset int
	holdingsLimit  int
)

// holdingsCmd represents the holdings command
var holdingsCmd = &cobra.Command{
	Use:   "holdings <mms-id>",
	Short: "Show the holdings window for a bibliographic record",
	Long: `Fetch one window of item availability for a bibliographic record,
including loan due dates and, when a patron is given, hold eligibility.
Electronic and digital entries are included when those inventory types
are configured.`,
	Args: cobra.ExactArgs(1),
	RunE: runHoldings,
}

func init() {
	holdingsCmd.Flags().IntVar(&holdingsOffset, "offset", 0, "index of the first item to show")
	holdingsCmd.Flags().IntVar(&holdingsLimit, "limit", 0, "item window size (default from config)")
	holdingsCmd.Flags().StringVarP(&patronID, "patron", "u", "", "patron id for hold eligibility checks")
}

func runHoldings(cmd *cobra.Command, args []string) error {
	mmsID := args[0]

	var patron *alma.Patron
	if patronID != "" {
		patron = &alma.Patron{ID: patronID}
	}

	logger.Info().Str("mms_id", mmsID).Msg("Fetching holdings")

	ctx := context.Background()
	result, err := almaClient.GetHolding(ctx, mmsID, patron, alma.HoldingOptions{
		Offset:    holdingsOffset,
		ItemLimit: holdingsLimit,
	})
	if err != nil {
		return err
	}

	if result.Total == 0 && len(result.ElectronicHoldings) == 0 {
		fmt.Println("No holdings found for this record.")
		return nil
	}

	fmt.Printf("\n%d items total, showing %d:\n", result.Total, len(result.Holdings))
	fmt.Println(strings.Repeat("-", 80))

	for _, entry := range result.Holdings {
		marker := "✗"
		if entry.Availability {
			marker = "✓"
		}
		fmt.Printf("%s #%s %s — %s", marker, entry.Number, entry.Location, entry.Status)
		if entry.DueDate != "" {
			fmt.Printf(" (due %s)", entry.DueDate)
		}
		fmt.Println()
		fmt.Printf("    call number: %s  barcode: %s\n", entry.CallNumber, entry.Barcode)
		if patron != nil {
			fmt.Printf("    hold allowed: %t\n", entry.AddLink)
		}
		for _, note := range entry.ItemNotes {
			fmt.Printf("    note: %s\n", note)
		}
	}

	if len(result.ElectronicHoldings) > 0 {
		fmt.Printf("\nElectronic/digital availability:\n")
		fmt.Println(strings.Repeat("-", 80))
		for _, entry := range result.ElectronicHoldings {
			marker := "✗"
			if entry.Availability {
				marker = "✓"
			}
			fmt.Printf("%s [%s] %s", marker, entry.Inventory, entry.Location)
			if entry.Link != "" {
				fmt.Printf(" <%s>", entry.Link)
			}
			if entry.Status != "" {
				fmt.Printf(" (%s)", entry.Status)
			}
			fmt.Println()
		}
	}

	return nil
}

// statusesCmd represents the statuses command
var statusesCmd = &cobra.Command{
	Use:   "statuses <mms-id>...",
	Short: "Show decoded availability for a batch of records",
	Long: `Fetch the bibliographic records in one batched call and decode the
availability entries embedded in their MARC fields.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStatuses,
}

func runStatuses(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	statuses, err := almaClient.GetStatuses(ctx, args)
	if err != nil {
		return err
	}

	for _, mmsID := range args {
		entries := statuses[mmsID]
		fmt.Printf("\n%s: %d entries\n", mmsID, len(entries))
		for _, entry := range entries {
			marker := "✗"
			if entry.Availability {
				marker = "✓"
			}
			fmt.Printf("  %s [%s] %s", marker, entry.Inventory, entry.Location)
			if entry.Link != "" {
				fmt.Printf(" <%s>", entry.Link)
			}
			fmt.Println()
		}
	}

	return nil
}
