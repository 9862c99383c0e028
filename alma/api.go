package alma

import (
	"context"
)

// API defines the interface for ILS operations consumed by the
// discovery layer.
type API interface {
	// TestConnection verifies the client can reach the API
	TestConnection(ctx context.Context) error

	// GetHolding returns one window of holdings for a record
	GetHolding(ctx context.Context, mmsID string, patron *Patron, opts HoldingOptions) (*HoldingResult, error)

	// GetStatuses returns decoded availability for a batch of records
	GetStatuses(ctx context.Context, ids []string) (map[string][]InventoryEntry, error)

	// GetMyFines returns the fines on a patron account
	GetMyFines(ctx context.Context, patron *Patron) ([]Fee, error)

	// GetMyHolds returns the pending holds on a patron account
	GetMyHolds(ctx context.Context, patron *Patron) ([]HoldRequest, error)

	// GetMyTransactions returns one window of a patron's loans
	GetMyTransactions(ctx context.Context, patron *Patron, opts TransactionParams) (*TransactionsPage, error)

	// RenewMyItems renews loans and reports per-loan results
	RenewMyItems(ctx context.Context, patron *Patron, loanIDs []string) (map[string]RenewResult, error)

	// CancelHolds cancels requests and reports per-request results
	CancelHolds(ctx context.Context, patron *Patron, requestIDs []string) (*CancelResult, error)

	// GetAccountBlocks returns the active blocks on a patron account
	GetAccountBlocks(ctx context.Context, patron *Patron) ([]AccountBlock, error)

	// GetPickupLocations lists hold pickup libraries
	GetPickupLocations(ctx context.Context) ([]PickupLocation, error)

	// PlaceHold requests a hold on an item, or on the title when no
	// item is given
	PlaceHold(ctx context.Context, patron *Patron, mmsID, holdingID, itemID string, details HoldDetails) error

	// FindUser looks up a patron record by any unique identifier
	FindUser(ctx context.Context, userID string) (*User, error)

	// GroupCode returns the patron's user group code
	GroupCode(ctx context.Context, patron *Patron) (string, error)

	// GetCourses returns all courses, keyed by course id
	GetCourses(ctx context.Context) (map[string]string, error)

	// FindReserves returns the records on a course's reading lists
	FindReserves(ctx context.Context, courseID string) ([]Reserve, error)
}

// Client implements the full boundary surface.
var _ API = (*Client)(nil)
