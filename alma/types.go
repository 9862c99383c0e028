package alma

// Sentinel values used in holdings entries.
const (
	// DueDateRequested is shown instead of a due date for items with a
	// pending request; no loan lookup is made for them.
	DueDateRequested = "requested"
	// BarcodeUnavailable is shown when an item carries no barcode.
	BarcodeUnavailable = "n/a"
)

// Patron identifies a library user for calls that depend on patron
// context.
type Patron struct {
	ID string
}

// HoldingEntry describes the availability of one physical item under a
// bibliographic record.
type HoldingEntry struct {
	ID           string
	Source       string
	Availability bool
	Status       string
	Location     string
	Reserve      string
	CallNumber   string
	// DueDate is a display date, or DueDateRequested for items with a
	// pending request.
	DueDate     string
	ReturnDate  string
	Number      string
	Barcode     string
	ItemNotes   []string
	ItemID      string
	HoldingID   string
	HoldType    string
	AddLink     bool
	Description string
}

// InventoryEntry describes one electronic or digital availability
// entry decoded from a bibliographic record. Digital entries never
// carry a call number.
type InventoryEntry struct {
	Availability bool
	Location     string
	Link         string
	Status       string
	CallNumber   string
	Inventory    string
}

// HoldingOptions controls the item window requested from the API.
type HoldingOptions struct {
	// Offset is the index of the first item to return; sequence
	// numbers continue from it.
	Offset int
	// ItemLimit is the window size; 0 means the configured default.
	ItemLimit int
}

// HoldingResult is the unified availability answer for one record.
type HoldingResult struct {
	Total              int
	Holdings           []HoldingEntry
	ElectronicHoldings []InventoryEntry
}

// LoanRecord describes one checked-out item on a patron account.
type LoanRecord struct {
	ID          string
	DueDate     string
	DueStatus   string
	Barcode     string
	Renewable   bool
	Title       string
	LoanID      string
	Institution string
	LoanDesk    string
}

// Due status values on LoanRecord.
const (
	DueStatusOverdue = "overdue"
	DueStatusDue     = "due"
)

// TransactionsPage is one window of a patron's loans plus the total
// count for external pagination.
type TransactionsPage struct {
	Count   int
	Records []LoanRecord
}

// TransactionParams controls the loan window requested from the API.
type TransactionParams struct {
	Limit  int
	Offset int
}

// Fee describes one fine or fee on a patron account.
type Fee struct {
	Amount       float64
	Balance      float64
	CreationTime string
	CheckoutTime string
	Type         string
	Title        string
	Description  string
}

// HoldRequest describes one pending request on a patron account.
type HoldRequest struct {
	ID         string
	Type       string
	RecordID   string
	Title      string
	Location   string
	ExpireDate string
	// Available is set once the item is on the hold shelf.
	Available bool
	InTransit bool
}

// AccountBlock is a currently active block on a patron account.
// Blocks whose status is not ACTIVE are never surfaced.
type AccountBlock struct {
	Description string
}

// RenewResult reports the outcome of renewing a single loan.
type RenewResult struct {
	Success    bool
	NewDate    string
	SysMessage string
}

// CancelResult reports the outcome of a batch hold cancellation.
type CancelResult struct {
	Count  int
	Eitems map[string]CancelStatus
}

// CancelStatus is the per-request outcome of a cancellation.
type CancelStatus struct {
	Success bool
	Status  string
}

// PickupLocation is a library a hold can be collected from.
type PickupLocation struct {
	ID   string
	Name string
}

// Reserve links a bibliographic record to a course reading list.
type Reserve struct {
	BibID    string
	CourseID string
}
