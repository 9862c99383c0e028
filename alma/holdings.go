package alma

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/beevik/etree"
	"golang.org/x/sync/errgroup"
)

// GetHolding returns the total item count for a bibliographic record
// and one window of holdings entries, ordered as the API returns them
// (library, location, enumeration, descending). When the configured
// inventory types include electronic or digital, the decoded
// electronic/digital entries for the record are attached alongside the
// physical holdings.
//
// Per-item loan and request-option sub-fetches run concurrently with a
// bounded limit; entry order is keyed by item index, and the first
// sub-fetch failure cancels the rest and fails the whole call.
func (c *Client) GetHolding(ctx context.Context, mmsID string, patron *Patron, opts HoldingOptions) (*HoldingResult, error) {
	limit := opts.ItemLimit
	if limit <= 0 {
		limit = c.itemLimit
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(opts.Offset))
	params.Set("order_by", "library,location,enum_a,enum_b")
	params.Set("direction", "desc")

	path := fmt.Sprintf("/bibs/%s/holdings/ALL/items", url.PathEscape(mmsID))
	doc, _, err := c.fetch(ctx, path, fetchOptions{getParams: params})
	if err != nil {
		return nil, err
	}

	result := &HoldingResult{}

	// A record with no items element yields an empty result, not an
	// error.
	itemsElem := doc.FindElement("//items")
	if itemsElem != nil {
		if attr := itemsElem.SelectAttr("total_record_count"); attr != nil {
			if total, convErr := strconv.Atoi(attr.Value); convErr == nil {
				result.Total = total
			}
		}

		items := itemsElem.SelectElements("item")
		entries := make([]HoldingEntry, len(items))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.fanOutLimit)

		for i, item := range items {
			i, item := i, item
			entries[i] = c.holdingEntry(item, mmsID, opts.Offset+i)

			g.Go(func() error {
				return c.enrichHoldingEntry(gctx, item, &entries[i], patron)
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}
		result.Holdings = entries
	}

	electronic, err := c.electronicHoldings(ctx, mmsID)
	if err != nil {
		return nil, err
	}
	result.ElectronicHoldings = electronic

	return result, nil
}

// holdingEntry maps the synchronously available fields of one item
// element. seq is the running sequence number for the window; a
// non-empty item description replaces it for display and title-level
// hold correlation.
func (c *Client) holdingEntry(item *etree.Element, mmsID string, seq int) HoldingEntry {
	entry := HoldingEntry{
		ID:         mmsID,
		Source:     "Solr",
		Status:     elementAttr(item, "item_data/base_status", "desc"),
		Location:   elementText(item, "item_data/location"),
		CallNumber: elementText(item, "holding_data/call_number"),
		ReturnDate: elementText(item, "item_data/expected_arrival_date"),
		ItemID:     elementText(item, "item_data/pid"),
		HoldingID:  elementText(item, "holding_data/holding_id"),
		HoldType:   "hold",
	}

	// Availability is derived from the base status alone.
	entry.Availability = elementText(item, "item_data/base_status") == "1"

	entry.Barcode = elementText(item, "item_data/barcode")
	if entry.Barcode == "" {
		entry.Barcode = BarcodeUnavailable
	}

	entry.Description = elementText(item, "item_data/description")
	if entry.Description != "" {
		entry.Number = entry.Description
	} else {
		entry.Number = strconv.Itoa(seq)
	}

	if note := elementText(item, "item_data/public_note"); note != "" {
		entry.ItemNotes = []string{note}
	}

	return entry
}

// enrichHoldingEntry issues the conditional per-item sub-fetches: the
// loan due date for items on loan, and the hold eligibility check when
// patron context is available.
func (c *Client) enrichHoldingEntry(ctx context.Context, item *etree.Element, entry *HoldingEntry, patron *Patron) error {
	processType := elementText(item, "item_data/process_type")
	requested := elementText(item, "item_data/requested") == "true"

	if processType == "LOAN" {
		if requested {
			// A requested item is about to change hands; its current
			// due date is not meaningful.
			entry.DueDate = DueDateRequested
		} else {
			dueDate, err := c.itemLoanDueDate(ctx, entry.ID, entry.HoldingID, entry.ItemID)
			if err != nil {
				return err
			}
			entry.DueDate = dueDate
		}
	}

	// Anonymous eligibility is never assumed; without a patron the
	// request-options call is skipped entirely.
	if patron != nil {
		eligible, err := c.itemHoldEligible(ctx, entry.ID, entry.HoldingID, entry.ItemID, patron)
		if err != nil {
			return err
		}
		entry.AddLink = eligible
	}

	return nil
}

// itemLoanDueDate fetches the active loan for an item and normalizes
// its due date for display.
func (c *Client) itemLoanDueDate(ctx context.Context, mmsID, holdingID, itemID string) (string, error) {
	path := fmt.Sprintf("/bibs/%s/holdings/%s/items/%s/loans",
		url.PathEscape(mmsID), url.PathEscape(holdingID), url.PathEscape(itemID))

	doc, _, err := c.fetch(ctx, path, fetchOptions{})
	if err != nil {
		return "", err
	}

	due := doc.FindElement("//item_loan/due_date")
	if due == nil {
		return "", nil
	}

	normalized, err := c.dates.Normalize(due.Text(), false)
	if err != nil {
		return "", err
	}
	return normalized, nil
}

// itemHoldEligible checks which request types the API permits for this
// item/patron pair; the item is hold-eligible iff HOLD is among them.
func (c *Client) itemHoldEligible(ctx context.Context, mmsID, holdingID, itemID string, patron *Patron) (bool, error) {
	path := fmt.Sprintf("/bibs/%s/holdings/%s/items/%s/request-options",
		url.PathEscape(mmsID), url.PathEscape(holdingID), url.PathEscape(itemID))

	params := url.Values{}
	params.Set("user_id", patron.ID)

	doc, _, err := c.fetch(ctx, path, fetchOptions{getParams: params})
	if err != nil {
		return false, err
	}

	for _, option := range doc.FindElements("//request_option/type") {
		if option.Text() == "HOLD" {
			return true, nil
		}
	}
	return false, nil
}

// electronicHoldings runs the second aggregation path: the decoded
// electronic/digital entries for the record, flattened into one list.
// Returns nil when neither type is configured.
func (c *Client) electronicHoldings(ctx context.Context, mmsID string) ([]InventoryEntry, error) {
	var types []string
	for _, t := range c.inventoryTypes {
		if t == "electronic" || t == "digital" {
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		return nil, nil
	}

	statuses, err := c.getStatuses(ctx, []string{mmsID}, types)
	if err != nil {
		return nil, err
	}

	var entries []InventoryEntry
	for _, recordEntries := range statuses {
		entries = append(entries, recordEntries...)
	}
	return entries, nil
}

// elementText returns the text of the element at path below parent, or
// "" when the element is absent.
func elementText(parent *etree.Element, path string) string {
	if elem := parent.FindElement(path); elem != nil {
		return elem.Text()
	}
	return ""
}

// elementAttr returns the named attribute of the element at path below
// parent, or "" when either is absent.
func elementAttr(parent *etree.Element, path, attr string) string {
	if elem := parent.FindElement(path); elem != nil {
		if a := elem.SelectAttr(attr); a != nil {
			return a.Value
		}
	}
	return ""
}
