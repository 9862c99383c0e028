package alma

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// GetMyFines returns the fines and fees on a patron account.
func (c *Client) GetMyFines(ctx context.Context, patron *Patron) ([]Fee, error) {
	path := fmt.Sprintf("/users/%s/fees", url.PathEscape(patron.ID))
	doc, _, err := c.fetch(ctx, path, fetchOptions{})
	if err != nil {
		return nil, err
	}

	var fees []Fee
	for _, fee := range doc.FindElements("//fees/fee") {
		created, err := c.dates.Normalize(elementText(fee, "creation_time"), true)
		if err != nil {
			return nil, err
		}
		checkout, err := c.dates.Normalize(elementText(fee, "status_time"), true)
		if err != nil {
			return nil, err
		}

		amount, _ := strconv.ParseFloat(elementText(fee, "original_amount"), 64)
		balance, _ := strconv.ParseFloat(elementText(fee, "balance"), 64)

		fees = append(fees, Fee{
			Amount:       amount,
			Balance:      balance,
			CreationTime: created,
			CheckoutTime: checkout,
			Type:         elementAttr(fee, "type", "desc"),
			Title:        elementText(fee, "title"),
			Description:  elementText(fee, "comment"),
		})
	}
	return fees, nil
}

// GetMyHolds returns the pending hold requests on a patron account.
func (c *Client) GetMyHolds(ctx context.Context, patron *Patron) ([]HoldRequest, error) {
	path := fmt.Sprintf("/users/%s/requests", url.PathEscape(patron.ID))

	params := url.Values{}
	params.Set("request_type", "HOLD")

	doc, _, err := c.fetch(ctx, path, fetchOptions{getParams: params})
	if err != nil {
		return nil, err
	}

	var holds []HoldRequest
	for _, request := range doc.FindElements("//user_requests/user_request") {
		expire, err := c.dates.Normalize(elementText(request, "expiry_date"), false)
		if err != nil {
			return nil, err
		}

		status := elementText(request, "request_status")
		holds = append(holds, HoldRequest{
			ID:         elementText(request, "request_id"),
			Type:       elementText(request, "request_type"),
			RecordID:   elementText(request, "mms_id"),
			Title:      elementText(request, "title"),
			Location:   elementText(request, "pickup_location"),
			ExpireDate: expire,
			Available:  status == "On Hold Shelf" || status == "ON_HOLD_SHELF",
			InTransit:  status == "In Transit" || status == "IN_TRANSIT",
		})
	}
	return holds, nil
}

// GetMyTransactions returns one window of a patron's active loans plus
// the total count, so the caller can paginate externally.
func (c *Client) GetMyTransactions(ctx context.Context, patron *Patron, opts TransactionParams) (*TransactionsPage, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(opts.Offset))
	params.Set("order_by", "due_date")
	params.Set("direction", "ASC")

	path := fmt.Sprintf("/users/%s/loans", url.PathEscape(patron.ID))
	doc, _, err := c.fetch(ctx, path, fetchOptions{getParams: params})
	if err != nil {
		return nil, err
	}

	page := &TransactionsPage{}
	if loans := doc.FindElement("//item_loans"); loans != nil {
		if attr := loans.SelectAttr("total_record_count"); attr != nil {
			if total, convErr := strconv.Atoi(attr.Value); convErr == nil {
				page.Count = total
			}
		}
	}

	now := time.Now()
	for _, loan := range doc.FindElements("//item_loan") {
		rawDue := elementText(loan, "due_date")
		display, err := c.dates.Normalize(rawDue, true)
		if err != nil {
			return nil, err
		}

		record := LoanRecord{
			ID:          elementText(loan, "mms_id"),
			DueDate:     display,
			Barcode:     elementText(loan, "item_barcode"),
			Renewable:   elementText(loan, "renewable") != "false",
			Title:       elementText(loan, "title"),
			LoanID:      elementText(loan, "loan_id"),
			Institution: elementAttr(loan, "library", "desc"),
			LoanDesk:    elementAttr(loan, "circ_desk", "desc"),
		}

		if due, parseErr := c.dates.Parse(rawDue); parseErr == nil {
			if due.Before(now) {
				record.DueStatus = DueStatusOverdue
			} else if due.Before(now.Add(24 * time.Hour)) {
				record.DueStatus = DueStatusDue
			}
		}

		page.Records = append(page.Records, record)
	}
	return page, nil
}

// RenewMyItems renews each of the given loans and reports per-loan
// results keyed by loan id. Renewals that the API refuses do not abort
// the remaining ones; transport and server failures do.
func (c *Client) RenewMyItems(ctx context.Context, patron *Patron, loanIDs []string) (map[string]RenewResult, error) {
	results := make(map[string]RenewResult, len(loanIDs))

	for _, loanID := range loanIDs {
		path := fmt.Sprintf("/users/%s/loans/%s", url.PathEscape(patron.ID), url.PathEscape(loanID))

		params := url.Values{}
		params.Set("op", "renew")

		doc, _, err := c.fetch(ctx, path, fetchOptions{method: http.MethodPost, getParams: params})
		if err != nil {
			var business *BusinessError
			if errors.As(err, &business) {
				results[loanID] = RenewResult{Success: false, SysMessage: business.Message}
				continue
			}
			return nil, err
		}

		result := RenewResult{Success: true}
		if due := doc.FindElement("//due_date"); due != nil {
			newDate, normErr := c.dates.Normalize(due.Text(), true)
			if normErr != nil {
				return nil, normErr
			}
			result.NewDate = newDate
		}
		results[loanID] = result
	}
	return results, nil
}

// CancelHolds cancels each of the given requests and reports per-
// request outcomes plus the count of successful cancellations.
func (c *Client) CancelHolds(ctx context.Context, patron *Patron, requestIDs []string) (*CancelResult, error) {
	result := &CancelResult{
		Eitems: make(map[string]CancelStatus, len(requestIDs)),
	}

	for _, requestID := range requestIDs {
		path := fmt.Sprintf("/users/%s/requests/%s", url.PathEscape(patron.ID), url.PathEscape(requestID))

		_, _, err := c.fetch(ctx, path, fetchOptions{method: http.MethodDelete})
		if err != nil {
			var business *BusinessError
			if errors.As(err, &business) {
				result.Eitems[requestID] = CancelStatus{Success: false, Status: business.Message}
				continue
			}
			return nil, err
		}

		result.Eitems[requestID] = CancelStatus{Success: true}
		result.Count++
	}
	return result, nil
}

// GetPickupLocations lists the libraries a hold can be collected from.
func (c *Client) GetPickupLocations(ctx context.Context) ([]PickupLocation, error) {
	doc, _, err := c.fetch(ctx, "/conf/libraries", fetchOptions{})
	if err != nil {
		return nil, err
	}

	var locations []PickupLocation
	for _, library := range doc.FindElements("//libraries/library") {
		locations = append(locations, PickupLocation{
			ID:   elementText(library, "code"),
			Name: elementText(library, "name"),
		})
	}
	return locations, nil
}
