package alma

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/beevik/etree"
)

// HoldDetails carries the user-supplied fields of a hold request.
type HoldDetails struct {
	// PickupLocation is the library code the item is collected from.
	PickupLocation string
	// Comment is an optional free-text note to circulation staff.
	Comment string
	// LastInterestDate is the date after which the hold lapses, in a
	// shape the API accepts (YYYY-MM-DD).
	LastInterestDate string
}

// PlaceHold requests a hold on one item for a patron. When itemID and
// holdingID are empty the hold is placed at title level instead.
func (c *Client) PlaceHold(ctx context.Context, patron *Patron, mmsID, holdingID, itemID string, details HoldDetails) error {
	path := fmt.Sprintf("/bibs/%s/requests", url.PathEscape(mmsID))
	if itemID != "" && holdingID != "" {
		path = fmt.Sprintf("/bibs/%s/holdings/%s/items/%s/requests",
			url.PathEscape(mmsID), url.PathEscape(holdingID), url.PathEscape(itemID))
	}

	params := url.Values{}
	params.Set("user_id", patron.ID)

	_, _, err := c.fetch(ctx, path, fetchOptions{
		method:    http.MethodPost,
		getParams: params,
		rawBody:   holdRequestBody(details),
	})
	return err
}

// holdRequestBody builds the XML payload for a hold request.
func holdRequestBody(details HoldDetails) []byte {
	doc := etree.NewDocument()

	request := doc.CreateElement("user_request")
	request.CreateElement("request_type").SetText("HOLD")
	request.CreateElement("pickup_location_type").SetText("LIBRARY")
	request.CreateElement("pickup_location_library").SetText(details.PickupLocation)
	if details.Comment != "" {
		request.CreateElement("comment").SetText(details.Comment)
	}
	if details.LastInterestDate != "" {
		request.CreateElement("last_interest_date").SetText(details.LastInterestDate)
	}

	body, _ := doc.WriteToBytes()
	return body
}
