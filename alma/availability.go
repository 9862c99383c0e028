package alma

import (
	"context"
	"net/url"
	"strings"

	"github.com/beevik/etree"
)

// MARC field tags carrying availability data inside a bib record.
const (
	fieldPhysical   = "AVA"
	fieldElectronic = "AVE"
	fieldDigital    = "AVD"
)

// digitalIDToken is the placeholder in the digital delivery URL
// template.
const digitalIDToken = "%%id%%"

// expandTokens maps inventory type names to the expand tokens the bib
// endpoint understands.
var expandTokens = map[string]string{
	"physical":   "p_avail",
	"electronic": "e_avail",
	"digital":    "d_avail",
}

// GetStatuses returns the decoded availability entries for a batch of
// record ids, using the configured inventory types. The result maps
// each record id to its entries in the order the underlying fields
// appeared.
func (c *Client) GetStatuses(ctx context.Context, ids []string) (map[string][]InventoryEntry, error) {
	return c.getStatuses(ctx, ids, c.inventoryTypes)
}

// getStatuses issues one batched bib fetch with the availability
// expansion for the requested types and decodes the embedded MARC
// availability fields of every returned record.
func (c *Client) getStatuses(ctx context.Context, ids []string, types []string) (map[string][]InventoryEntry, error) {
	statuses := make(map[string][]InventoryEntry, len(ids))
	if len(ids) == 0 {
		return statuses, nil
	}

	var expand []string
	for _, t := range types {
		if token, ok := expandTokens[t]; ok {
			expand = append(expand, token)
		}
	}

	params := url.Values{}
	params.Set("mms_id", strings.Join(ids, ","))
	params.Set("expand", strings.Join(expand, ","))

	doc, _, err := c.fetch(ctx, "/bibs", fetchOptions{getParams: params})
	if err != nil {
		return nil, err
	}

	for _, bib := range doc.FindElements("//bib") {
		mmsID := elementText(bib, "mms_id")

		record := bib.FindElement(".//record")
		if record == nil {
			// A bib without a parseable record contributes nothing,
			// but that is worth noticing in the logs.
			c.logger.Warn().
				Str("mms_id", mmsID).
				Msg("Bib response carries no MARC record")
			statuses[mmsID] = nil
			continue
		}

		statuses[mmsID] = c.decodeRecord(record, mmsID)
	}

	return statuses, nil
}

// decodeRecord extracts the availability entries from the MARC record
// of one bib, in field order.
func (c *Client) decodeRecord(record *etree.Element, mmsID string) []InventoryEntry {
	var entries []InventoryEntry

	for _, field := range record.FindElements("datafield") {
		tag := field.SelectAttrValue("tag", "")

		switch tag {
		case fieldPhysical:
			entries = append(entries, InventoryEntry{
				Inventory:    "physical",
				Availability: strings.EqualFold(subfield(field, "e"), "available"),
				Location:     subfield(field, "c"),
			})
		case fieldElectronic:
			entry := InventoryEntry{
				Inventory:    "electronic",
				Availability: strings.EqualFold(subfield(field, "e"), "available"),
				Location:     subfield(field, "m"),
				Status:       subfield(field, "s"),
			}
			if link := subfield(field, "u"); isAbsoluteHTTP(link) {
				entry.Link = link
			}
			entries = append(entries, entry)
		case fieldDigital:
			entry := InventoryEntry{
				Inventory:    "digital",
				Availability: true,
				Location:     subfield(field, "e"),
			}
			if c.digitalDeliveryURL != "" {
				entry.Link = strings.ReplaceAll(c.digitalDeliveryURL, digitalIDToken, subfield(field, "b"))
			} else {
				c.logger.Warn().
					Str("mms_id", mmsID).
					Msg("Digital availability found but no delivery URL template configured")
			}
			entries = append(entries, entry)
		}
	}

	return entries
}

// subfield returns the text of the first subfield with the given code,
// or "" when absent.
func subfield(field *etree.Element, code string) string {
	for _, sub := range field.FindElements("subfield") {
		if sub.SelectAttrValue("code", "") == code {
			return sub.Text()
		}
	}
	return ""
}

// isAbsoluteHTTP reports whether link is a well-formed absolute
// http(s) URL.
func isAbsoluteHTTP(link string) bool {
	if link == "" {
		return false
	}
	parsed, err := url.Parse(link)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
