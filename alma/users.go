package alma

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mathieugrimault/vufind/cache"
)

// User is the subset of a patron record the discovery layer needs.
type User struct {
	ID    string
	Name  string
	Email string
	Group string
}

// FindUser looks up a patron record by any unique identifier. A 400
// response means the identifier matched no user and yields (nil, nil)
// rather than an error, so login flows can treat it as a failed
// credential check.
func (c *Client) FindUser(ctx context.Context, userID string) (*User, error) {
	path := fmt.Sprintf("/users/%s", url.PathEscape(userID))

	params := url.Values{}
	params.Set("user_id_type", "all_unique")
	params.Set("view", "brief")
	params.Set("expand", "none")

	doc, status, err := c.fetch(ctx, path, fetchOptions{
		getParams:       params,
		allowedStatuses: []int{http.StatusBadRequest},
	})
	if err != nil {
		return nil, err
	}
	if status == http.StatusBadRequest {
		return nil, nil
	}

	user := &User{
		ID:    elementText(doc.Root(), "primary_id"),
		Email: elementText(doc.Root(), "contact_info/email/email_address"),
		Group: elementText(doc.Root(), "user_group"),
	}
	first := elementText(doc.Root(), "first_name")
	last := elementText(doc.Root(), "last_name")
	switch {
	case first != "" && last != "":
		user.Name = first + " " + last
	case last != "":
		user.Name = last
	default:
		user.Name = first
	}

	// The group code is stable for the life of the process; remember
	// it so later policy checks avoid a user fetch.
	c.store.Put(cache.Key(user.ID, "group"), user.Group)

	return user, nil
}

// GetAccountBlocks returns the currently active blocks on a patron
// account. Results are memoized per patron for the life of the
// process; the API sends no invalidation signal, so staleness is
// accepted.
func (c *Client) GetAccountBlocks(ctx context.Context, patron *Patron) ([]AccountBlock, error) {
	key := cache.Key(patron.ID, "blocks")
	if cached, ok := c.store.Get(key); ok {
		if blocks, ok := cached.([]AccountBlock); ok {
			return blocks, nil
		}
	}

	path := fmt.Sprintf("/users/%s", url.PathEscape(patron.ID))
	doc, _, err := c.fetch(ctx, path, fetchOptions{})
	if err != nil {
		return nil, err
	}

	var blocks []AccountBlock
	for _, block := range doc.FindElements("//user_blocks/user_block") {
		// Expired and suspended blocks are invisible to callers.
		if elementText(block, "block_status") != "ACTIVE" {
			continue
		}

		description := elementAttr(block, "block_description", "desc")
		if description == "" {
			description = elementText(block, "block_description")
		}
		blocks = append(blocks, AccountBlock{Description: description})
	}

	c.store.Put(key, blocks)
	return blocks, nil
}

// GroupCode returns the patron's user group code, memoized per patron.
func (c *Client) GroupCode(ctx context.Context, patron *Patron) (string, error) {
	key := cache.Key(patron.ID, "group")
	if cached, ok := c.store.Get(key); ok {
		if group, ok := cached.(string); ok {
			return group, nil
		}
	}

	path := fmt.Sprintf("/users/%s", url.PathEscape(patron.ID))
	doc, _, err := c.fetch(ctx, path, fetchOptions{})
	if err != nil {
		return "", err
	}

	group := elementText(doc.Root(), "user_group")
	c.store.Put(key, group)
	return group, nil
}
