package alma

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// coursePageSize is the window size used when paging through the
// course list.
const coursePageSize = 100

// GetCourses returns all courses known to the ILS, keyed by course id.
// The course endpoint is paged; pages are fetched until the reported
// total is reached.
func (c *Client) GetCourses(ctx context.Context) (map[string]string, error) {
	courses := make(map[string]string)

	offset := 0
	for {
		params := url.Values{}
		params.Set("limit", strconv.Itoa(coursePageSize))
		params.Set("offset", strconv.Itoa(offset))

		doc, _, err := c.fetch(ctx, "/courses", fetchOptions{getParams: params})
		if err != nil {
			return nil, err
		}

		root := doc.FindElement("//courses")
		if root == nil {
			break
		}

		total := 0
		if attr := root.SelectAttr("total_record_count"); attr != nil {
			total, _ = strconv.Atoi(attr.Value)
		}

		page := root.SelectElements("course")
		for _, course := range page {
			id := elementText(course, "id")
			name := elementText(course, "name")
			if section := elementText(course, "section"); section != "" {
				name = fmt.Sprintf("%s (section %s)", name, section)
			}
			courses[id] = name
		}

		offset += len(page)
		if offset >= total || len(page) == 0 {
			break
		}
	}

	return courses, nil
}

// FindReserves returns the bibliographic records on the reading lists
// of one course.
func (c *Client) FindReserves(ctx context.Context, courseID string) ([]Reserve, error) {
	path := fmt.Sprintf("/courses/%s/reading-lists", url.PathEscape(courseID))

	params := url.Values{}
	params.Set("expand", "citations")

	doc, _, err := c.fetch(ctx, path, fetchOptions{getParams: params})
	if err != nil {
		return nil, err
	}

	var reserves []Reserve
	for _, citation := range doc.FindElements("//citation") {
		bibID := elementText(citation, "metadata/mms_id")
		if bibID == "" {
			continue
		}
		reserves = append(reserves, Reserve{
			BibID:    bibID,
			CourseID: courseID,
		})
	}
	return reserves, nil
}
