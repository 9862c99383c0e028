package alma

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bibsServer(t *testing.T, body string, opts ...Option) *Client {
	t.Helper()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}, opts...)
	return client
}

func TestGetStatusesPhysical(t *testing.T) {
	body := `<bibs total_record_count="2">
		<bib>
			<mms_id>991</mms_id>
			<record>
				<datafield tag="AVA"><subfield code="e">AVAILABLE</subfield><subfield code="c">Main Stacks</subfield></datafield>
				<datafield tag="AVA"><subfield code="e">unavailable</subfield><subfield code="c">Annex</subfield></datafield>
			</record>
		</bib>
		<bib>
			<mms_id>992</mms_id>
			<record>
				<datafield tag="AVA"><subfield code="e">check_holdings</subfield><subfield code="c">Reserve</subfield></datafield>
			</record>
		</bib>
	</bibs>`

	client := bibsServer(t, body, WithInventoryTypes([]string{"physical"}))

	statuses, err := client.GetStatuses(context.Background(), []string{"991", "992"})
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	first := statuses["991"]
	require.Len(t, first, 2)
	// Availability comparison is case-insensitive, field order is
	// preserved.
	assert.True(t, first[0].Availability)
	assert.Equal(t, "Main Stacks", first[0].Location)
	assert.False(t, first[1].Availability)
	assert.Equal(t, "Annex", first[1].Location)

	second := statuses["992"]
	require.Len(t, second, 1)
	assert.False(t, second[0].Availability)
}

func TestGetStatusesElectronicLinkValidation(t *testing.T) {
	body := `<bibs total_record_count="1">
		<bib>
			<mms_id>991</mms_id>
			<record>
				<datafield tag="AVE">
					<subfield code="e">available</subfield>
					<subfield code="m">Collection A</subfield>
					<subfield code="u">not-a-url</subfield>
					<subfield code="s">Full text</subfield>
				</datafield>
				<datafield tag="AVE">
					<subfield code="e">available</subfield>
					<subfield code="m">Collection B</subfield>
					<subfield code="u">https://example.org/x</subfield>
				</datafield>
			</record>
		</bib>
	</bibs>`

	client := bibsServer(t, body, WithInventoryTypes([]string{"electronic"}))

	statuses, err := client.GetStatuses(context.Background(), []string{"991"})
	require.NoError(t, err)

	entries := statuses["991"]
	require.Len(t, entries, 2)

	// A malformed access URL is dropped, not passed through.
	assert.Empty(t, entries[0].Link)
	assert.Equal(t, "Full text", entries[0].Status)
	assert.Equal(t, "https://example.org/x", entries[1].Link)
}

func TestGetStatusesDigitalWithTemplate(t *testing.T) {
	body := `<bibs total_record_count="1">
		<bib>
			<mms_id>991</mms_id>
			<record>
				<datafield tag="AVD">
					<subfield code="e">Digital Library</subfield>
					<subfield code="b">rep-42</subfield>
				</datafield>
			</record>
		</bib>
	</bibs>`

	client := bibsServer(t, body,
		WithInventoryTypes([]string{"digital"}),
		WithDigitalDeliveryURL("https://delivery.example.org/view/%%id%%"),
	)

	statuses, err := client.GetStatuses(context.Background(), []string{"991"})
	require.NoError(t, err)

	entries := statuses["991"]
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Availability)
	assert.Equal(t, "Digital Library", entries[0].Location)
	assert.Equal(t, "https://delivery.example.org/view/rep-42", entries[0].Link)
	// Digital entries never carry a call number.
	assert.Empty(t, entries[0].CallNumber)
}

func TestGetStatusesDigitalWithoutTemplate(t *testing.T) {
	body := `<bibs total_record_count="1">
		<bib>
			<mms_id>991</mms_id>
			<record>
				<datafield tag="AVD">
					<subfield code="e">Digital Library</subfield>
					<subfield code="b">rep-42</subfield>
				</datafield>
			</record>
		</bib>
	</bibs>`

	client := bibsServer(t, body, WithInventoryTypes([]string{"digital"}))

	// No template configured: the entry is still produced, just
	// without a link. This must never be an error.
	statuses, err := client.GetStatuses(context.Background(), []string{"991"})
	require.NoError(t, err)

	entries := statuses["991"]
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Availability)
	assert.Empty(t, entries[0].Link)
}

func TestGetStatusesMissingRecord(t *testing.T) {
	body := `<bibs total_record_count="1">
		<bib>
			<mms_id>991</mms_id>
		</bib>
	</bibs>`

	client := bibsServer(t, body, WithInventoryTypes([]string{"physical"}))

	statuses, err := client.GetStatuses(context.Background(), []string{"991"})
	require.NoError(t, err)

	entries, ok := statuses["991"]
	assert.True(t, ok)
	assert.Empty(t, entries)
}

func TestGetStatusesEmptyBatch(t *testing.T) {
	client := bibsServer(t, `<bibs/>`)

	statuses, err := client.GetStatuses(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, statuses)
}

func TestGetStatusesBatchedRequest(t *testing.T) {
	var mmsParam string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mmsParam = r.URL.Query().Get("mms_id")
		fmt.Fprint(w, `<bibs/>`)
	}, WithInventoryTypes([]string{"physical", "electronic"}))

	_, err := client.GetStatuses(context.Background(), []string{"991", "992", "993"})
	require.NoError(t, err)

	// One batched call for the whole id set.
	assert.Equal(t, "991,992,993", mmsParam)
}
