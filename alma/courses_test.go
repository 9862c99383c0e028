package alma

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCoursesPagination(t *testing.T) {
	pages := map[int]string{
		0: `<courses total_record_count="3">
			<course><id>C1</id><name>Algorithms</name><section>1</section></course>
			<course><id>C2</id><name>Databases</name></course>
		</courses>`,
		2: `<courses total_record_count="3">
			<course><id>C3</id><name>Networks</name></course>
		</courses>`,
	}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		fmt.Fprint(w, pages[offset])
	})

	courses, err := client.GetCourses(context.Background())
	require.NoError(t, err)

	require.Len(t, courses, 3)
	assert.Equal(t, "Algorithms (section 1)", courses["C1"])
	assert.Equal(t, "Databases", courses["C2"])
	assert.Equal(t, "Networks", courses["C3"])
}

func TestFindReserves(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/courses/C1/reading-lists", r.URL.Path)
		assert.Equal(t, "citations", r.URL.Query().Get("expand"))
		fmt.Fprint(w, `<reading_lists>
			<reading_list>
				<citations>
					<citation><metadata><mms_id>99123</mms_id></metadata></citation>
					<citation><metadata><mms_id>99456</mms_id></metadata></citation>
					<citation><metadata/></citation>
				</citations>
			</reading_list>
		</reading_lists>`)
	})

	reserves, err := client.FindReserves(context.Background(), "C1")
	require.NoError(t, err)

	require.Len(t, reserves, 2)
	assert.Equal(t, "99123", reserves[0].BibID)
	assert.Equal(t, "C1", reserves[0].CourseID)
	assert.Equal(t, "99456", reserves[1].BibID)
}
