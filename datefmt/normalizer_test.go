package datefmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRecognizedShapes(t *testing.T) {
	n := New()

	// Every shape below encodes July 25, 2012.
	tests := []struct {
		name  string
		input string
	}{
		{"compact", "20120725"},
		{"day month-name year", "25/Jul/2012"},
		{"day month year unpadded", "25/7/2012"},
		{"two digit year", "25/07/12"},
		{"iso date", "2012-07-25"},
		{"iso timestamp", "2012-07-25T10:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.Normalize(tt.input, false)
			require.NoError(t, err)
			assert.Equal(t, "07/25/2012", got)
		})
	}
}

func TestNormalizeWithTime(t *testing.T) {
	n := New()

	got, err := n.Normalize("2012-07-25T10:30:00Z", true)
	require.NoError(t, err)
	assert.Equal(t, "07/25/2012 10:30", got)

	// Without the flag the time portion is dropped.
	got, err = n.Normalize("2012-07-25T10:30:00Z", false)
	require.NoError(t, err)
	assert.Equal(t, "07/25/2012", got)

	// Date-only shapes ignore the flag entirely.
	got, err = n.Normalize("2012-07-25", true)
	require.NoError(t, err)
	assert.Equal(t, "07/25/2012", got)
}

func TestNormalizeStripsBareZoneMarker(t *testing.T) {
	n := New()

	got, err := n.Normalize("2012-07-13Z", false)
	require.NoError(t, err)
	assert.Equal(t, "07/13/2012", got)
}

func TestNormalizeEmpty(t *testing.T) {
	n := New()

	got, err := n.Normalize("", false)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestNormalizeInvalid(t *testing.T) {
	n := New()

	tests := []string{
		"2012/25/07",
		"not a date",
		"25-07-2012",
	}

	for _, input := range tests {
		_, err := n.Normalize(input, false)
		require.Error(t, err)

		var invalid *InvalidDateError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, input, invalid.Value)
	}
}

func TestNormalizeCustomLayouts(t *testing.T) {
	n := NewWithLayouts("2006-01-02", "2006-01-02 15:04")

	got, err := n.Normalize("25/Jul/2012", false)
	require.NoError(t, err)
	assert.Equal(t, "2012-07-25", got)
}

func TestParse(t *testing.T) {
	n := New()

	parsed, err := n.Parse("2013-11-12T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 2013, parsed.Year())
	assert.Equal(t, 12, parsed.Day())

	_, err = n.Parse("garbage")
	require.Error(t, err)
}
