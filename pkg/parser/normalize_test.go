package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	testCases := []struct {
		display  string
		expected float64
	}{
		{display: "1:02.50", expected: 62.50},
		{display: "23.14", expected: 23.14},
		{display: " 15:01.23 ", expected: 901.23},
		{display: "0:59.9", expected: 59.9},
		{display: "47", expected: 47},
	}

	for _, test := range testCases {
		seconds, err := ParseTime(test.display)
		require.NoError(t, err, test.display)
		require.NotNil(t, seconds, test.display)
		assert.InDelta(t, test.expected, *seconds, 1e-9, test.display)
	}
}

func TestParseTimeNoTime(t *testing.T) {
	for _, code := range []string{"DNS", "DQ", "NS", "SCR", " DQ "} {
		seconds, err := ParseTime(code)
		require.NoError(t, err, code)
		assert.Nil(t, seconds, code)
	}
}

func TestParseTimeMalformed(t *testing.T) {
	for _, display := range []string{"", "DQ1", "1:xx", "12.3.4", "--", "x:12.0", "1:02:03"} {
		_, err := ParseTime(display)
		assert.Error(t, err, display)
	}
}

func TestSplitHometown(t *testing.T) {
	testCases := []struct {
		hometown string
		city     string
		state    string
	}{
		{hometown: "Austin, TX", city: "Austin", state: "TX"},
		{hometown: "Unknown City, 123", city: "Unknown City", state: NoState},
		{hometown: "St. Petersburg, Florida, USA", city: "St. Petersburg Florida", state: "USA"},
		{hometown: "Rio de Janeiro, Rio de Janeiro", city: "Rio de Janeiro", state: NoState},
		{hometown: "Austin", city: "", state: "Austin"},
		{hometown: "", city: "", state: NoState},
		{hometown: "Gainesville,  FL ", city: "Gainesville", state: "FL"},
	}

	for _, test := range testCases {
		city, state := SplitHometown(test.hometown)
		assert.Equal(t, test.city, city, test.hometown)
		assert.Equal(t, test.state, state, test.hometown)
	}
}

func TestCleanName(t *testing.T) {
	testCases := map[string]string{
		"Smith, John":         "John Smith",
		"John Smith":          "John Smith",
		"Madonna":             "Madonna",
		"  Smith ,  John  ":   "John Smith",
		"Smith, John, Jr":     "Smith John Jr",
		"Smith,":              "Smith",
		"John    Paul  Jones": "John Paul Jones",
		"":                    "",
		"   ":                 "",
	}

	for input, expected := range testCases {
		assert.Equal(t, expected, CleanName(input), input)
	}
}

func TestHrefID(t *testing.T) {
	assert.Equal(t, "2361690", HrefID("/swimmer/2361690"))
	assert.Equal(t, "117", HrefID("/team/117/"))
	assert.Equal(t, "117", HrefID("https://www.swimcloud.com/team/117"))
	assert.Equal(t, "abc", HrefID("abc"))
}
