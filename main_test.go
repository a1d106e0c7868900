package main

import (
	"net/url"
	"testing"

	"courtside/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadQueryRoundTrip(t *testing.T) {
	spec := stats.FilterSpec{
		Teams:        []string{"NYK", "DEN"},
		Positions:    []string{"G"},
		AgeMin:       21,
		AgeMax:       30,
		StatField:    "Assists",
		StatMin:      4.5,
		StatMax:      9,
		HasStatRange: true,
	}

	form, err := url.ParseQuery(downloadQuery("2023-24", spec))
	require.NoError(t, err)
	assert.Equal(t, "2023-24", form.Get("season"))

	got := parseSpec(form, RangeBounds{Min: 18, Max: 40})
	assert.Equal(t, spec, got, "the CSV link must reproduce the filters shown on screen")
}

func TestDownloadQueryWithoutStatRange(t *testing.T) {
	spec := stats.FilterSpec{AgeMin: 18, AgeMax: 40, StatField: "Points"}

	form, err := url.ParseQuery(downloadQuery("2023-24", spec))
	require.NoError(t, err)

	got := parseSpec(form, RangeBounds{Min: 18, Max: 40})
	assert.False(t, got.HasStatRange, "no stat range in the link means the export takes the full observed range")
	assert.Equal(t, "Points", got.StatField)
}

func TestParseSpecSetsStatRangeOnlyWhenPosted(t *testing.T) {
	age := RangeBounds{Min: 18, Max: 40}

	got := parseSpec(url.Values{"stat-min": {"0"}, "stat-max": {"0"}}, age)
	assert.True(t, got.HasStatRange, "a posted (0, 0) range is a real range, not an unset control")
	assert.Equal(t, 0.0, got.StatMin)
	assert.Equal(t, 0.0, got.StatMax)

	got = parseSpec(url.Values{}, age)
	assert.False(t, got.HasStatRange)
}
