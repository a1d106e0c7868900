package stats_test

import (
	"testing"

	"courtside/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []stats.PlayerSeasonRow {
	return []stats.PlayerSeasonRow{
		{PlayerID: 1, PlayerName: "Jalen Brunson", Team: "NYK", Position: "G", Age: 27, GamesPlayed: 77, Points: 28.7, Assists: 6.7, Rebounds: 3.6, Steals: 0.9, Blocks: 0.2},
		{PlayerID: 2, PlayerName: "Nikola Jokic", Team: "DEN", Position: "C", Age: 29, GamesPlayed: 79, Points: 26.4, Assists: 9.0, Rebounds: 12.4, Steals: 1.4, Blocks: 0.9},
		{PlayerID: 3, PlayerName: "Anthony Edwards", Team: "MIN", Position: "G", Age: 22, GamesPlayed: 79, Points: 25.9, Assists: 5.1, Rebounds: 5.4, Steals: 1.3, Blocks: 0.5},
		{PlayerID: 4, PlayerName: "Victor Wembanyama", Team: "SAS", Position: "C", Age: 20, GamesPlayed: 71, Points: 21.4, Assists: 3.9, Rebounds: 10.6, Steals: 1.2, Blocks: 3.6},
	}
}

func TestFilterEmptySpecIsIdentity(t *testing.T) {
	rows := sampleRows()
	got := stats.Filter(rows, stats.FilterSpec{})
	assert.Equal(t, rows, got)
}

func TestFilterEmptySetExcludesNothing(t *testing.T) {
	// team_set={}, position_set={"G"}, age_range=(20,30): a guard aged 27
	// passes regardless of team.
	spec := stats.FilterSpec{
		Teams:     []string{},
		Positions: []string{"G"},
		AgeMin:    20,
		AgeMax:    30,
	}
	got := stats.Filter(sampleRows(), spec)
	require.Len(t, got, 2)
	assert.Equal(t, "Jalen Brunson", got[0].PlayerName)
	assert.Equal(t, "Anthony Edwards", got[1].PlayerName)
}

func TestFilterConjunction(t *testing.T) {
	spec := stats.FilterSpec{
		Teams:     []string{"NYK", "DEN", "MIN"},
		Positions: []string{"G"},
		AgeMin:    25,
		AgeMax:    30,
	}
	got := stats.Filter(sampleRows(), spec)
	require.Len(t, got, 1)
	assert.Equal(t, "Jalen Brunson", got[0].PlayerName)
}

func TestFilterFullRangeReturnsAllInOrder(t *testing.T) {
	rows := sampleRows()
	min, max, degenerate := stats.Bounds(rows, "Points")
	require.False(t, degenerate)

	spec := stats.FilterSpec{StatField: "Points", StatMin: min, StatMax: max, HasStatRange: true}
	got := stats.Filter(rows, spec)
	assert.Equal(t, rows, got, "the full observed range must return the input unchanged")
}

func TestFilterRangeInclusive(t *testing.T) {
	spec := stats.FilterSpec{StatField: "Points", StatMin: 21.4, StatMax: 28.7, HasStatRange: true}
	got := stats.Filter(sampleRows(), spec)
	require.Len(t, got, 4, "range endpoints are inclusive on both ends")
}

func TestFilterIdempotent(t *testing.T) {
	spec := stats.FilterSpec{
		Positions:    []string{"C"},
		StatField:    "Rebounds",
		StatMin:      10,
		StatMax:      13,
		HasStatRange: true,
	}
	once := stats.Filter(sampleRows(), spec)
	twice := stats.Filter(once, spec)
	assert.Equal(t, once, twice)
}

func TestFilterUnknownStatFieldIsNoOp(t *testing.T) {
	spec := stats.FilterSpec{StatField: "True Shooting", StatMin: 99, StatMax: 100, HasStatRange: true}
	got := stats.Filter(sampleRows(), spec)
	assert.Len(t, got, 4, "a predicate on a field the rows do not carry is a no-op")
}

func TestFilterZeroStatRange(t *testing.T) {
	rows := append(sampleRows(), stats.PlayerSeasonRow{
		PlayerID: 5, PlayerName: "Deep Bench", Team: "NYK", Position: "G", Age: 24,
	})

	spec := stats.FilterSpec{StatField: "Points", StatMin: 0, StatMax: 0, HasStatRange: true}
	got := stats.Filter(rows, spec)
	require.Len(t, got, 1, "(0, 0) is a real range, not an unset sentinel")
	assert.Equal(t, "Deep Bench", got[0].PlayerName)
}

func TestFilterAgeRange(t *testing.T) {
	spec := stats.FilterSpec{AgeMin: 20, AgeMax: 22}
	got := stats.Filter(sampleRows(), spec)
	require.Len(t, got, 2)
	assert.Equal(t, "Anthony Edwards", got[0].PlayerName)
	assert.Equal(t, "Victor Wembanyama", got[1].PlayerName)
}

func TestBounds(t *testing.T) {
	rows := sampleRows()

	min, max, degenerate := stats.Bounds(rows, "Age")
	assert.Equal(t, 20.0, min)
	assert.Equal(t, 29.0, max)
	assert.False(t, degenerate)

	same := []stats.PlayerSeasonRow{{Age: 25}, {Age: 25}}
	min, max, degenerate = stats.Bounds(same, "Age")
	assert.Equal(t, 25.0, min)
	assert.Equal(t, 25.0, max)
	assert.True(t, degenerate, "min == max must be reported so the caller can widen the control")

	_, _, degenerate = stats.Bounds(nil, "Points")
	assert.True(t, degenerate, "an empty row-set is degenerate")
}
