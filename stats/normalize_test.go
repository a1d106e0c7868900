package stats_test

import (
	"testing"

	"courtside/nba"
	"courtside/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(f float64) *float64 { return &f }
func sptr(s string) *string   { return &s }

func playerRS(headers []string, rows ...[]interface{}) nba.ResultSet {
	return nba.ResultSet{Name: "LeagueDashPlayerStats", Headers: headers, RowSet: rows}
}

func TestNormalizePlayerSeasonsDefaults(t *testing.T) {
	rs := playerRS(
		[]string{"PLAYER_ID", "PLAYER_NAME", "PTS"},
		[]interface{}{float64(1), "Jalen Brunson", float64(28.7)},
		[]interface{}{float64(2), "Josh Hart", float64(9.4)},
	)

	rows, warnings := stats.NormalizePlayerSeasons(rs, nil)
	require.Len(t, rows, 2)
	assert.Empty(t, warnings)

	for _, r := range rows {
		assert.Equal(t, "N/A", r.Team)
		assert.Equal(t, "N/A", r.Position)
		assert.Equal(t, 25, r.Age, "no observed ages, expected the fallback default")
		assert.Equal(t, 0, r.GamesPlayed)
		assert.Equal(t, 0.0, r.Assists)
		assert.Equal(t, 0.0, r.Rebounds)
		assert.Equal(t, 0.0, r.Steals)
		assert.Equal(t, 0.0, r.Blocks)
	}
	assert.Equal(t, 28.7, rows[0].Points)
}

func TestNormalizePlayerSeasonsMedianAgeFill(t *testing.T) {
	rs := playerRS(
		[]string{"PLAYER_ID", "PLAYER_NAME", "AGE"},
		[]interface{}{float64(1), "A", float64(22)},
		[]interface{}{float64(2), "B", float64(24)},
		[]interface{}{float64(3), "C", float64(26)},
		[]interface{}{float64(4), "D", nil},
	)

	rows, warnings := stats.NormalizePlayerSeasons(rs, nil)
	require.Len(t, rows, 4)
	assert.Empty(t, warnings)
	assert.Equal(t, 24, rows[3].Age, "missing age should be filled with the median of observed ages")
}

func TestNormalizePlayerSeasonsCoercion(t *testing.T) {
	rs := playerRS(
		[]string{"PLAYER_ID", "PLAYER_NAME", "PTS", "AST", "GP"},
		[]interface{}{"77", "Luka Doncic", "33.9", "garbage", "70"},
	)

	rows, _ := stats.NormalizePlayerSeasons(rs, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, 77, rows[0].PlayerID)
	assert.Equal(t, 33.9, rows[0].Points, "numeric strings should parse")
	assert.Equal(t, 0.0, rows[0].Assists, "unparseable value should substitute the default, not error")
	assert.Equal(t, 70, rows[0].GamesPlayed)
}

func TestNormalizePlayerSeasonsSkipsBadRows(t *testing.T) {
	rs := playerRS(
		[]string{"PLAYER_ID", "PLAYER_NAME", "PTS"},
		[]interface{}{float64(1), "Keeps Going", float64(10)},
		[]interface{}{nil, "No ID", float64(50)},
		[]interface{}{float64(3), nil, float64(12)},
		[]interface{}{float64(4), "Still Here", float64(8)},
	)

	rows, warnings := stats.NormalizePlayerSeasons(rs, nil)
	require.Len(t, rows, 2)
	assert.Len(t, warnings, 2)
	assert.Equal(t, "Keeps Going", rows[0].PlayerName)
	assert.Equal(t, "Still Here", rows[1].PlayerName)
}

func TestNormalizePlayerSeasonsEmptyResponse(t *testing.T) {
	rows, warnings := stats.NormalizePlayerSeasons(nba.ResultSet{}, nil)
	assert.Empty(t, rows)
	assert.Empty(t, warnings)

	filtered := stats.Filter(rows, stats.FilterSpec{Teams: []string{"NYK"}})
	assert.Empty(t, filtered, "filtering an empty row-set must yield an empty row-set")
}

func TestNormalizePlayerSeasonsReferenceJoin(t *testing.T) {
	ref := stats.NewReference([]nba.CommonAllPlayer{
		{PersonID: fptr(1), DisplayFirstLast: sptr("Mikal Bridges"), Position: sptr("F")},
		{PersonID: fptr(2), DisplayFirstLast: sptr("OG Anunoby")},
	})

	rs := playerRS(
		[]string{"PLAYER_ID", "PLAYER_NAME", "PTS"},
		[]interface{}{float64(1), "Mikal Bridges", float64(17.6)},
		[]interface{}{float64(2), "OG Anunoby", float64(14.1)},
		[]interface{}{float64(3), "Unknown Guy", float64(2.0)},
	)

	rows, _ := stats.NormalizePlayerSeasons(rs, ref)
	require.Len(t, rows, 3)
	assert.Equal(t, "F", rows[0].Position, "position should join from the reference list")
	assert.Equal(t, "N/A", rows[1].Position, "reference entry without a position defaults")
	assert.Equal(t, "N/A", rows[2].Position, "unmatched id defaults, never errors")
}

func TestNormalizePlayerSeasonsCareerHeaders(t *testing.T) {
	// The career endpoint names the same columns differently.
	rs := playerRS(
		[]string{"PERSON_ID", "DISPLAY_FIRST_LAST", "TEAM_ABBREVIATION", "PLAYER_AGE", "GP", "PTS"},
		[]interface{}{float64(203999), "Nikola Jokic", "DEN", float64(29), float64(79), float64(26.4)},
	)

	rows, warnings := stats.NormalizePlayerSeasons(rs, nil)
	require.Len(t, rows, 1)
	assert.Empty(t, warnings)
	assert.Equal(t, 203999, rows[0].PlayerID)
	assert.Equal(t, "Nikola Jokic", rows[0].PlayerName)
	assert.Equal(t, "DEN", rows[0].Team)
	assert.Equal(t, 29, rows[0].Age)
	assert.Equal(t, 79, rows[0].GamesPlayed)
	assert.Equal(t, 26.4, rows[0].Points)
}

func TestNormalizeTeamSeasons(t *testing.T) {
	rs := nba.ResultSet{
		Headers: []string{"TEAM_ID", "TEAM_NAME", "TEAM_ABBREVIATION", "GP", "W", "L", "W_PCT", "PTS", "REB", "AST", "PLUS_MINUS"},
		RowSet: [][]interface{}{
			{float64(1610612752), "New York Knicks", "NYK", float64(82), float64(51), float64(31), float64(0.622), float64(115.8), float64(42.0), float64(28.1), float64(3.3)},
			{nil, "No ID Team", "???", float64(82), float64(0), float64(0), float64(0), float64(0), float64(0), float64(0), float64(0)},
		},
	}

	rows, warnings := stats.NormalizeTeamSeasons(rs)
	require.Len(t, rows, 1)
	assert.Len(t, warnings, 1)
	assert.Equal(t, 1610612752, rows[0].TeamID)
	assert.Equal(t, "NYK", rows[0].Team)
	assert.Equal(t, 51, rows[0].Wins)
	assert.Equal(t, 0.622, rows[0].WinPct)
}

func TestSeasonRows(t *testing.T) {
	rs := playerRS(
		[]string{"PERSON_ID", "SEASON_ID", "TEAM_ABBREVIATION", "PTS"},
		[]interface{}{float64(1), "2022-23", "BKN", float64(19.6)},
		[]interface{}{float64(1), "2023-24", "BKN", float64(19.6)},
		[]interface{}{float64(1), "2023-24", "NYK", float64(17.6)},
		[]interface{}{float64(1), "2023-24", "TOT", float64(18.2)},
	)

	got := stats.SeasonRows(rs, "2023-24")
	require.Len(t, got.RowSet, 1, "a traded player's TOT row wins")
	assert.Equal(t, "TOT", got.RowSet[0][2])

	none := stats.SeasonRows(rs, "2025-26")
	assert.Empty(t, none.RowSet)
}
