package stats

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"courtside/config"
	"courtside/nba"
)

// Reference carries the static player attributes the season endpoints leave
// out. Normalization does a left lookup join on player id against it;
// unmatched ids fall back to defaults, never an error.
type Reference struct {
	Names     map[int]string
	Positions map[int]string
}

func NewReference(players []nba.CommonAllPlayer) *Reference {
	ref := &Reference{
		Names:     map[int]string{},
		Positions: map[int]string{},
	}
	for _, p := range players {
		if p.PersonID == nil {
			continue
		}
		id := int(*p.PersonID)
		if p.DisplayFirstLast != nil {
			ref.Names[id] = *p.DisplayFirstLast
		}
		if p.Position != nil && *p.Position != "" {
			ref.Positions[id] = *p.Position
		}
	}
	return ref
}

// columnIndex resolves canonical field names to rowSet positions for one
// response. A canonical field whose aliases all miss is simply absent from
// the map; lookups on it default.
func columnIndex(headers []string, aliases map[string][]string) map[string]int {
	byHeader := map[string]int{}
	for i, h := range headers {
		byHeader[strings.ToUpper(h)] = i
	}
	idx := map[string]int{}
	for field, names := range aliases {
		for _, name := range names {
			if i, ok := byHeader[strings.ToUpper(name)]; ok {
				idx[field] = i
				break
			}
		}
	}
	return idx
}

type row struct {
	cells []interface{}
	idx   map[string]int
}

func (r row) cell(field string) interface{} {
	i, ok := r.idx[field]
	if !ok || i >= len(r.cells) {
		return nil
	}
	return r.cells[i]
}

// asFloat coerces a JSON cell to float64. Coercion failure is not an error,
// only a substitution.
func asFloat(v interface{}, def float64) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return def
		}
		return f
	case int:
		return float64(x)
	default:
		return def
	}
}

func asInt(v interface{}, def int) int {
	switch x := v.(type) {
	case float64:
		return int(x)
	case string:
		i, err := strconv.Atoi(x)
		if err != nil {
			return def
		}
		return i
	case int:
		return x
	default:
		return def
	}
}

func asString(v interface{}, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

// NormalizePlayerSeasons maps a raw result set onto []PlayerSeasonRow. Rows
// with no usable player id are skipped with a recorded warning; the batch
// never aborts because of one bad row. An empty source yields an empty
// row-set and no warnings. Ages that fail to parse are filled with the
// median of the ages observed in this batch, or 25 if none were observed.
func NormalizePlayerSeasons(rs nba.ResultSet, ref *Reference) ([]PlayerSeasonRow, []string) {
	idx := columnIndex(rs.Headers, playerAliases)
	rows := make([]PlayerSeasonRow, 0, len(rs.RowSet))
	warnings := []string{}
	observedAges := []int{}
	missingAge := []int{}

	for i, raw := range rs.RowSet {
		r := row{cells: raw, idx: idx}
		id := asInt(r.cell("player_id"), -1)
		if id < 0 {
			warnings = append(warnings, fmt.Sprintf("row %d: missing player id, skipping", i))
			continue
		}
		name := asString(r.cell("player_name"), "")
		if name == "" && ref != nil {
			name = ref.Names[id]
		}
		if name == "" {
			warnings = append(warnings, fmt.Sprintf("row %d: no name for player %d, skipping", i, id))
			continue
		}
		position := asString(r.cell("position"), "")
		if position == "" && ref != nil {
			position = ref.Positions[id]
		}
		if position == "" {
			position = config.DefaultPosition
		}

		out := PlayerSeasonRow{
			PlayerID:    id,
			PlayerName:  name,
			Team:        asString(r.cell("team"), config.DefaultTeam),
			Position:    position,
			GamesPlayed: asInt(r.cell("games"), 0),
			Points:      asFloat(r.cell("points"), 0),
			Assists:     asFloat(r.cell("assists"), 0),
			Rebounds:    asFloat(r.cell("rebounds"), 0),
			Steals:      asFloat(r.cell("steals"), 0),
			Blocks:      asFloat(r.cell("blocks"), 0),
		}
		if age := asInt(r.cell("age"), 0); age > 0 {
			out.Age = age
			observedAges = append(observedAges, age)
		} else {
			missingAge = append(missingAge, len(rows))
		}
		rows = append(rows, out)
	}

	if len(missingAge) > 0 {
		fill := medianAge(observedAges)
		for _, i := range missingAge {
			rows[i].Age = fill
		}
	}
	return rows, warnings
}

func medianAge(ages []int) int {
	if len(ages) == 0 {
		return config.DefaultAge
	}
	sorted := append([]int{}, ages...)
	sort.Ints(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// NormalizeTeamSeasons maps a raw result set onto []TeamSeasonRow.
func NormalizeTeamSeasons(rs nba.ResultSet) ([]TeamSeasonRow, []string) {
	idx := columnIndex(rs.Headers, teamAliases)
	rows := make([]TeamSeasonRow, 0, len(rs.RowSet))
	warnings := []string{}

	for i, raw := range rs.RowSet {
		r := row{cells: raw, idx: idx}
		id := asInt(r.cell("team_id"), -1)
		if id < 0 {
			warnings = append(warnings, fmt.Sprintf("row %d: missing team id, skipping", i))
			continue
		}
		rows = append(rows, TeamSeasonRow{
			TeamID:      id,
			TeamName:    asString(r.cell("team_name"), config.DefaultTeam),
			Team:        asString(r.cell("team"), config.DefaultTeam),
			GamesPlayed: asInt(r.cell("games"), 0),
			Wins:        asInt(r.cell("wins"), 0),
			Losses:      asInt(r.cell("losses"), 0),
			WinPct:      asFloat(r.cell("win_pct"), 0),
			Points:      asFloat(r.cell("points"), 0),
			Rebounds:    asFloat(r.cell("rebounds"), 0),
			Assists:     asFloat(r.cell("assists"), 0),
			PlusMinus:   asFloat(r.cell("plus_minus"), 0),
		})
	}
	return rows, warnings
}

// NormalizeTeamGames maps a team game log result set onto []TeamGameRow.
func NormalizeTeamGames(rs nba.ResultSet) ([]TeamGameRow, []string) {
	idx := columnIndex(rs.Headers, gameAliases)
	rows := make([]TeamGameRow, 0, len(rs.RowSet))
	warnings := []string{}

	for i, raw := range rs.RowSet {
		r := row{cells: raw, idx: idx}
		id := asString(r.cell("game_id"), "")
		if id == "" {
			warnings = append(warnings, fmt.Sprintf("row %d: missing game id, skipping", i))
			continue
		}
		rows = append(rows, TeamGameRow{
			GameID:   id,
			GameDate: asString(r.cell("game_date"), ""),
			Matchup:  asString(r.cell("matchup"), ""),
			WinLoss:  asString(r.cell("win_loss"), ""),
			Points:   asFloat(r.cell("points"), 0),
			Rebounds: asFloat(r.cell("rebounds"), 0),
			Assists:  asFloat(r.cell("assists"), 0),
		})
	}
	return rows, warnings
}

// SeasonRows narrows a career result set down to the rows for one season.
// The career endpoint has one row per (season, team) pair; a player traded
// mid-season keeps the "TOT" row when one exists.
func SeasonRows(rs nba.ResultSet, season string) nba.ResultSet {
	seasonIdx := -1
	teamIdx := -1
	for i, h := range rs.Headers {
		switch strings.ToUpper(h) {
		case "SEASON_ID":
			seasonIdx = i
		case "TEAM_ABBREVIATION":
			teamIdx = i
		}
	}
	if seasonIdx < 0 {
		return nba.ResultSet{Headers: rs.Headers}
	}

	matched := [][]interface{}{}
	for _, raw := range rs.RowSet {
		if seasonIdx >= len(raw) {
			continue
		}
		if s, ok := raw[seasonIdx].(string); ok && s == season {
			matched = append(matched, raw)
		}
	}
	if len(matched) > 1 && teamIdx >= 0 {
		for _, raw := range matched {
			if teamIdx < len(raw) {
				if t, ok := raw[teamIdx].(string); ok && t == "TOT" {
					matched = [][]interface{}{raw}
					break
				}
			}
		}
	}
	return nba.ResultSet{Name: rs.Name, Headers: rs.Headers, RowSet: matched}
}
