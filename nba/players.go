package nba

import (
	"fmt"
	"net/url"

	"courtside/utils"
)

type CommonAllPlayer struct {
	PersonID         *float64
	DisplayLastFirst *string
	DisplayFirstLast *string
	RosterStatus     *float64
	FromYear         *string
	ToYear           *string
	PlayerCode       *string
	PlayerSlug       *string
	TeamID           *float64
	TeamCity         *string
	TeamName         *string
	TeamAbbreviation *string
	Position         *string
}

// CommonAllPlayers is the static reference list: every known player with
// display name, current team, and position where the league publishes one.
func (c *Client) CommonAllPlayers(season string) ([]CommonAllPlayer, error) {
	if utils.IsInvalidSeason(season) {
		return nil, utils.ErrorWithTrace(fmt.Errorf("invalid season provided: %s", season))
	}
	params := url.Values{}
	params.Set("LeagueID", "00")
	params.Set("Season", season)
	params.Set("IsOnlyCurrentSeason", "0")
	body, err := c.get("commonallplayers", params)
	if err != nil {
		return nil, err
	}

	rs, err := decodeFirstResultSet(body)
	if err != nil {
		return nil, err
	}

	// Header names are stable even when column order is not.
	idx := map[string]int{}
	for i, h := range rs.Headers {
		idx[h] = i
	}
	cell := func(row []interface{}, header string) any {
		i, ok := idx[header]
		if !ok || i >= len(row) {
			return nil
		}
		return row[i]
	}

	players := make([]CommonAllPlayer, len(rs.RowSet))
	for i, raw := range rs.RowSet {
		players[i] = CommonAllPlayer{
			PersonID:         maybe[float64](cell(raw, "PERSON_ID")),
			DisplayLastFirst: maybe[string](cell(raw, "DISPLAY_LAST_COMMA_FIRST")),
			DisplayFirstLast: maybe[string](cell(raw, "DISPLAY_FIRST_LAST")),
			RosterStatus:     maybe[float64](cell(raw, "ROSTERSTATUS")),
			FromYear:         maybe[string](cell(raw, "FROM_YEAR")),
			ToYear:           maybe[string](cell(raw, "TO_YEAR")),
			PlayerCode:       maybe[string](cell(raw, "PLAYERCODE")),
			PlayerSlug:       maybe[string](cell(raw, "PLAYER_SLUG")),
			TeamID:           maybe[float64](cell(raw, "TEAM_ID")),
			TeamCity:         maybe[string](cell(raw, "TEAM_CITY")),
			TeamName:         maybe[string](cell(raw, "TEAM_NAME")),
			TeamAbbreviation: maybe[string](cell(raw, "TEAM_ABBREVIATION")),
			Position:         maybe[string](cell(raw, "POSITION")),
		}
	}
	return players, nil
}
