package stats

import (
	"encoding/csv"
	"io"
	"strconv"

	"courtside/utils"
)

var playerCSVHeader = []string{"Player", "Player_ID", "Team", "Position", "Age", "Games Played", "Points", "Assists", "Rebounds", "Steals", "Blocks"}

// WritePlayerCSV serializes rows as a standard comma-separated file with a
// header row, suitable for download of the currently filtered row-set.
func WritePlayerCSV(w io.Writer, rows []PlayerSeasonRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(playerCSVHeader); err != nil {
		return utils.ErrorWithTrace(err)
	}
	for _, r := range rows {
		record := []string{
			r.PlayerName,
			strconv.Itoa(r.PlayerID),
			r.Team,
			r.Position,
			strconv.Itoa(r.Age),
			strconv.Itoa(r.GamesPlayed),
			formatStat(r.Points),
			formatStat(r.Assists),
			formatStat(r.Rebounds),
			formatStat(r.Steals),
			formatStat(r.Blocks),
		}
		if err := cw.Write(record); err != nil {
			return utils.ErrorWithTrace(err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return utils.ErrorWithTrace(err)
	}
	return nil
}

var teamCSVHeader = []string{"Team", "Team_ID", "Abbreviation", "Games Played", "Wins", "Losses", "Win Pct", "Points", "Rebounds", "Assists", "Plus Minus"}

func WriteTeamCSV(w io.Writer, rows []TeamSeasonRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(teamCSVHeader); err != nil {
		return utils.ErrorWithTrace(err)
	}
	for _, r := range rows {
		record := []string{
			r.TeamName,
			strconv.Itoa(r.TeamID),
			r.Team,
			strconv.Itoa(r.GamesPlayed),
			strconv.Itoa(r.Wins),
			strconv.Itoa(r.Losses),
			strconv.FormatFloat(r.WinPct, 'f', 3, 64),
			formatStat(r.Points),
			formatStat(r.Rebounds),
			formatStat(r.Assists),
			formatStat(r.PlusMinus),
		}
		if err := cw.Write(record); err != nil {
			return utils.ErrorWithTrace(err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return utils.ErrorWithTrace(err)
	}
	return nil
}

func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
