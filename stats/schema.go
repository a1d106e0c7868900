// Package stats is the normalization and filtering core: it shapes the raw,
// API-version-dependent result sets from stats.nba.com into canonical rows
// and narrows them with independently-applied filter predicates.
package stats

// PlayerSeasonRow is the canonical per-player, per-season shape. After
// normalization every field is present: missing upstream values have been
// substituted with the documented defaults, never left absent.
type PlayerSeasonRow struct {
	PlayerID    int
	PlayerName  string
	Team        string
	Position    string
	Age         int
	GamesPlayed int
	Points      float64
	Assists     float64
	Rebounds    float64
	Steals      float64
	Blocks      float64
}

// TeamSeasonRow is the canonical per-team, per-season shape.
type TeamSeasonRow struct {
	TeamID      int
	TeamName    string
	Team        string
	GamesPlayed int
	Wins        int
	Losses      int
	WinPct      float64
	Points      float64
	Rebounds    float64
	Assists     float64
	PlusMinus   float64
}

// TeamGameRow is one game from a team's season game log.
type TeamGameRow struct {
	GameID   string
	GameDate string
	Matchup  string
	WinLoss  string
	Points   float64
	Rebounds float64
	Assists  float64
}

// Alias tables map every known source header to its canonical field. Source
// columns with no entry here are dropped; canonical fields with no matching
// header are filled with defaults. leaguedashplayerstats and the career
// endpoint disagree on several names (PLAYER_AGE vs AGE, PERSON_ID vs
// PLAYER_ID), which is the whole reason this table exists.
var playerAliases = map[string][]string{
	"player_id":   {"PLAYER_ID", "PERSON_ID"},
	"player_name": {"PLAYER_NAME", "DISPLAY_FIRST_LAST"},
	"team":        {"TEAM_ABBREVIATION", "TEAM_ABBREV"},
	"position":    {"POSITION", "PLAYER_POSITION"},
	"age":         {"AGE", "PLAYER_AGE"},
	"games":       {"GP", "GAMES_PLAYED"},
	"points":      {"PTS"},
	"assists":     {"AST"},
	"rebounds":    {"REB"},
	"steals":      {"STL"},
	"blocks":      {"BLK"},
}

var teamAliases = map[string][]string{
	"team_id":    {"TEAM_ID"},
	"team_name":  {"TEAM_NAME"},
	"team":       {"TEAM_ABBREVIATION", "TEAM_ABBREV"},
	"games":      {"GP", "GAMES_PLAYED"},
	"wins":       {"W", "WINS"},
	"losses":     {"L", "LOSSES"},
	"win_pct":    {"W_PCT", "WIN_PCT"},
	"points":     {"PTS"},
	"rebounds":   {"REB"},
	"assists":    {"AST"},
	"plus_minus": {"PLUS_MINUS"},
}

var gameAliases = map[string][]string{
	"game_id":   {"Game_ID", "GAME_ID"},
	"game_date": {"GAME_DATE"},
	"matchup":   {"MATCHUP"},
	"win_loss":  {"WL"},
	"points":    {"PTS"},
	"rebounds":  {"REB"},
	"assists":   {"AST"},
}
