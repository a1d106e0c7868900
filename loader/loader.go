// Package loader drives the pipeline: memoized fetches from stats.nba.com,
// normalization with the static reference join, and the per-player batch
// path the career endpoint forces on us.
package loader

import (
	"context"
	"fmt"
	"strconv"

	"courtside/cache"
	"courtside/config"
	"courtside/nba"
	"courtside/stats"
	"courtside/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// StatsClient is what the loader needs from the nba package. Narrowed to an
// interface so tests can count provider invocations.
type StatsClient interface {
	CommonAllPlayers(season string) ([]nba.CommonAllPlayer, error)
	LeagueDashPlayerStats(season string) (nba.ResultSet, error)
	LeagueDashTeamStats(season string) (nba.ResultSet, error)
	PlayerCareerStats(playerID int) (nba.ResultSet, error)
	TeamGameLog(teamID int, season string) (nba.ResultSet, error)
}

type Loader struct {
	client  StatsClient
	logger  *logrus.Logger
	limiter *rate.Limiter
	tables  *cache.Table[nba.ResultSet]
	players *cache.Table[[]nba.CommonAllPlayer]
}

func New(client StatsClient, logger *logrus.Logger) *Loader {
	return &Loader{
		client: client,
		logger: logger,
		// Burst 1 makes this a fixed minimum delay between successive
		// calls, not a token bucket.
		limiter: rate.NewLimiter(rate.Every(config.FetchDelay), 1),
		tables:  cache.New[nba.ResultSet](),
		players: cache.New[[]nba.CommonAllPlayer](),
	}
}

// Reference returns the static player list for a season. A fetch failure
// degrades the position join rather than failing the page, so the error is
// logged and a nil reference returned.
func (l *Loader) Reference(season string) *stats.Reference {
	players, err := l.players.Do(cache.Key("commonallplayers", season), func() ([]nba.CommonAllPlayer, error) {
		return l.client.CommonAllPlayers(season)
	})
	if err != nil {
		l.logger.WithError(err).WithField("season", season).Warn("reference player list unavailable")
		return nil
	}
	return stats.NewReference(players)
}

// PlayerSeasons loads, normalizes, and returns every player's per-game
// averages for a season. A season the league has not played yet comes back
// from upstream as an empty result set and flows through as an empty,
// displayable row-set.
func (l *Loader) PlayerSeasons(season string) stats.Result[stats.PlayerSeasonRow] {
	if utils.IsInvalidSeason(season) {
		return stats.Failed[stats.PlayerSeasonRow](fmt.Sprintf("invalid season provided: %s", season))
	}
	rs, err := l.tables.Do(cache.Key("leaguedashplayerstats", season), func() (nba.ResultSet, error) {
		return l.client.LeagueDashPlayerStats(season)
	})
	if err != nil {
		l.logger.WithError(err).WithField("season", season).Error("player stats fetch failed, trying the per-player career path")
		if res, ok := l.careerFallback(season); ok {
			return res
		}
		return stats.Failed[stats.PlayerSeasonRow](fmt.Sprintf("could not load player stats for %s, please try again later", season))
	}
	rows, warnings := stats.NormalizePlayerSeasons(rs, l.Reference(season))
	for _, w := range warnings {
		l.logger.WithField("season", season).Warn(w)
	}
	return stats.Ok(rows, warnings)
}

// TeamSeasons loads and normalizes every team's season row.
func (l *Loader) TeamSeasons(season string) stats.Result[stats.TeamSeasonRow] {
	if utils.IsInvalidSeason(season) {
		return stats.Failed[stats.TeamSeasonRow](fmt.Sprintf("invalid season provided: %s", season))
	}
	rs, err := l.tables.Do(cache.Key("leaguedashteamstats", season), func() (nba.ResultSet, error) {
		return l.client.LeagueDashTeamStats(season)
	})
	if err != nil {
		l.logger.WithError(err).WithField("season", season).Error("team stats fetch failed")
		return stats.Failed[stats.TeamSeasonRow](fmt.Sprintf("could not load team stats for %s, please try again later", season))
	}
	rows, warnings := stats.NormalizeTeamSeasons(rs)
	for _, w := range warnings {
		l.logger.WithField("season", season).Warn(w)
	}
	return stats.Ok(rows, warnings)
}

// TeamGames loads one team's game log for a season.
func (l *Loader) TeamGames(teamID int, season string) stats.Result[stats.TeamGameRow] {
	if utils.IsInvalidSeason(season) {
		return stats.Failed[stats.TeamGameRow](fmt.Sprintf("invalid season provided: %s", season))
	}
	rs, err := l.tables.Do(cache.Key("teamgamelog", strconv.Itoa(teamID), season), func() (nba.ResultSet, error) {
		return l.client.TeamGameLog(teamID, season)
	})
	if err != nil {
		l.logger.WithError(err).WithFields(logrus.Fields{"team_id": teamID, "season": season}).Error("team game log fetch failed")
		return stats.Failed[stats.TeamGameRow](fmt.Sprintf("could not load the game log for team %d in %s", teamID, season))
	}
	rows, warnings := stats.NormalizeTeamGames(rs)
	for _, w := range warnings {
		l.logger.WithField("season", season).Warn(w)
	}
	return stats.Ok(rows, warnings)
}

// PlayerCareerSeasons is the one-call-per-player batch path: it walks the
// career endpoint for each id, paced by the limiter, and extracts the target
// season's row. A failing player is skipped with a warning; the batch always
// runs to the end of the list. There is no mid-batch abort.
func (l *Loader) PlayerCareerSeasons(season string, playerIDs []int) stats.Result[stats.PlayerSeasonRow] {
	if utils.IsInvalidSeason(season) {
		return stats.Failed[stats.PlayerSeasonRow](fmt.Sprintf("invalid season provided: %s", season))
	}
	ref := l.Reference(season)
	rows := []stats.PlayerSeasonRow{}
	warnings := []string{}

	for i, id := range playerIDs {
		rs, err := l.tables.Do(cache.Key("playercareerstats", strconv.Itoa(id)), func() (nba.ResultSet, error) {
			// Pace inside the fetch so cache hits never wait.
			if err := l.limiter.Wait(context.Background()); err != nil {
				return nba.ResultSet{}, utils.ErrorWithTrace(err)
			}
			return l.client.PlayerCareerStats(id)
		})
		if err != nil {
			w := fmt.Sprintf("could not fetch career stats for player %d, skipping", id)
			l.logger.WithError(err).Warn(w)
			warnings = append(warnings, w)
			continue
		}
		seasonRows, warns := stats.NormalizePlayerSeasons(stats.SeasonRows(rs, season), ref)
		warnings = append(warnings, warns...)
		rows = append(rows, seasonRows...)

		if (i+1)%25 == 0 {
			l.logger.WithFields(logrus.Fields{"done": i + 1, "total": len(playerIDs)}).Info("career batch progress")
		}
	}
	return stats.Ok(rows, warnings)
}

// careerFallback rebuilds a season's rows one player at a time when the
// single-call endpoint is down, walking the career endpoint for every active
// player on the reference list. Slow, but it is how the dashboard stays up
// through partial outages. Not usable when the reference list itself is
// unavailable or empty.
func (l *Loader) careerFallback(season string) (stats.Result[stats.PlayerSeasonRow], bool) {
	players, err := l.players.Do(cache.Key("commonallplayers", season), func() ([]nba.CommonAllPlayer, error) {
		return l.client.CommonAllPlayers(season)
	})
	if err != nil {
		l.logger.WithError(err).WithField("season", season).Error("career fallback needs the reference list")
		return stats.Result[stats.PlayerSeasonRow]{}, false
	}
	ids := make([]int, 0, len(players))
	for _, p := range players {
		if p.PersonID != nil && p.RosterStatus != nil && *p.RosterStatus == 1 {
			ids = append(ids, int(*p.PersonID))
		}
	}
	if len(ids) == 0 {
		return stats.Result[stats.PlayerSeasonRow]{}, false
	}
	l.logger.WithFields(logrus.Fields{"season": season, "players": len(ids)}).Info("loading season stats player by player")
	res := l.PlayerCareerSeasons(season, ids)
	res.Warnings = append(res.Warnings, "season stats were rebuilt player by player, this load took longer than usual")
	return res, true
}
