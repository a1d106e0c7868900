package loader

import (
	"courtside/cache"
	"courtside/nba"
	"courtside/utils"

	"github.com/robfig/cron/v3"
)

// RunRefreshDaemon warms the current season's cache entries at startup and
// re-fetches them on a schedule, replacing the stored entries in place. The
// render path never evicts, so without this a long-lived process would serve
// opening-night numbers in April.
func (l *Loader) RunRefreshDaemon(season string) (*cron.Cron, error) {
	l.refreshSeason(season)

	c := cron.New()
	if _, err := c.AddFunc("@every 30m", func() { l.refreshSeason(season) }); err != nil {
		return nil, utils.ErrorWithTrace(err)
	}
	c.Start()
	return c, nil
}

func (l *Loader) refreshSeason(season string) {
	l.logger.WithField("season", season).Info("refreshing season caches")
	if _, err := l.tables.Refresh(cache.Key("leaguedashplayerstats", season), func() (nba.ResultSet, error) {
		return l.client.LeagueDashPlayerStats(season)
	}); err != nil {
		l.logger.WithError(err).Warn("player stats refresh failed, keeping cached rows")
	}
	if _, err := l.tables.Refresh(cache.Key("leaguedashteamstats", season), func() (nba.ResultSet, error) {
		return l.client.LeagueDashTeamStats(season)
	}); err != nil {
		l.logger.WithError(err).Warn("team stats refresh failed, keeping cached rows")
	}
	if _, err := l.players.Refresh(cache.Key("commonallplayers", season), func() ([]nba.CommonAllPlayer, error) {
		return l.client.CommonAllPlayers(season)
	}); err != nil {
		l.logger.WithError(err).Warn("player reference refresh failed, keeping cached list")
	}
}
