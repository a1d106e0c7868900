package nba

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"courtside/utils"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const defaultBaseURL = "https://stats.nba.com/stats"

// Client talks to the unofficial stats.nba.com API. Every endpoint can fail
// at any time; callers are expected to map errors to an empty result rather
// than propagate them to a page render.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *logrus.Logger
}

func NewClient(logger *logrus.Logger) *Client {
	settings := gobreaker.Settings{
		Name:    "stats.nba.com",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{"breaker": name, "from": from.String(), "to": to.String()}).Warn("circuit breaker state change")
		},
	}
	return &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

func (c *Client) initNBAReq(endpoint string, params url.Values) (*http.Request, error) {
	req, err := http.NewRequest("GET", c.baseURL+"/"+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, utils.ErrorWithTrace(err)
	}
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Referer", "https://www.nba.com/")
	req.Header.Add("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	return req, nil
}

func (c *Client) get(endpoint string, params url.Values) ([]byte, error) {
	body, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := c.initNBAReq(endpoint, params)
		if err != nil {
			return nil, err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, utils.ErrorWithTrace(err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, utils.ErrorWithTrace(fmt.Errorf("%s returned status %d", endpoint, resp.StatusCode))
		}
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, utils.ErrorWithTrace(err)
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return body.([]byte), nil
}

// ResultSet is the raw tabular shape every stats.nba.com endpoint returns:
// a header row naming columns plus rows of untyped cells. Column order is
// API-version-dependent, so consumers must resolve columns by header name.
type ResultSet struct {
	Name    string          `json:"name"`
	Headers []string        `json:"headers"`
	RowSet  [][]interface{} `json:"rowSet"`
}

func (rs ResultSet) IsEmpty() bool {
	return len(rs.RowSet) == 0
}

type resultSetsResp struct {
	ResultSets []ResultSet `json:"resultSets"`
}

func decodeFirstResultSet(body []byte) (ResultSet, error) {
	unmarshalledBody := resultSetsResp{}
	if err := json.Unmarshal(body, &unmarshalledBody); err != nil {
		return ResultSet{}, utils.ErrorWithTrace(err)
	}
	if len(unmarshalledBody.ResultSets) == 0 {
		return ResultSet{}, utils.ErrorWithTrace(fmt.Errorf("response contained no result sets"))
	}
	return unmarshalledBody.ResultSets[0], nil
}

// LeagueDashPlayerStats returns per-game averages for every player in a
// season in a single call.
func (c *Client) LeagueDashPlayerStats(season string) (ResultSet, error) {
	if utils.IsInvalidSeason(season) {
		return ResultSet{}, utils.ErrorWithTrace(fmt.Errorf("invalid season provided: %s", season))
	}
	params := url.Values{}
	params.Set("LeagueID", "00")
	params.Set("Season", season)
	params.Set("SeasonType", "Regular Season")
	params.Set("PerMode", "PerGame")
	params.Set("MeasureType", "Base")
	body, err := c.get("leaguedashplayerstats", params)
	if err != nil {
		return ResultSet{}, err
	}
	return decodeFirstResultSet(body)
}

// LeagueDashTeamStats returns per-game averages plus win/loss records for
// every team in a season in a single call.
func (c *Client) LeagueDashTeamStats(season string) (ResultSet, error) {
	if utils.IsInvalidSeason(season) {
		return ResultSet{}, utils.ErrorWithTrace(fmt.Errorf("invalid season provided: %s", season))
	}
	params := url.Values{}
	params.Set("LeagueID", "00")
	params.Set("Season", season)
	params.Set("SeasonType", "Regular Season")
	params.Set("PerMode", "PerGame")
	params.Set("MeasureType", "Base")
	body, err := c.get("leaguedashteamstats", params)
	if err != nil {
		return ResultSet{}, err
	}
	return decodeFirstResultSet(body)
}

// PlayerCareerStats returns one row per season the player has played. The
// first result set is SeasonTotalsRegularSeason.
func (c *Client) PlayerCareerStats(playerID int) (ResultSet, error) {
	params := url.Values{}
	params.Set("LeagueID", "00")
	params.Set("PlayerID", strconv.Itoa(playerID))
	params.Set("PerMode", "PerGame")
	body, err := c.get("playercareerstats", params)
	if err != nil {
		return ResultSet{}, err
	}
	return decodeFirstResultSet(body)
}

// TeamGameLog returns one row per game a team played in a season.
func (c *Client) TeamGameLog(teamID int, season string) (ResultSet, error) {
	if utils.IsInvalidSeason(season) {
		return ResultSet{}, utils.ErrorWithTrace(fmt.Errorf("invalid season provided: %s", season))
	}
	params := url.Values{}
	params.Set("LeagueID", "00")
	params.Set("TeamID", strconv.Itoa(teamID))
	params.Set("Season", season)
	params.Set("SeasonType", "Regular Season")
	body, err := c.get("teamgamelog", params)
	if err != nil {
		return ResultSet{}, err
	}
	return decodeFirstResultSet(body)
}

func maybe[T any](x any) *T {
	if x, ok := x.(T); ok {
		return &x
	}
	return nil
}
