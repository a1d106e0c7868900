package main

import (
	"fmt"
	"html/template"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"courtside/config"
	"courtside/loader"
	"courtside/nba"
	"courtside/stats"
	"courtside/utils"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

type Templates struct {
	templates *template.Template
}

func (t *Templates) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

func newTemplate() *Templates {
	return &Templates{
		templates: template.Must(template.New("").Funcs(template.FuncMap{
			"fmtStat": fmtStat,
		}).ParseGlob("views/*.html")),
	}
}

func fmtStat(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}

type RangeBounds struct {
	Min        float64
	Max        float64
	Degenerate bool
}

type SummaryRow struct {
	Stat string
	Mean float64
	Min  float64
	Max  float64
}

type DashboardState struct {
	Season        string
	ValidSeasons  []string
	StatFields    []string
	Teams         []string
	Positions     []string
	Spec          stats.FilterSpec
	AgeBounds     RangeBounds
	StatBounds    RangeBounds
	Rows          []stats.PlayerSeasonRow
	Summary       []SummaryRow
	TopScorers    []stats.PlayerSeasonRow
	Warnings     []string
	Message      string
	DownloadURL  template.URL
}

type TeamsState struct {
	Season       string
	ValidSeasons []string
	Rows         []stats.TeamSeasonRow
	Message      string
}

type CompareState struct {
	Season  string
	TeamA   *stats.TeamSeasonRow
	TeamB   *stats.TeamSeasonRow
	Message string
}

type GameLogState struct {
	Season   string
	TeamName string
	Rows     []stats.TeamGameRow
	Message  string
}

func main() {
	if err := config.LoadConfig(); err != nil {
		panic(err)
	}
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	client := nba.NewClient(logger)
	ld := loader.New(client, logger)
	if _, err := ld.RunRefreshDaemon(config.DefaultSeason); err != nil {
		logger.WithError(err).Error("refresh daemon failed to start")
	}
	fmt.Println("The New York Knickerbockers are named after pants")

	e := echo.New()
	e.Use(middleware.Logger())
	e.Renderer = newTemplate()

	e.GET("/", func(c echo.Context) error {
		season := c.QueryParam("season")
		if season == "" {
			season = config.DefaultSeason
		}
		state := buildDashboard(ld, season, c.QueryParams())
		return c.Render(200, "index", state)
	})

	e.POST("/filter", func(c echo.Context) error {
		req := c.Request()
		if err := req.ParseForm(); err != nil {
			return utils.ErrorWithTrace(err)
		}
		season := req.FormValue("season")
		state := buildDashboard(ld, season, req.Form)
		return c.Render(200, "dashboard", state)
	})

	e.GET("/download", func(c echo.Context) error {
		season := c.QueryParam("season")
		if season == "" {
			season = config.DefaultSeason
		}
		state := buildDashboard(ld, season, c.QueryParams())
		c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
		c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="nba_player_stats_%s.csv"`, season))
		c.Response().WriteHeader(http.StatusOK)
		return stats.WritePlayerCSV(c.Response(), state.Rows)
	})

	e.GET("/teams", func(c echo.Context) error {
		season := c.QueryParam("season")
		if season == "" {
			season = config.DefaultSeason
		}
		res := ld.TeamSeasons(season)
		state := TeamsState{Season: season, ValidSeasons: config.ValidSeasons, Rows: res.Rows}
		if res.IsFailed() {
			state.Message = res.Reason
		} else if len(res.Rows) == 0 {
			state.Message = fmt.Sprintf("no team data available for %s yet", season)
		}
		return c.Render(200, "teams", state)
	})

	e.GET("/teams/:id/games", func(c echo.Context) error {
		season := c.QueryParam("season")
		if season == "" {
			season = config.DefaultSeason
		}
		teamID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.Render(200, "error", "that team id does not look right")
		}
		state := GameLogState{Season: season, TeamName: teamNameByID(ld, season, teamID)}
		res := ld.TeamGames(teamID, season)
		state.Rows = res.Rows
		if res.IsFailed() {
			state.Message = res.Reason
		} else if len(res.Rows) == 0 {
			state.Message = fmt.Sprintf("no games on record for %s", season)
		}
		return c.Render(200, "game-log", state)
	})

	e.POST("/compare", func(c echo.Context) error {
		req := c.Request()
		if err := req.ParseForm(); err != nil {
			return utils.ErrorWithTrace(err)
		}
		season := req.FormValue("season")
		teamA := req.FormValue("team-a")
		teamB := req.FormValue("team-b")

		state := CompareState{Season: season}
		if teamA == teamB {
			state.Message = "pick two different teams to compare"
			return c.Render(200, "compare", state)
		}
		res := ld.TeamSeasons(season)
		if res.IsFailed() {
			state.Message = res.Reason
			return c.Render(200, "compare", state)
		}
		state.TeamA = findTeam(res.Rows, teamA)
		state.TeamB = findTeam(res.Rows, teamB)
		if state.TeamA == nil || state.TeamB == nil {
			state.Message = fmt.Sprintf("no data for one of the selected teams in %s", season)
		}
		return c.Render(200, "compare", state)
	})

	e.Logger.Fatal(e.Start(config.Addr))
}

// buildDashboard runs the whole pipeline for one render: memoized load,
// filter spec from widget state, filter, then the derived views (summary,
// top scorers) over the filtered rows.
func buildDashboard(ld *loader.Loader, season string, form map[string][]string) DashboardState {
	state := DashboardState{
		Season:       season,
		ValidSeasons: config.ValidSeasons,
		StatFields:   stats.StatFields(),
	}

	res := ld.PlayerSeasons(season)
	if res.IsFailed() {
		state.Message = res.Reason
		return state
	}
	state.Warnings = res.Warnings
	if len(res.Rows) == 0 {
		state.Message = fmt.Sprintf("no player data available for %s yet", season)
		return state
	}

	state.Teams = distinct(res.Rows, func(r stats.PlayerSeasonRow) string { return r.Team })
	state.Positions = distinct(res.Rows, func(r stats.PlayerSeasonRow) string { return r.Position })
	state.AgeBounds = widenAge(res.Rows)
	spec := parseSpec(form, state.AgeBounds)
	state.StatBounds = widenStat(res.Rows, spec.StatField)
	if !spec.HasStatRange {
		spec.StatMin, spec.StatMax = state.StatBounds.Min, state.StatBounds.Max
		spec.HasStatRange = true
	}
	state.Spec = spec
	// template.URL keeps html/template from re-escaping the encoded query.
	state.DownloadURL = template.URL("/download?" + downloadQuery(season, spec))

	state.Rows = stats.Filter(res.Rows, spec)
	if len(state.Rows) == 0 {
		state.Message = "no players match the selected filters, please adjust your selections"
		return state
	}
	state.Summary = summarize(state.Rows)
	state.TopScorers = topScorers(state.Rows, 10)
	return state
}

// parseSpec rebuilds the FilterSpec from widget state. Anything absent or
// unparseable falls back to the widened observed bounds, so a malformed
// query narrows nothing.
func parseSpec(form map[string][]string, age RangeBounds) stats.FilterSpec {
	spec := stats.FilterSpec{
		Teams:     form["team"],
		Positions: form["position"],
		AgeMin:    int(age.Min),
		AgeMax:    int(age.Max),
		StatField: "Points",
	}
	if v := formValue(form, "stat-field"); v != "" {
		spec.StatField = v
	}
	if v, err := strconv.Atoi(formValue(form, "age-min")); err == nil {
		spec.AgeMin = v
	}
	if v, err := strconv.Atoi(formValue(form, "age-max")); err == nil {
		spec.AgeMax = v
	}
	if v, err := strconv.ParseFloat(formValue(form, "stat-min"), 64); err == nil {
		spec.StatMin = v
		spec.HasStatRange = true
	}
	if v, err := strconv.ParseFloat(formValue(form, "stat-max"), 64); err == nil {
		spec.StatMax = v
		spec.HasStatRange = true
	}
	return spec
}

// downloadQuery serializes the active filter spec into the CSV link's query
// string, so the export matches the table on screen. parseSpec on the other
// end reads the same keys the filter form posts.
func downloadQuery(season string, spec stats.FilterSpec) string {
	q := url.Values{}
	q.Set("season", season)
	for _, t := range spec.Teams {
		q.Add("team", t)
	}
	for _, p := range spec.Positions {
		q.Add("position", p)
	}
	q.Set("age-min", strconv.Itoa(spec.AgeMin))
	q.Set("age-max", strconv.Itoa(spec.AgeMax))
	q.Set("stat-field", spec.StatField)
	if spec.HasStatRange {
		q.Set("stat-min", strconv.FormatFloat(spec.StatMin, 'f', -1, 64))
		q.Set("stat-max", strconv.FormatFloat(spec.StatMax, 'f', -1, 64))
	}
	return q.Encode()
}

func formValue(form map[string][]string, key string) string {
	if vs := form[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// widenAge turns a degenerate observed age range into a usable control:
// two years either side, clamped at the league's age floor.
func widenAge(rows []stats.PlayerSeasonRow) RangeBounds {
	min, max, degenerate := stats.Bounds(rows, "Age")
	if degenerate {
		min = math.Max(float64(config.MinAge), min-2)
		max = max + 2
	}
	return RangeBounds{Min: min, Max: max, Degenerate: degenerate}
}

func widenStat(rows []stats.PlayerSeasonRow, field string) RangeBounds {
	min, max, degenerate := stats.Bounds(rows, field)
	if degenerate {
		min = math.Max(0, min-5.0)
		max = min + 5.0
	}
	return RangeBounds{Min: min, Max: max, Degenerate: degenerate}
}

func distinct(rows []stats.PlayerSeasonRow, key func(stats.PlayerSeasonRow) string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, r := range rows {
		k := key(r)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func summarize(rows []stats.PlayerSeasonRow) []SummaryRow {
	fields := []struct {
		name  string
		value func(stats.PlayerSeasonRow) float64
	}{
		{"Points", func(r stats.PlayerSeasonRow) float64 { return r.Points }},
		{"Assists", func(r stats.PlayerSeasonRow) float64 { return r.Assists }},
		{"Rebounds", func(r stats.PlayerSeasonRow) float64 { return r.Rebounds }},
		{"Steals", func(r stats.PlayerSeasonRow) float64 { return r.Steals }},
		{"Blocks", func(r stats.PlayerSeasonRow) float64 { return r.Blocks }},
	}
	out := make([]SummaryRow, 0, len(fields))
	for _, f := range fields {
		s := SummaryRow{Stat: f.name, Min: math.Inf(1), Max: math.Inf(-1)}
		sum := 0.0
		for _, r := range rows {
			v := f.value(r)
			sum += v
			s.Min = math.Min(s.Min, v)
			s.Max = math.Max(s.Max, v)
		}
		s.Mean = sum / float64(len(rows))
		out = append(out, s)
	}
	return out
}

func topScorers(rows []stats.PlayerSeasonRow, n int) []stats.PlayerSeasonRow {
	sorted := append([]stats.PlayerSeasonRow{}, rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Points > sorted[j].Points
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func findTeam(rows []stats.TeamSeasonRow, abbreviation string) *stats.TeamSeasonRow {
	for i := range rows {
		if rows[i].Team == abbreviation {
			return &rows[i]
		}
	}
	return nil
}

func teamNameByID(ld *loader.Loader, season string, teamID int) string {
	res := ld.TeamSeasons(season)
	for _, r := range res.Rows {
		if r.TeamID == teamID {
			return r.TeamName
		}
	}
	return fmt.Sprintf("team %d", teamID)
}
