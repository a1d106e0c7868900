package config

import (
	"fmt"
	"time"

	flag "github.com/spf13/pflag"
)

var Addr string
var DefaultSeason string
var FetchDelay time.Duration

var ValidSeasons = []string{
	"2025-26",
	"2024-25",
	"2023-24",
	"2022-23",
	"2021-22",
	"2020-21",
	"2019-20",
	"2018-19",
	"2017-18",
	"2016-17",
	"2015-16",
	"2014-15",
}

// Substitution policy for fields missing from upstream responses. DefaultAge
// only applies when a normalization batch observes no ages at all; otherwise
// the batch median wins.
const (
	DefaultTeam     = "N/A"
	DefaultPosition = "N/A"
	DefaultAge      = 25
	MinAge          = 18
)

func LoadConfig() error {
	flag.StringVar(&Addr, "addr", ":8080", "listen address")
	flag.StringVar(&DefaultSeason, "season", "2024-25", "season shown on the index page")
	flag.DurationVar(&FetchDelay, "fetch-delay", 600*time.Millisecond, "minimum delay between per-player stats.nba.com calls")
	flag.Parse()

	for _, s := range ValidSeasons {
		if s == DefaultSeason {
			return nil
		}
	}
	return fmt.Errorf("invalid --season provided: %s", DefaultSeason)
}
