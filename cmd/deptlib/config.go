package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/bobinette/deptlib"
	"github.com/bobinette/deptlib/errors"
	"github.com/bobinette/deptlib/report"
)

type Configuration struct {
	Auth struct {
		Key      string   `toml:"key"`
		Lifetime duration `toml:"lifetime"`
		Admins   []string `toml:"admins"`
	} `toml:"auth"`
	Store struct {
		Driver string `toml:"driver"`
	} `toml:"store"`
	Bolt struct {
		Store string `toml:"store"`
	} `toml:"bolt"`
	Mongo struct {
		URI      string `toml:"uri"`
		Database string `toml:"database"`
	} `toml:"mongo"`
	Bleve struct {
		Store string `toml:"store"`
	} `toml:"bleve"`
	Report struct {
		Title     string `toml:"title"`
		Fallback  string `toml:"fallback"`
		FixedDate string `toml:"fixed_date"`
		Font      string `toml:"font"`
	} `toml:"report"`
	HTTP struct {
		Address string   `toml:"address"`
		Origins []string `toml:"origins"`
	} `toml:"http"`
}

// duration reads a time.Duration from a TOML string such as "72h".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func loadConfiguration(filename string) (Configuration, error) {
	var cfg Configuration
	if _, err := toml.DecodeFile(filename, &cfg); err != nil {
		return Configuration{}, errors.New(fmt.Sprintf("could not read configuration %s", filename), errors.WithCause(err))
	}

	// Environment overrides, usually coming from .env
	if uri := os.Getenv("DEPTLIB_MONGO_URI"); uri != "" {
		cfg.Mongo.URI = uri
	}
	if addr := os.Getenv("DEPTLIB_HTTP_ADDR"); addr != "" {
		cfg.HTTP.Address = addr
	}

	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "bolt"
	}
	if cfg.HTTP.Address == "" {
		cfg.HTTP.Address = ":1705"
	}
	if cfg.Report.Title == "" {
		cfg.Report.Title = report.DefaultTitle
	}
	return cfg, nil
}

// fallbackPolicy returns the policy dating the works without publish date.
func (cfg Configuration) fallbackPolicy() (report.FallbackPolicy, error) {
	switch cfg.Report.Fallback {
	case "", "midpoint":
		return report.MidpointFallback, nil
	case "fixed":
		d, err := time.Parse("2006-01-02", cfg.Report.FixedDate)
		if err != nil {
			return nil, errors.New("invalid report.fixed_date", errors.WithCause(err))
		}
		return report.FixedFallback(d), nil
	}
	return nil, errors.New(fmt.Sprintf("unknown report.fallback %q, expected midpoint or fixed", cfg.Report.Fallback))
}

func readKey(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.New("could not open key file", errors.WithCause(err))
	}

	var key deptlib.SigningKey
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, errors.New("could not read key file", errors.WithCause(err))
	}
	return []byte(key.Key), nil
}
