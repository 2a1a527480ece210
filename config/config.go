package config

import (
	"time"

	"github.com/go-pg/pg/v10"
)

// Duration parses TOML values like "60s" or "1h".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type Config struct {
	Database pg.Options
	App      struct {
		Host string
		Port int
	}
	Scheduler struct {
		Interval       Duration
		ArticleTimeout Duration
		Retention      Duration
	}
	Notify struct {
		Timeout Duration
	}
}
