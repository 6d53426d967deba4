package config

import (
	"time"
)

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[converter]"`
}

type Frankfurter struct {
	BaseURL     string        `envconfig:"BASE_URL" default:"https://api.frankfurter.app"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
}

// Converter tunes the debounced lookup of every view.
type Converter struct {
	Debounce     time.Duration `envconfig:"DEBOUNCE" default:"500ms"`
	DiscardStale bool          `envconfig:"DISCARD_STALE" default:"false"`
}

type Cache struct {
	TTL    time.Duration `envconfig:"TTL" default:"15m"`
	Prefix string        `envconfig:"PREFIX" default:"fx:conversion:"`
}

type Redis struct {
	URL          string        `envconfig:"URL"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Session struct {
	IdleTimeout   time.Duration `envconfig:"IDLE_TIMEOUT" default:"30m"`
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"1m"`
}

type App struct {
	Env         string       `envconfig:"APP_ENV" default:"development"`
	Server      *Server      `envconfig:"SERVER"`
	Log         *Log         `envconfig:"LOG"`
	Frankfurter *Frankfurter `envconfig:"FRANKFURTER"`
	Converter   *Converter   `envconfig:"CONVERTER"`
	Cache       *Cache       `envconfig:"CACHE"`
	Redis       *Redis       `envconfig:"REDIS"`
	RateLimit   *RateLimit   `envconfig:"RATE_LIMIT"`
	Session     *Session     `envconfig:"SESSION"`
}
