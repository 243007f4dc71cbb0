// Package config provides functionality for managing configuration options
// for the application using command-line flags, an optional JSON file and
// environment variables.
package config

import (
	"encoding/json"
	"flag"
	"os"
	"strconv"
	"time"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string `json:"server_address"`

	// BaseURL is the base URL used for result links.
	BaseURL string `json:"base_url"`

	// DatabaseDSN holds the postgres connection string. When empty, the
	// in-memory store is used.
	DatabaseDSN string `json:"database_dsn"`

	// RedisAddr enables the redis lookup cache when set.
	RedisAddr string `json:"redis_addr"`

	// GeoIPEndpoint is the base URL of the external geo-IP resolver.
	// Lookups are skipped when empty.
	GeoIPEndpoint string `json:"geoip_endpoint"`

	// TrustedSubnet is the CIDR allowed to call internal endpoints.
	TrustedSubnet string `json:"trusted_subnet"`

	// TokenSecret signs the visitor-token cookies.
	TokenSecret string `json:"token_secret"`

	// LinkRetentionDays is how long expired links are kept before the
	// sweeper removes them.
	LinkRetentionDays int `json:"link_retention_days"`

	// ClickRetentionDays is how long click events are kept.
	ClickRetentionDays int `json:"click_retention_days"`

	// SweepInterval is the period of the retention sweeper.
	SweepInterval time.Duration `json:"-"`

	// EnablePprof indicates whether to enable pprof for profiling.
	EnablePprof bool `json:"enable_pprof"`

	// EnableHTTPS indicates whether to enable https.
	EnableHTTPS bool `json:"enable_https"`

	// Config is the path to an optional JSON config file.
	Config string `json:"-"`
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.BaseURL, "b", "http://localhost:8080", "result base url")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.RedisAddr, "r", "", "redis address for the lookup cache")
	flag.StringVar(&options.GeoIPEndpoint, "g", "", "geo-ip resolver endpoint")
	flag.StringVar(&options.TrustedSubnet, "t", "", "trusted subnet for internal endpoints")
	flag.StringVar(&options.TokenSecret, "k", "supersecretkey", "visitor token signing secret")
	flag.IntVar(&options.LinkRetentionDays, "lr", 30, "days to keep expired links")
	flag.IntVar(&options.ClickRetentionDays, "cr", 90, "days to keep click events")
	flag.DurationVar(&options.SweepInterval, "si", time.Hour, "retention sweep interval")
	flag.BoolVar(&options.EnablePprof, "p", false, "enable pprof")
	flag.BoolVar(&options.EnableHTTPS, "s", false, "enable https")
	flag.StringVar(&options.Config, "c", "", "path to a json config file")
}

// Parse parses the command-line flags, the optional config file and the
// environment to set configuration values. Environment variables take
// precedence over the file, which takes precedence over flag defaults.
func Parse() *Options {
	flag.Parse()

	if path := os.Getenv("CONFIG"); path != "" {
		options.Config = path
	}
	if options.Config != "" {
		if data, err := os.ReadFile(options.Config); err == nil {
			_ = json.Unmarshal(data, options)
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Addr = serverAddress
	}

	if baseURL := os.Getenv("BASE_URL"); baseURL != "" {
		options.BaseURL = baseURL
	}

	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}

	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		options.RedisAddr = redisAddr
	}

	if endpoint := os.Getenv("GEOIP_ENDPOINT"); endpoint != "" {
		options.GeoIPEndpoint = endpoint
	}

	if subnet := os.Getenv("TRUSTED_SUBNET"); subnet != "" {
		options.TrustedSubnet = subnet
	}

	if secret := os.Getenv("TOKEN_SECRET"); secret != "" {
		options.TokenSecret = secret
	}

	if days := os.Getenv("LINK_RETENTION_DAYS"); days != "" {
		if v, err := strconv.Atoi(days); err == nil {
			options.LinkRetentionDays = v
		}
	}

	if days := os.Getenv("CLICK_RETENTION_DAYS"); days != "" {
		if v, err := strconv.Atoi(days); err == nil {
			options.ClickRetentionDays = v
		}
	}

	if interval := os.Getenv("SWEEP_INTERVAL"); interval != "" {
		if v, err := time.ParseDuration(interval); err == nil {
			options.SweepInterval = v
		}
	}

	if enablePprof := os.Getenv("ENABLE_PPROF"); enablePprof != "" {
		pprofMode, err := strconv.ParseBool(enablePprof)
		if err != nil {
			options.EnablePprof = false
		}

		options.EnablePprof = pprofMode
	}

	if enableHTTPS := os.Getenv("ENABLE_HTTPS"); enableHTTPS != "" {
		httpsMode, err := strconv.ParseBool(enableHTTPS)
		if err != nil {
			options.EnableHTTPS = false
		}

		options.EnableHTTPS = httpsMode
	}

	return options
}
