package cfg

import (
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	// Equivalent of cmp.Or(Version, "unknown"); cmp.Or needs Go 1.22+.
	if Version != "" {
		return Version
	}
	return "unknown"
}

type rawCfg struct {
	// Database configuration
	DBHost     string `long:"db-host" env:"DB_HOST" default:"localhost" description:"Database host"`
	DBPort     string `long:"db-port" env:"DB_PORT" default:"5432" description:"Database port"`
	DBUser     string `long:"db-user" env:"DB_USER" default:"newsdesk" description:"Database user"`
	DBPassword string `long:"db-password" env:"DB_PASSWORD" default:"newsdesk" description:"Database password (required)" required:"true"`
	DBName     string `long:"db-name" env:"DB_NAME" default:"newsdesk" description:"Database name"`

	// Feed sources. URLs are deliberately not validated here: a missing
	// source is reported by the sync run that needed it, naming the
	// category, rather than preventing the server from starting.
	ClassicFeedURL string `long:"classic-feed" env:"CLASSIC_RSS_FEED" description:"Classic RSS feed URL"`
	RetailFeedURL  string `long:"retail-feed" env:"RETAIL_RSS_FEED" description:"Retail RSS feed URL"`
	SourcesFile    string `long:"sources-file" env:"SOURCES_FILE" description:"Optional YAML file with additional feed sources"`
	CategoryScheme string `long:"category-scheme" env:"CATEGORY_SCHEME" default:"three-way" choice:"three-way" choice:"two-way" description:"Category scheme for mapping feed sources"`

	// Application configuration
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for admin endpoints (optional)"`
	SyncInterval int    `long:"sync-interval" env:"RSS_REFRESH_INTERVAL" default:"300" description:"Background sync interval in seconds"`
	FetchTimeout int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"30" description:"Per-source feed fetch timeout in seconds"`
	UserAgent    string `long:"user-agent" env:"USER_AGENT" default:"Newsdesk/1.0" description:"User agent string for feed requests"`
	Debug        bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

// Load parses configuration from command-line flags and environment
// variables. Returns nil without error when help was requested.
func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBHost:         raw.DBHost,
		DBPort:         raw.DBPort,
		DBUser:         raw.DBUser,
		DBPassword:     raw.DBPassword,
		DBName:         raw.DBName,
		ClassicFeedURL: raw.ClassicFeedURL,
		RetailFeedURL:  raw.RetailFeedURL,
		SourcesFile:    raw.SourcesFile,
		CategoryScheme: raw.CategoryScheme,
		Port:           raw.Port,
		APIAccessKey:   raw.APIAccessKey,
		SyncInterval:   raw.SyncInterval,
		FetchTimeout:   raw.FetchTimeout,
		UserAgent:      raw.UserAgent,
		Debug:          raw.Debug,
		Version:        GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}
