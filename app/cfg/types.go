package cfg

// Cfg holds the resolved application configuration.
type Cfg struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Feed sources
	ClassicFeedURL string
	RetailFeedURL  string
	SourcesFile    string
	CategoryScheme string

	// Application configuration
	Port         string
	APIAccessKey string
	SyncInterval int
	FetchTimeout int
	UserAgent    string
	Debug        bool
	Version      string
}
