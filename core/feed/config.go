package feed

import "time"

// Config holds configuration for the upstream results feeds.
type Config struct {
	// BaseURL is the root of the live data tree, without the election date.
	BaseURL string `mapstructure:"base_url" default:"https://interactives.apelections.org/election-results/data-live"`
	// ElectionDate selects the election (YYYY-MM-DD).
	ElectionDate string `mapstructure:"election_date" default:"2024-11-05"`
	// ProgressPath is the path of the national progress document below the election date.
	ProgressPath string `mapstructure:"progress_path" default:"results/national/progress.json"`
	// MetadataPath is the path of the national metadata document below the election date.
	MetadataPath string `mapstructure:"metadata_path" default:"results/national/metadata.json"`
	// DetailPath is the per-race detail path; {state} and {race} are expanded.
	DetailPath string `mapstructure:"detail_path" default:"results/races/{state}/{race}/detail.json"`
	// TimeoutSeconds bounds a single GET.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// Retries is the number of extra attempts after a failed GET.
	Retries int `mapstructure:"retries" default:"3"`
	// RetryDelaySeconds is the pause between attempts.
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" default:"5"`
	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" default:"election-results/1.0"`
	// DetailWorkers bounds concurrent county detail fetches.
	DetailWorkers int `mapstructure:"detail_workers" default:"4"`
	// CacheTTLSeconds is how long the API serves a reconciled result set before refetching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"30"`
}

// Timeout returns the per-request timeout, defaulting to 30s.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RetryDelay returns the pause between attempts.
func (c Config) RetryDelay() time.Duration {
	if c.RetryDelaySeconds < 0 {
		return 0
	}
	return time.Duration(c.RetryDelaySeconds) * time.Second
}

// CacheTTL returns the live result cache lifetime.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Workers returns the detail worker count, at least 1.
func (c Config) Workers() int {
	if c.DetailWorkers < 1 {
		return 1
	}
	return c.DetailWorkers
}
