package upstream

// Config holds configuration for the provisioning API.
type Config struct {
	// URL is the endpoint of the provisioning API.
	URL string `mapstructure:"url" default:""`
	// User is the API user for the authenticate call.
	User string `mapstructure:"user" default:""`
	// Pass is the API password for the authenticate call.
	Pass string `mapstructure:"pass" default:""`
	// TimeoutSeconds is the per-call HTTP timeout.
	TimeoutSeconds float64 `mapstructure:"timeout_seconds" default:"20"`
	// CacheTTLSeconds bounds how long a transformed record may be
	// served from cache. <= 0 disables record caching.
	CacheTTLSeconds float64 `mapstructure:"cache_ttl_seconds" default:"180"`
	// CacheMaxEntries bounds the record cache size.
	CacheMaxEntries int `mapstructure:"cache_max_entries" default:"64"`
}
