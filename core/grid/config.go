package grid

// Config holds configuration for the roster grid source.
type Config struct {
	// Backend selects the grid implementation (sheets, object).
	Backend string `mapstructure:"backend" default:"sheets"`
	// CacheTTLSeconds bounds how long the roster layer may serve a
	// cached grid. <= 0 disables roster caching.
	CacheTTLSeconds float64 `mapstructure:"cache_ttl_seconds" default:"45"`

	// Endpoint is the base URL of the sheets API service.
	Endpoint string `mapstructure:"endpoint" default:"https://sheets.googleapis.com"`
	// Token is the bearer token for the sheets API.
	Token string `mapstructure:"token" default:""`
	// SpreadsheetID identifies the roster spreadsheet.
	SpreadsheetID string `mapstructure:"spreadsheet_id" default:""`
	// SheetName is the worksheet title used in value ranges. Empty
	// means the spreadsheet's first sheet.
	SheetName string `mapstructure:"sheet_name" default:""`
	// SheetID is the numeric worksheet id, needed for format calls.
	SheetID int `mapstructure:"sheet_id" default:"0"`
	// TimeoutSeconds is the per-call timeout for the sheets API.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"15"`

	// Object is the CSV object name used by the object backend.
	Object string `mapstructure:"object" default:"roster.csv"`
}

// Supported backends.
const (
	BackendSheets = "sheets"
	BackendObject = "object"
)
