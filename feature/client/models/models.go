package models

// Status is the normalized subscription state of a client.
type Status string

const (
	StatusActive     Status = "active"
	StatusSuspended  Status = "suspended"
	StatusTerminated Status = "terminated"
	StatusUnknown    Status = "unknown"
)

// Record is the normalized projection of an upstream billing record.
type Record struct {
	// ID is the stable external identifier (IDA) of the client.
	ID string `json:"id"`
	// FullName is the client name with commas dropped and internal
	// whitespace collapsed.
	FullName string `json:"fullName"`
	// NationalID is the client's document number, possibly empty.
	NationalID string `json:"nationalId"`
	// Email is the contact address, extracted from free-text fields
	// when no explicit one exists. May be empty.
	Email string `json:"email"`
	// GeneratedPassword is the deterministic onboarding password:
	// lowercased name initials followed by the national ID. It is not
	// cryptographic; the derivation is kept for compatibility with
	// credentials already handed out.
	GeneratedPassword string `json:"generatedPassword"`
	// Service flags derived from the contracted product list.
	HasTV            bool `json:"hasTV"`
	HasHBO           bool `json:"hasHBO"`
	HasSportsPackage bool `json:"hasSportsPackage"`
	// StatusText is the raw upstream status string.
	StatusText string `json:"statusText"`
	// StatusCode is the normalized status. Always populated; unmapped
	// texts become StatusUnknown.
	StatusCode Status `json:"statusCode"`
}
