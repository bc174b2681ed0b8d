package models

// Record is one roster row, keyed by the discovered header names.
// Values are trimmed cell strings; missing trailing cells are present
// as empty strings.
type Record map[string]string

// Match is the roster metadata for a client whose name signature
// matched a row. It is only produced fully populated.
type Match struct {
	// SubscriberNumber is the provider's subscriber reference found in
	// the row, possibly empty when the roster lacks that column.
	SubscriberNumber string `json:"subscriberNumber"`
	// CIC is the credential identifier of the matched row.
	CIC string `json:"cic"`
	// Username is the streaming username of the matched row.
	Username string `json:"username"`
	// Source is the full row the match came from.
	Source Record `json:"-"`
}

// AvailableCredential is the first roster row whose credentials have
// not been handed out yet.
type AvailableCredential struct {
	Username string `json:"username"`
	CIC      string `json:"cic"`
	// RowIndex is the 1-based position in the grid (headers are row 1,
	// the first data row is 2), so a later write can address the row
	// directly.
	RowIndex int `json:"rowIndex"`
}

// Reconciliation is the outcome of matching a client against the
// roster. Matched and Proposed are mutually exclusive; at most one is
// non-nil.
type Reconciliation struct {
	Matched  *Match               `json:"matched"`
	Proposed *AvailableCredential `json:"proposed"`
}
