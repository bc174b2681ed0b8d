package models

import "time"

// AuditEntry records one confirmed roster write. Rows are append-only.
type AuditEntry struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"size:128;index"`
	IDA       string `gorm:"size:32;index"`
	FullName  string `gorm:"size:256"`
	Row       int
	Actor     string `gorm:"size:128"`
	CreatedAt time.Time
}

// TableName fixes the audit table name.
func (AuditEntry) TableName() string { return "roster_audit" }
