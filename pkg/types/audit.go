package types

import "time"

type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	RecordID   string    `db:"record_id" json:"recordId"`
	AccessedBy string    `db:"accessed_by" json:"accessedBy"`
	AccessType string    `db:"access_type" json:"accessType"`
	UserAgent  string    `db:"user_agent" json:"userAgent"`
	IPAddress  string    `db:"ip_address" json:"ipAddress"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
