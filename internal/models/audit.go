package models

import "time"

// Audit actions recorded for session activity.
const (
	AuditActionLogin    = "LOGIN"
	AuditActionLogout   = "LOGOUT"
	AuditActionNavigate = "NAVIGATE"
	AuditActionRegister = "REGISTER"
	AuditActionClock    = "CLOCK"
	AuditActionReview   = "REVIEW"
	AuditActionCreate   = "CREATE"
	AuditActionDelete   = "DELETE"
	AuditActionUpdate   = "UPDATE"
	AuditActionExport   = "EXPORT"
)

// AuditLog represents an audit trail record.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	SessionID  string    `db:"session_id" json:"session_id"`
	ActorName  *string   `db:"actor_name" json:"actor_name,omitempty"`
	ActorRole  *string   `db:"actor_role" json:"actor_role,omitempty"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *string   `db:"resource_id" json:"resource_id,omitempty"`
	OldValues  []byte    `db:"old_values" json:"old_values,omitempty"`
	NewValues  []byte    `db:"new_values" json:"new_values,omitempty"`
	IPAddress  string    `db:"ip_address" json:"ip_address"`
	UserAgent  string    `db:"user_agent" json:"user_agent"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// AuditFilter narrows audit trail queries.
type AuditFilter struct {
	SessionID string
	Action    string
	Limit     int
}
