package domain

import "time"

// AuditFields holds standard timestamps for domain entities. The system has
// no user accounts, so rows are attributed to a source/process, not a person.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
