package models

import "github.com/google/uuid"

// ServiceOrder groups jobs. The scheduling core treats it as read-only
// context: only id, title and priority surface in the unassigned list.
type ServiceOrder struct {
	ID       uuid.UUID   `json:"id"`
	Title    string      `json:"title"`
	Priority JobPriority `json:"priority"`
}
