package activity

import "time"

// Activity represents one entry in the audit trail
type Activity struct {
	ID         int64     `json:"id"`
	Action     Action    `json:"action"`
	EntityType *string   `json:"entity_type,omitempty"` // e.g., "BILL", "PERSON", "GROUP"
	EntityID   *string   `json:"entity_id,omitempty"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// Action represents the kind of event being recorded
type Action string

const (
	ActionBillCreated   Action = "BILL_CREATED"
	ActionBillUpdated   Action = "BILL_UPDATED"
	ActionBillDeleted   Action = "BILL_DELETED"
	ActionBillRestored  Action = "BILL_RESTORED"
	ActionBillPurged    Action = "BILL_PURGED"
	ActionPersonCreated Action = "PERSON_CREATED"
	ActionPersonDeleted Action = "PERSON_DELETED"
	ActionGroupCreated  Action = "GROUP_CREATED"
	ActionGroupDeleted  Action = "GROUP_DELETED"
)
