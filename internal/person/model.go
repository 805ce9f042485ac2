package person

import "time"

// Person is an identity referenced by bills, items and groups.
// The id is an opaque UUID string and never changes.
type Person struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
