package entity

import "time"

// Beacon is a registered BLE beacon. Its location is the room a meeting
// bound to it takes place in.
type Beacon struct {
	ID        string     `db:"id"`
	Major     int        `db:"major"`
	Minor     int        `db:"minor"`
	Location  string     `db:"location"`
	Name      *string    `db:"name"`
	LastUsed  *time.Time `db:"last_used"`
	CreatedAt time.Time  `db:"created_at"`
}
