package entity

import "time"

// Donation is an item posted by a donor for potential transfer.
// OwnerID is set once at creation and never reassigned.
type Donation struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Category    string
	Location    string
	City        string
	State       string
	PhotoURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
