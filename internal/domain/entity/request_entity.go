package entity

import "time"

// RequestStatus is the closed state set of a donation request.
// pending is the only initial state; accepted and declined are terminal.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusDeclined RequestStatus = "declined"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDeclined:
		return true
	}
	return false
}

// Terminal reports whether no further transition is permitted.
func (s RequestStatus) Terminal() bool {
	switch s {
	case StatusAccepted, StatusDeclined:
		return true
	case StatusPending:
		return false
	}
	return false
}

// Outcome is a decision a donor can take on a pending request.
// It is the subset of RequestStatus reachable from pending.
type Outcome = RequestStatus

// DonationRequest is a recipient's claim of interest in a donation,
// subject to approval by the donation's owner. A request keeps its
// DonationID even after the donation is deleted; readers must tolerate
// the dangling reference.
type DonationRequest struct {
	ID          string
	DonationID  string
	RequesterID string
	Reason      string
	Status      RequestStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
