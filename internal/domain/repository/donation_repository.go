package repository

import (
	"context"

	"github.com/Lucas-Nascimentto/projeto-fan/internal/domain/entity"
)

// SortOrder selects the ordering of a filtered listing. The zero value
// leaves the store-native order untouched.
type SortOrder string

const (
	SortNone   SortOrder = ""
	SortRecent SortOrder = "recent"
	SortOldest SortOrder = "oldest"
)

// DonationFilter carries the recognized exact-match criteria for a
// listing. Empty fields are not applied; set fields are conjunctive.
type DonationFilter struct {
	Category string
	City     string
	State    string
	Sort     SortOrder
}

// DonationRepository defines the interface for donation store operations.
// Listings that take an ownerID for exclusion never return that owner's
// own donations.
type DonationRepository interface {
	Create(ctx context.Context, d *entity.Donation) error
	GetByID(ctx context.Context, id string) (*entity.Donation, error)
	Update(ctx context.Context, d *entity.Donation) error
	Delete(ctx context.Context, id string) error

	// ListByOwner returns the owner's donations, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Donation, error)
	// ListExcludingOwner returns donations from every other user,
	// filtered and ordered per f.
	ListExcludingOwner(ctx context.Context, ownerID string, f DonationFilter) ([]*entity.Donation, error)
	// IDsByOwner resolves the id set of the owner's donations.
	IDsByOwner(ctx context.Context, ownerID string) ([]string, error)
}
