package repository

import (
	"context"

	"github.com/Lucas-Nascimentto/projeto-fan/internal/domain/entity"
)

// RequestRepository defines the interface for donation-request store
// operations. Requests are never cascade-deleted with their donation.
type RequestRepository interface {
	Create(ctx context.Context, r *entity.DonationRequest) error
	GetByID(ctx context.Context, id string) (*entity.DonationRequest, error)
	UpdateStatus(ctx context.Context, id string, status entity.RequestStatus) error

	// ListByRequester returns the requester's own requests, newest first.
	ListByRequester(ctx context.Context, requesterID string) ([]*entity.DonationRequest, error)
	// ListByDonations returns every request referencing one of the given
	// donation ids, newest first. An empty id set yields an empty slice.
	ListByDonations(ctx context.Context, donationIDs []string) ([]*entity.DonationRequest, error)
}
