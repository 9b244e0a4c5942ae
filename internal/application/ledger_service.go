package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Lucas-Nascimentto/projeto-fan/internal/domain/entity"
	repo "github.com/Lucas-Nascimentto/projeto-fan/internal/domain/repository"
	"github.com/Lucas-Nascimentto/projeto-fan/pkg/helpers"
)

// LedgerService owns donation requests and the pending -> accepted |
// declined state machine. Only the owner of the referenced donation can
// decide a request; a terminal request cannot be decided again.
type LedgerService struct {
	Requests  repo.RequestRepository
	Donations repo.DonationRepository
	Users     repo.UserRepository
	Pub       *helpers.RabbitPublisher
	Logger    *logrus.Logger
}

func NewLedgerService(requests repo.RequestRepository, donations repo.DonationRepository, users repo.UserRepository, pub *helpers.RabbitPublisher, logger *logrus.Logger) *LedgerService {
	return &LedgerService{
		Requests:  requests,
		Donations: donations,
		Users:     users,
		Pub:       pub,
		Logger:    logger,
	}
}

// RequestView is a request joined with its donation snapshot. Donation
// is nil when the donation has been deleted since; the listing itself
// never fails on the dangling reference.
type RequestView struct {
	Request  *entity.DonationRequest
	Donation *entity.Donation
}

// ReceivedRequestView additionally carries the requester's profile so
// the donor can judge the request. Requester is nil-tolerant the same
// way Donation is.
type ReceivedRequestView struct {
	Request   *entity.DonationRequest
	Donation  *entity.Donation
	Requester *Profile
}

// Submit records a new pending request against an existing donation.
func (s *LedgerService) Submit(ctx context.Context, donationID, requesterID, reason string) (*entity.DonationRequest, error) {
	if strings.TrimSpace(donationID) == "" {
		return nil, fmt.Errorf("%w: donation id is required", ErrValidation)
	}
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrValidation)
	}

	if _, err := s.Donations.GetByID(ctx, donationID); err != nil {
		return nil, classifyLookup(err, "donation")
	}

	req := &entity.DonationRequest{
		DonationID:  donationID,
		RequesterID: requesterID,
		Reason:      reason,
		Status:      entity.StatusPending,
		CreatedAt:   time.Now(),
	}
	if err := s.Requests.Create(ctx, req); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.Pub, s.Logger, Event{
		Type:     EventRequestSubmitted,
		ActorID:  requesterID,
		EntityID: req.ID,
		Payload:  map[string]any{"donation_id": donationID},
	})
	return req, nil
}

// ListByRequester returns the caller's own requests, newest first, each
// joined with its donation snapshot.
func (s *LedgerService) ListByRequester(ctx context.Context, userID string) ([]RequestView, error) {
	reqs, err := s.Requests.ListByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}

	donations := map[string]*entity.Donation{}
	out := make([]RequestView, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, RequestView{
			Request:  req,
			Donation: s.donationSnapshot(ctx, donations, req.DonationID),
		})
	}
	return out, nil
}

// ListReceivedByDonor returns every request against the donor's
// donations, newest first. The donation-id set is resolved first; when
// it is empty no request query is made at all.
func (s *LedgerService) ListReceivedByDonor(ctx context.Context, donorID string) ([]ReceivedRequestView, error) {
	ids, err := s.Donations.IDsByOwner(ctx, donorID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []ReceivedRequestView{}, nil
	}

	reqs, err := s.Requests.ListByDonations(ctx, ids)
	if err != nil {
		return nil, err
	}

	donations := map[string]*entity.Donation{}
	out := make([]ReceivedRequestView, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, ReceivedRequestView{
			Request:   req,
			Donation:  s.donationSnapshot(ctx, donations, req.DonationID),
			Requester: s.requesterSnapshot(ctx, req.RequesterID),
		})
	}
	return out, nil
}

// Decide moves a pending request into a terminal state and hands the
// requester's contact back to the donor. Authorization is resolved
// through the referenced donation's owner; it is checked before the
// terminal-state guard so a non-owner always gets the ownership error.
func (s *LedgerService) Decide(ctx context.Context, requestID, donorID string, outcome entity.Outcome) (*entity.Contact, error) {
	if !outcome.Valid() || !outcome.Terminal() {
		return nil, fmt.Errorf("%w: outcome must be accepted or declined", ErrValidation)
	}

	req, err := s.Requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, classifyLookup(err, "request")
	}

	donation, err := s.Donations.GetByID(ctx, req.DonationID)
	if err != nil {
		return nil, classifyLookup(err, "donation")
	}
	if err := requireOwner(donation.OwnerID, donorID); err != nil {
		return nil, err
	}

	if req.Status.Terminal() {
		return nil, fmt.Errorf("%w: status is %s", ErrAlreadyDecided, req.Status)
	}

	if err := s.Requests.UpdateStatus(ctx, requestID, outcome); err != nil {
		return nil, classifyLookup(err, "request")
	}

	requester, err := s.Users.GetByID(ctx, req.RequesterID)
	if err != nil {
		return nil, classifyLookup(err, "requester")
	}

	publishEvent(ctx, s.Pub, s.Logger, Event{
		Type:     EventRequestDecided,
		ActorID:  donorID,
		EntityID: requestID,
		Payload:  map[string]any{"outcome": string(outcome), "donation_id": req.DonationID},
	})

	contact := requester.Contact()
	return &contact, nil
}

// donationSnapshot resolves a donation by id, memoizing per listing and
// degrading to nil when the donation no longer exists.
func (s *LedgerService) donationSnapshot(ctx context.Context, cache map[string]*entity.Donation, id string) *entity.Donation {
	if d, ok := cache[id]; ok {
		return d
	}
	d, err := s.Donations.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) && s.Logger != nil {
			s.Logger.WithError(err).WithField("donation_id", id).Warn("donation snapshot failed")
		}
		d = nil
	}
	cache[id] = d
	return d
}

func (s *LedgerService) requesterSnapshot(ctx context.Context, id string) *Profile {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("requester snapshot failed")
		}
		return nil
	}
	p := publicProfile(u)
	return &p
}
