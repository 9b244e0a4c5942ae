package application

import (
	"context"
	"errors"
	"testing"

	"github.com/Lucas-Nascimentto/projeto-fan/internal/domain/entity"
)

type ledgerFixture struct {
	svc       *LedgerService
	users     *memUserRepo
	donations *memDonationRepo
	requests  *memRequestRepo
}

func newLedgerFixture() *ledgerFixture {
	users := newMemUserRepo()
	donations := newMemDonationRepo()
	requests := newMemRequestRepo()
	return &ledgerFixture{
		svc:       NewLedgerService(requests, donations, users, nil, nil),
		users:     users,
		donations: donations,
		requests:  requests,
	}
}

func (f *ledgerFixture) seedUser(t *testing.T, role entity.Role, name, email, phone string) *entity.User {
	t.Helper()
	u := &entity.User{Role: role, Name: name, Email: email, Phone: phone, Password: "hash"}
	if err := f.users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return u
}

func (f *ledgerFixture) seedDonation(t *testing.T, ownerID, title string) *entity.Donation {
	t.Helper()
	d := &entity.Donation{
		OwnerID:     ownerID,
		Title:       title,
		Description: "desc",
		Category:    "clothing",
		Location:    "Centro",
		City:        "Porto Alegre",
		State:       "RS",
	}
	if err := f.donations.Create(context.Background(), d); err != nil {
		t.Fatalf("seed donation %s: %v", title, err)
	}
	return d
}

func TestSubmitValidation(t *testing.T) {
	f := newLedgerFixture()
	cases := []struct {
		name       string
		donationID string
		reason     string
	}{
		{"missing donation id", "", "need it"},
		{"missing reason", "some-id", ""},
		{"blank reason", "some-id", "   "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Submit(context.Background(), tc.donationID, "recipient-1", tc.reason)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestSubmitRequiresExistingDonation(t *testing.T) {
	f := newLedgerFixture()
	_, err := f.svc.Submit(context.Background(), "no-such-donation", "recipient-1", "need it")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSubmitThenListByRequester(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()
	donor := f.seedUser(t, entity.RoleDonor, "Ana", "ana@example.com", "+5551999990000")
	d := f.seedDonation(t, donor.ID, "Winter coat")

	req, err := f.svc.Submit(ctx, d.ID, "recipient-1", "winter is coming")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if req.Status != entity.StatusPending {
		t.Fatalf("status = %s, want pending", req.Status)
	}

	views, err := f.svc.ListByRequester(ctx, "recipient-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("got %d views, want 1", len(views))
	}
	if views[0].Request.ID != req.ID || views[0].Request.Status != entity.StatusPending {
		t.Fatalf("unexpected request in listing: %+v", views[0].Request)
	}
	if views[0].Donation == nil || views[0].Donation.Title != "Winter coat" {
		t.Fatal("listing should join the donation snapshot")
	}
}

func TestListByRequesterToleratesDeletedDonation(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()
	donor := f.seedUser(t, entity.RoleDonor, "Ana", "ana@example.com", "")
	d := f.seedDonation(t, donor.ID, "Winter coat")

	if _, err := f.svc.Submit(ctx, d.ID, "recipient-1", "need it"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := f.donations.Delete(ctx, d.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	views, err := f.svc.ListByRequester(ctx, "recipient-1")
	if err != nil {
		t.Fatalf("listing must not fail on a dangling donation id: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("got %d views, want 1", len(views))
	}
	if views[0].Donation != nil {
		t.Fatal("deleted donation should surface as nil, not as stale data")
	}
}

func TestListReceivedByDonor(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()
	donor := f.seedUser(t, entity.RoleDonor, "Ana", "ana@example.com", "")
	recipient := f.seedUser(t, entity.RoleRecipient, "Bruno", "bruno@example.com", "+5551988880000")
	d := f.seedDonation(t, donor.ID, "Winter coat")
	otherDonor := f.seedUser(t, entity.RoleDonor, "Carla", "carla@example.com", "")
	otherDonation := f.seedDonation(t, otherDonor.ID, "Bookshelf")

	if _, err := f.svc.Submit(ctx, d.ID, recipient.ID, "need it"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := f.svc.Submit(ctx, otherDonation.ID, recipient.ID, "also this"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	views, err := f.svc.ListReceivedByDonor(ctx, donor.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("donor should only see requests against their own donations, got %d", len(views))
	}
	v := views[0]
	if v.Donation == nil || v.Donation.ID != d.ID {
		t.Fatal("received view should carry the donation snapshot")
	}
	if v.Requester == nil || v.Requester.Name != "Bruno" {
		t.Fatal("received view should carry the requester profile")
	}
}

func TestListReceivedByDonorWithoutDonations(t *testing.T) {
	f := newLedgerFixture()
	views, err := f.svc.ListReceivedByDonor(context.Background(), "donor-without-postings")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("got %d views, want 0", len(views))
	}
	if f.requests.listByDonationsCalls != 0 {
		t.Fatal("no request query should run when the donor owns nothing")
	}
}

func TestDecideOutcomes(t *testing.T) {
	cases := []struct {
		name    string
		outcome entity.Outcome
		valid   bool
	}{
		{"accepted", entity.StatusAccepted, true},
		{"declined", entity.StatusDeclined, true},
		{"pending is not a decision", entity.StatusPending, false},
		{"unknown", entity.Outcome("maybe"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newLedgerFixture()
			ctx := context.Background()
			donor := f.seedUser(t, entity.RoleDonor, "Ana", "ana@example.com", "")
			recipient := f.seedUser(t, entity.RoleRecipient, "Bruno", "bruno@example.com", "")
			d := f.seedDonation(t, donor.ID, "Winter coat")
			req, err := f.svc.Submit(ctx, d.ID, recipient.ID, "need it")
			if err != nil {
				t.Fatalf("submit: %v", err)
			}

			_, err = f.svc.Decide(ctx, req.ID, donor.ID, tc.outcome)
			if tc.valid {
				if err != nil {
					t.Fatalf("decide: %v", err)
				}
				got, _ := f.requests.GetByID(ctx, req.ID)
				if got.Status != tc.outcome {
					t.Fatalf("status = %s, want %s", got.Status, tc.outcome)
				}
			} else {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("expected ErrValidation, got %v", err)
				}
				got, _ := f.requests.GetByID(ctx, req.ID)
				if got.Status != entity.StatusPending {
					t.Fatalf("status should stay pending, got %s", got.Status)
				}
			}
		})
	}
}

func TestDecideByNonOwner(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()
	donor := f.seedUser(t, entity.RoleDonor, "Ana", "ana@example.com", "")
	recipient := f.seedUser(t, entity.RoleRecipient, "Bruno", "bruno@example.com", "")
	d := f.seedDonation(t, donor.ID, "Winter coat")
	req, err := f.svc.Submit(ctx, d.ID, recipient.ID, "need it")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := f.svc.Decide(ctx, req.ID, recipient.ID, entity.StatusAccepted); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	got, _ := f.requests.GetByID(ctx, req.ID)
	if got.Status != entity.StatusPending {
		t.Fatalf("non-owner decision must not mutate the request, status = %s", got.Status)
	}
}

func TestDecideTwiceRejected(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()
	donor := f.seedUser(t, entity.RoleDonor, "Ana", "ana@example.com", "")
	recipient := f.seedUser(t, entity.RoleRecipient, "Bruno", "bruno@example.com", "")
	d := f.seedDonation(t, donor.ID, "Winter coat")
	req, err := f.svc.Submit(ctx, d.ID, recipient.ID, "need it")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := f.svc.Decide(ctx, req.ID, donor.ID, entity.StatusAccepted); err != nil {
		t.Fatalf("first decide: %v", err)
	}
	if _, err := f.svc.Decide(ctx, req.ID, donor.ID, entity.StatusDeclined); !errors.Is(err, ErrAlreadyDecided) {
		t.Fatalf("expected ErrAlreadyDecided, got %v", err)
	}
	got, _ := f.requests.GetByID(ctx, req.ID)
	if got.Status != entity.StatusAccepted {
		t.Fatalf("second decision must not flip the status, got %s", got.Status)
	}
}

func TestDecideAfterDonationDeleted(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()
	donor := f.seedUser(t, entity.RoleDonor, "Ana", "ana@example.com", "")
	recipient := f.seedUser(t, entity.RoleRecipient, "Bruno", "bruno@example.com", "")
	d := f.seedDonation(t, donor.ID, "Winter coat")
	req, err := f.svc.Submit(ctx, d.ID, recipient.ID, "need it")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := f.donations.Delete(ctx, d.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// Ownership can no longer be resolved, so the decision is refused.
	if _, err := f.svc.Decide(ctx, req.ID, donor.ID, entity.StatusAccepted); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	got, _ := f.requests.GetByID(ctx, req.ID)
	if got.Status != entity.StatusPending {
		t.Fatalf("status should stay pending, got %s", got.Status)
	}
}

func TestDecideMissingRequest(t *testing.T) {
	f := newLedgerFixture()
	if _, err := f.svc.Decide(context.Background(), "no-such-request", "donor-1", entity.StatusAccepted); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// Full donor/recipient round trip: post, request, accept, and both sides
// observing the outcome.
func TestAcceptFlow(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()
	donor := f.seedUser(t, entity.RoleDonor, "Ana Souza", "ana@example.com", "+5551999990000")
	recipient := f.seedUser(t, entity.RoleRecipient, "Bruno Lima", "bruno@example.com", "+5551988880000")
	d := f.seedDonation(t, donor.ID, "Winter coat")

	req, err := f.svc.Submit(ctx, d.ID, recipient.ID, "cold season ahead")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	received, err := f.svc.ListReceivedByDonor(ctx, donor.ID)
	if err != nil {
		t.Fatalf("list received: %v", err)
	}
	if len(received) != 1 || received[0].Request.Status != entity.StatusPending {
		t.Fatalf("donor should see one pending request, got %+v", received)
	}

	contact, err := f.svc.Decide(ctx, req.ID, donor.ID, entity.StatusAccepted)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if contact == nil || contact.Name != "Bruno Lima" || contact.Phone != "+5551988880000" || contact.Email != "bruno@example.com" {
		t.Fatalf("acceptance should hand back the requester's contact, got %+v", contact)
	}

	sent, err := f.svc.ListByRequester(ctx, recipient.ID)
	if err != nil {
		t.Fatalf("list sent: %v", err)
	}
	if len(sent) != 1 || sent[0].Request.Status != entity.StatusAccepted {
		t.Fatalf("recipient should see the accepted request, got %+v", sent)
	}
}
