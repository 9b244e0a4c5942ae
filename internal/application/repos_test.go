package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Lucas-Nascimentto/projeto-fan/internal/domain/entity"
	repo "github.com/Lucas-Nascimentto/projeto-fan/internal/domain/repository"
)

// In-memory fakes backing the service tests. They mirror the repository
// contracts, including repo.ErrNotFound on misses and newest-first
// ordering of the listings.

type memUserRepo struct {
	mu   sync.Mutex
	byID map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *memUserRepo) Update(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[u.ID]
	if !ok {
		return repo.ErrNotFound
	}
	u.UpdatedAt = time.Now()
	cp := *u
	// cargo is not writable through the update path, same as the SQL
	cp.Role = stored.Role
	r.byID[u.ID] = &cp
	return nil
}

type memDonationRepo struct {
	mu    sync.Mutex
	byID  map[string]*entity.Donation
	order []string // insertion order stands in for store-native order
}

func newMemDonationRepo() *memDonationRepo {
	return &memDonationRepo{byID: map[string]*entity.Donation{}}
}

func (r *memDonationRepo) Create(ctx context.Context, d *entity.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	d.UpdatedAt = d.CreatedAt
	cp := *d
	r.byID[d.ID] = &cp
	r.order = append(r.order, d.ID)
	return nil
}

func (r *memDonationRepo) GetByID(ctx context.Context, id string) (*entity.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *memDonationRepo) Update(ctx context.Context, d *entity.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[d.ID]; !ok {
		return repo.ErrNotFound
	}
	d.UpdatedAt = time.Now()
	cp := *d
	r.byID[d.ID] = &cp
	return nil
}

func (r *memDonationRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memDonationRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Donation
	for _, id := range r.order {
		if d := r.byID[id]; d.OwnerID == ownerID {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memDonationRepo) ListExcludingOwner(ctx context.Context, ownerID string, f repo.DonationFilter) ([]*entity.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Donation
	for _, id := range r.order {
		d := r.byID[id]
		if d.OwnerID == ownerID {
			continue
		}
		if f.Category != "" && d.Category != f.Category {
			continue
		}
		if f.City != "" && d.City != f.City {
			continue
		}
		if f.State != "" && d.State != f.State {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	switch f.Sort {
	case repo.SortRecent:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	case repo.SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	}
	return out, nil
}

func (r *memDonationRepo) IDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for _, id := range r.order {
		if r.byID[id].OwnerID == ownerID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type memRequestRepo struct {
	mu                   sync.Mutex
	byID                 map[string]*entity.DonationRequest
	order                []string
	listByDonationsCalls int
}

func newMemRequestRepo() *memRequestRepo {
	return &memRequestRepo{byID: map[string]*entity.DonationRequest{}}
}

func (r *memRequestRepo) Create(ctx context.Context, req *entity.DonationRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	req.UpdatedAt = req.CreatedAt
	cp := *req
	r.byID[req.ID] = &cp
	r.order = append(r.order, req.ID)
	return nil
}

func (r *memRequestRepo) GetByID(ctx context.Context, id string) (*entity.DonationRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *memRequestRepo) UpdateStatus(ctx context.Context, id string, status entity.RequestStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	req.Status = status
	req.UpdatedAt = time.Now()
	return nil
}

func (r *memRequestRepo) ListByRequester(ctx context.Context, requesterID string) ([]*entity.DonationRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.DonationRequest
	for _, id := range r.order {
		if req := r.byID[id]; req.RequesterID == requesterID {
			cp := *req
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memRequestRepo) ListByDonations(ctx context.Context, donationIDs []string) ([]*entity.DonationRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listByDonationsCalls++
	wanted := map[string]bool{}
	for _, id := range donationIDs {
		wanted[id] = true
	}
	var out []*entity.DonationRequest
	for _, id := range r.order {
		if req := r.byID[id]; wanted[req.DonationID] {
			cp := *req
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// fakeObjectStore records uploads and can be told to fail.
type fakeObjectStore struct {
	mu      sync.Mutex
	fail    bool
	uploads []string
}

func (s *fakeObjectStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return "", errors.New("bucket unavailable")
	}
	s.uploads = append(s.uploads, objectPath)
	return fmt.Sprintf("https://objects.test/%s", objectPath), nil
}
