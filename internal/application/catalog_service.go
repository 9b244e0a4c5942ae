package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Lucas-Nascimentto/projeto-fan/internal/domain/entity"
	repo "github.com/Lucas-Nascimentto/projeto-fan/internal/domain/repository"
	"github.com/Lucas-Nascimentto/projeto-fan/pkg/helpers"
)

// ObjectStore accepts a byte stream and returns a durable public URL.
type ObjectStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// Photo is an optional image attached to a create or update call.
type Photo struct {
	Content     []byte
	Filename    string
	ContentType string
}

// CatalogService owns donation records: creation, owner-only edit and
// delete, and the listing/filtering surface recipients browse.
type CatalogService struct {
	Donations repo.DonationRepository
	Objects   ObjectStore
	Pub       *helpers.RabbitPublisher
	Logger    *logrus.Logger
	ES        *elasticsearch.Client
	ESIndex   string
}

func NewCatalogService(donations repo.DonationRepository, objects ObjectStore, pub *helpers.RabbitPublisher, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *CatalogService {
	return &CatalogService{
		Donations: donations,
		Objects:   objects,
		Pub:       pub,
		Logger:    logger,
		ES:        es,
		ESIndex:   esIndex,
	}
}

// DonationInput carries the caller-supplied fields of a donation. On
// update, empty fields leave the stored value untouched; city and state
// in particular always keep their prior value when omitted.
type DonationInput struct {
	Title       string
	Description string
	Category    string
	Location    string
	City        string
	State       string
}

func (in DonationInput) validateRequired() error {
	for _, f := range []struct {
		name  string
		value string
	}{
		{"title", in.Title},
		{"description", in.Description},
		{"category", in.Category},
		{"location", in.Location},
		{"city", in.City},
		{"state", in.State},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, f.name)
		}
	}
	return nil
}

// Create validates the input, uploads the photo first when one is
// supplied, and only then persists the record. An upload failure aborts
// the whole create; a completed upload is not rolled back if the record
// write fails afterwards.
func (s *CatalogService) Create(ctx context.Context, ownerID string, in DonationInput, photo *Photo) (*entity.Donation, error) {
	if err := in.validateRequired(); err != nil {
		return nil, err
	}

	photoURL := ""
	if photo != nil {
		url, err := s.uploadPhoto(ctx, ownerID, photo)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		photoURL = url
	}

	d := &entity.Donation{
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Location:    in.Location,
		City:        in.City,
		State:       in.State,
		PhotoURL:    photoURL,
		CreatedAt:   time.Now(),
	}
	if err := s.Donations.Create(ctx, d); err != nil {
		return nil, err
	}

	_ = s.indexDonation(ctx, d)
	publishEvent(ctx, s.Pub, s.Logger, Event{
		Type:     EventDonationCreated,
		ActorID:  ownerID,
		EntityID: d.ID,
		Payload:  map[string]any{"title": d.Title, "city": d.City},
	})
	return d, nil
}

// Update applies partial fields onto the stored donation. Only the
// owner may edit; a new photo replaces the stored URL only when
// supplied.
func (s *CatalogService) Update(ctx context.Context, donationID, callerID string, in DonationInput, photo *Photo) (*entity.Donation, error) {
	d, err := s.Donations.GetByID(ctx, donationID)
	if err != nil {
		return nil, classifyLookup(err, "donation")
	}
	if err := requireOwner(d.OwnerID, callerID); err != nil {
		return nil, err
	}

	if in.Title != "" {
		d.Title = in.Title
	}
	if in.Description != "" {
		d.Description = in.Description
	}
	if in.Category != "" {
		d.Category = in.Category
	}
	if in.Location != "" {
		d.Location = in.Location
	}
	if in.City != "" {
		d.City = in.City
	}
	if in.State != "" {
		d.State = in.State
	}
	if photo != nil {
		url, err := s.uploadPhoto(ctx, d.OwnerID, photo)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		d.PhotoURL = url
	}

	if err := s.Donations.Update(ctx, d); err != nil {
		return nil, classifyLookup(err, "donation")
	}

	_ = s.indexDonation(ctx, d)
	return d, nil
}

// Delete removes the record only. Requests referencing the donation
// stay behind with a dangling donation id.
func (s *CatalogService) Delete(ctx context.Context, donationID, callerID string) error {
	d, err := s.Donations.GetByID(ctx, donationID)
	if err != nil {
		return classifyLookup(err, "donation")
	}
	if err := requireOwner(d.OwnerID, callerID); err != nil {
		return err
	}

	if err := s.Donations.Delete(ctx, donationID); err != nil {
		return classifyLookup(err, "donation")
	}

	s.deleteIndexed(ctx, donationID)
	publishEvent(ctx, s.Pub, s.Logger, Event{
		Type:     EventDonationDeleted,
		ActorID:  callerID,
		EntityID: donationID,
	})
	return nil
}

// ListOwnedBy returns the user's own postings, newest first.
func (s *CatalogService) ListOwnedBy(ctx context.Context, userID string) ([]*entity.Donation, error) {
	return s.Donations.ListByOwner(ctx, userID)
}

// ListAvailableTo returns every other user's postings, newest first.
// Users never see their own donations as available.
func (s *CatalogService) ListAvailableTo(ctx context.Context, userID string) ([]*entity.Donation, error) {
	return s.Donations.ListExcludingOwner(ctx, userID, repo.DonationFilter{Sort: repo.SortRecent})
}

// Filter applies the recognized exact-match criteria conjunctively,
// with the same self-exclusion as ListAvailableTo. An absent sort
// leaves store-native order.
func (s *CatalogService) Filter(ctx context.Context, f repo.DonationFilter, excludeUserID string) ([]*entity.Donation, error) {
	return s.Donations.ListExcludingOwner(ctx, excludeUserID, f)
}

func (s *CatalogService) uploadPhoto(ctx context.Context, ownerID string, photo *Photo) (string, error) {
	if s.Objects == nil {
		return "", errors.New("object store not configured")
	}
	ext := strings.ToLower(filepath.Ext(photo.Filename))
	objectPath := filepath.ToSlash(filepath.Join("donations", ownerID, uuid.NewString()+ext))
	return s.Objects.Upload(ctx, objectPath, photo.ContentType, bytes.NewReader(photo.Content))
}

func (s *CatalogService) indexDonation(ctx context.Context, d *entity.Donation) error {
	if s.ES == nil || s.ESIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":          d.ID,
		"owner_id":    d.OwnerID,
		"title":       d.Title,
		"description": d.Description,
		"category":    d.Category,
		"city":        d.City,
		"state":       d.State,
		"created_at":  d.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: d.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("donation_id", d.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("donation_id", d.ID).Warn("es index response error")
	}
	return nil
}

func (s *CatalogService) deleteIndexed(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if res, err := req.Do(c, s.ES); err == nil {
		_ = res.Body.Close()
	}
}

// Search performs a plain multi_match over title, description and
// category. No relevance tuning beyond field boosts.
func (s *CatalogService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "category"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// classifyLookup maps a repository miss onto the core taxonomy and
// lets every other storage error surface unclassified.
func classifyLookup(err error, what string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}
