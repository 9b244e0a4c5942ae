package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Lucas-Nascimentto/projeto-fan/internal/application"
	"github.com/Lucas-Nascimentto/projeto-fan/internal/domain/entity"
	repo "github.com/Lucas-Nascimentto/projeto-fan/internal/domain/repository"
	"github.com/Lucas-Nascimentto/projeto-fan/pkg/response"
)

type DonationHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewDonationHandler(svc *application.CatalogService, logger *logrus.Logger) *DonationHandler {
	return &DonationHandler{Svc: svc, Logger: logger}
}

// Create accepts multipart form data: the donation fields plus an
// optional "photo" file part.
func (h *DonationHandler) Create(c *gin.Context) {
	uid := c.GetString("userID")

	photo, err := photoFromForm(c)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid photo upload", nil)
		return
	}

	d, err := h.Svc.Create(c.Request.Context(), uid, donationInputFromForm(c), photo)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, donationJSON(d), "donation created", nil)
}

func (h *DonationHandler) Update(c *gin.Context) {
	uid := c.GetString("userID")

	photo, err := photoFromForm(c)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid photo upload", nil)
		return
	}

	d, err := h.Svc.Update(c.Request.Context(), c.Param("id"), uid, donationInputFromForm(c), photo)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, donationJSON(d), "donation updated", nil)
}

func (h *DonationHandler) Delete(c *gin.Context) {
	uid := c.GetString("userID")
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), uid); err != nil {
		respondError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "donation deleted", nil)
}

// ListMine returns the caller's own postings, newest first.
func (h *DonationHandler) ListMine(c *gin.Context) {
	ds, err := h.Svc.ListOwnedBy(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, donationsJSON(ds), "my donations", nil)
}

// ListAvailable returns other users' postings. With any of the
// category/city/state/sort query parameters set it behaves as the
// filtered listing; without them, newest first.
func (h *DonationHandler) ListAvailable(c *gin.Context) {
	uid := c.GetString("userID")
	f := repo.DonationFilter{
		Category: c.Query("category"),
		City:     c.Query("city"),
		State:    c.Query("state"),
		Sort:     sortOrder(c.Query("sort")),
	}

	var (
		ds  []*entity.Donation
		err error
	)
	if f == (repo.DonationFilter{}) {
		ds, err = h.Svc.ListAvailableTo(c.Request.Context(), uid)
	} else {
		ds, err = h.Svc.Filter(c.Request.Context(), f, uid)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, donationsJSON(ds), "available donations", nil)
}

func (h *DonationHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}

func donationInputFromForm(c *gin.Context) application.DonationInput {
	return application.DonationInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		Location:    c.PostForm("location"),
		City:        c.PostForm("city"),
		State:       c.PostForm("state"),
	}
}

// photoFromForm reads the optional "photo" file part. A missing part is
// not an error; a present but unreadable one is.
func photoFromForm(c *gin.Context) (*application.Photo, error) {
	fh, err := c.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &application.Photo{
		Content:     content,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	}, nil
}

func sortOrder(s string) repo.SortOrder {
	switch s {
	case "recent":
		return repo.SortRecent
	case "oldest":
		return repo.SortOldest
	}
	return repo.SortNone
}

func donationJSON(d *entity.Donation) gin.H {
	out := gin.H{
		"id":          d.ID,
		"owner_id":    d.OwnerID,
		"title":       d.Title,
		"description": d.Description,
		"category":    d.Category,
		"location":    d.Location,
		"city":        d.City,
		"state":       d.State,
		"created_at":  d.CreatedAt,
		"updated_at":  d.UpdatedAt,
	}
	if d.PhotoURL != "" {
		out["photo_url"] = d.PhotoURL
	}
	return out
}

func donationsJSON(ds []*entity.Donation) []gin.H {
	out := make([]gin.H, 0, len(ds))
	for _, d := range ds {
		out = append(out, donationJSON(d))
	}
	return out
}
