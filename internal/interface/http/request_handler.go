package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Lucas-Nascimentto/projeto-fan/internal/application"
	"github.com/Lucas-Nascimentto/projeto-fan/internal/domain/entity"
	"github.com/Lucas-Nascimentto/projeto-fan/pkg/response"
	"github.com/Lucas-Nascimentto/projeto-fan/pkg/validation"
)

type RequestHandler struct {
	Svc    *application.LedgerService
	Logger *logrus.Logger
}

func NewRequestHandler(svc *application.LedgerService, logger *logrus.Logger) *RequestHandler {
	return &RequestHandler{Svc: svc, Logger: logger}
}

type submitRequest struct {
	DonationID string `json:"donation_id" binding:"required"`
	Reason     string `json:"reason" binding:"required"`
}

type decideRequest struct {
	Outcome string `json:"outcome" binding:"required,oneof=accepted declined"`
}

func (h *RequestHandler) Submit(c *gin.Context) {
	uid := c.GetString("userID")
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	r, err := h.Svc.Submit(c.Request.Context(), req.DonationID, uid, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, requestJSON(r), "request submitted", nil)
}

// ListSent returns the caller's own requests with donation snapshots.
func (h *RequestHandler) ListSent(c *gin.Context) {
	views, err := h.Svc.ListByRequester(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(views))
	for _, v := range views {
		item := gin.H{"request": requestJSON(v.Request), "donation": nil}
		if v.Donation != nil {
			item["donation"] = donationJSON(v.Donation)
		}
		out = append(out, item)
	}
	response.Success(c, http.StatusOK, out, "sent requests", nil)
}

// ListReceived returns requests against the caller's donations,
// enriched with the requester profile.
func (h *RequestHandler) ListReceived(c *gin.Context) {
	views, err := h.Svc.ListReceivedByDonor(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(views))
	for _, v := range views {
		item := gin.H{"request": requestJSON(v.Request), "donation": nil, "requester": nil}
		if v.Donation != nil {
			item["donation"] = donationJSON(v.Donation)
		}
		if v.Requester != nil {
			item["requester"] = v.Requester
		}
		out = append(out, item)
	}
	response.Success(c, http.StatusOK, out, "received requests", nil)
}

func (h *RequestHandler) Decide(c *gin.Context) {
	uid := c.GetString("userID")
	var req decideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	contact, err := h.Svc.Decide(c.Request.Context(), c.Param("id"), uid, entity.RequestStatus(req.Outcome))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"outcome": req.Outcome,
		"requester_contact": gin.H{
			"name":  contact.Name,
			"phone": contact.Phone,
			"email": contact.Email,
		},
	}, "request decided", nil)
}

func requestJSON(r *entity.DonationRequest) gin.H {
	return gin.H{
		"id":           r.ID,
		"donation_id":  r.DonationID,
		"requester_id": r.RequesterID,
		"reason":       r.Reason,
		"status":       string(r.Status),
		"created_at":   r.CreatedAt,
		"updated_at":   r.UpdatedAt,
	}
}
