package admin

import (
	"net/http"
	"strconv"

	"renthub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects rg to already be gated to the admin role.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/listings/pending", h.GetPendingListings)
	rg.POST("/listings/:id/approve", h.ApproveListing)
	rg.POST("/listings/:id/reject", h.RejectListing)
	rg.GET("/stats", h.GetStats)
}

func (h *Handler) GetPendingListings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	rows, total, err := h.service.GetPendingListings(c.Request.Context(), page, limit)
	if err != nil {
		response.Domain(c, err)
		return
	}

	response.Success(c, http.StatusOK, PendingListingsResponse{
		Listings: rows,
		Total:    total,
		Page:     page,
		Limit:    limit,
	})
}

func (h *Handler) ApproveListing(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	l, err := h.service.ApproveListing(c.Request.Context(), id)
	if err != nil {
		response.Domain(c, err)
		return
	}

	response.Success(c, http.StatusOK, l)
}

func (h *Handler) RejectListing(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req RejectListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Reason is required")
		return
	}

	l, err := h.service.RejectListing(c.Request.Context(), id, req.Reason)
	if err != nil {
		response.Domain(c, err)
		return
	}

	response.Success(c, http.StatusOK, l)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		response.Domain(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}
