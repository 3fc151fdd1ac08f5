package listing

import (
	"context"
	"net/http"
	"strconv"

	"renthub/internal/domain"
	"renthub/internal/middleware"
	"renthub/internal/pkg/response"
	"renthub/internal/pkg/validator"
	"renthub/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes exposes search and read endpoints without auth.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/listings", h.Search)
	rg.GET("/listings/:id", h.GetListing)
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/listings", h.CreateListing)
	rg.GET("/listings/my", h.ListMine)
	rg.PATCH("/listings/:id", h.UpdateListing)
	rg.DELETE("/listings/:id", h.DeleteListing)
	rg.POST("/listings/:id/publish", h.PublishListing)
	rg.POST("/listings/:id/unpublish", h.UnpublishListing)
	rg.POST("/listings/:id/photos", h.AddPhoto)
	rg.DELETE("/listings/:id/photos", h.RemovePhoto)
}

func (h *Handler) CreateListing(c *gin.Context) {
	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(&req); fields != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid listing fields", fields)
		return
	}

	l, err := h.service.CreateListing(c.Request.Context(), c.GetInt64(middleware.CtxUserID), req)
	if err != nil {
		response.Domain(c, err)
		return
	}

	response.Success(c, http.StatusCreated, l)
}

func (h *Handler) GetListing(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	l, err := h.service.GetListing(c.Request.Context(), id)
	if err != nil {
		response.Domain(c, err)
		return
	}

	response.Success(c, http.StatusOK, l)
}

func (h *Handler) ListMine(c *gin.Context) {
	rows, err := h.service.ListByOwner(c.Request.Context(), c.GetInt64(middleware.CtxUserID))
	if err != nil {
		response.Domain(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

func (h *Handler) UpdateListing(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	l, err := h.service.UpdateListing(c.Request.Context(), c.GetInt64(middleware.CtxUserID), id, req)
	if err != nil {
		response.Domain(c, err)
		return
	}

	response.Success(c, http.StatusOK, l)
}

func (h *Handler) DeleteListing(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	err := h.service.DeleteListing(c.Request.Context(),
		c.GetInt64(middleware.CtxUserID), c.GetString(middleware.CtxRole), id)
	if err != nil {
		response.Domain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) PublishListing(c *gin.Context) {
	h.mutate(c, h.service.PublishListing)
}

func (h *Handler) UnpublishListing(c *gin.Context) {
	h.mutate(c, h.service.UnpublishListing)
}

func (h *Handler) AddPhoto(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req AddPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	l, err := h.service.AddPhoto(c.Request.Context(), c.GetInt64(middleware.CtxUserID), id, req.URL)
	if err != nil {
		response.Domain(c, err)
		return
	}

	response.Success(c, http.StatusOK, l)
}

func (h *Handler) RemovePhoto(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req AddPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	l, err := h.service.RemovePhoto(c.Request.Context(), c.GetInt64(middleware.CtxUserID), id, req.URL)
	if err != nil {
		response.Domain(c, err)
		return
	}

	response.Success(c, http.StatusOK, l)
}

func (h *Handler) Search(c *gin.Context) {
	f := repository.ListingFilters{
		PropertyType: c.Query("property_type"),
		City:         c.Query("city"),
		District:     c.Query("district"),
		Sort:         c.Query("sort"),
	}
	f.MinPrice, _ = strconv.ParseFloat(c.DefaultQuery("min_price", "0"), 64)
	f.MaxPrice, _ = strconv.ParseFloat(c.DefaultQuery("max_price", "0"), 64)
	f.MinRooms, _ = strconv.Atoi(c.DefaultQuery("min_rooms", "0"))
	f.MinArea, _ = strconv.ParseFloat(c.DefaultQuery("min_area", "0"), 64)
	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if v, ok := c.GetQuery("furnished"); ok {
		furnished := v == "true" || v == "1"
		f.Furnished = &furnished
	}

	items, total, err := h.service.Search(c.Request.Context(), f)
	if err != nil {
		response.Domain(c, err)
		return
	}

	page := f.Page
	if page <= 0 {
		page = 1
	}
	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	response.Success(c, http.StatusOK, SearchResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	})
}

func (h *Handler) mutate(c *gin.Context, fn func(ctx context.Context, actorID, listingID int64) (*domain.Listing, error)) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	l, err := fn(c.Request.Context(), c.GetInt64(middleware.CtxUserID), id)
	if err != nil {
		response.Domain(c, err)
		return
	}

	response.Success(c, http.StatusOK, l)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}
