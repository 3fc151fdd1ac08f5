package booking

import (
	"context"
	"net/http"
	"strconv"

	"renthub/internal/domain"
	"renthub/internal/middleware"
	"renthub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations", h.CreateReservation)
	rg.GET("/reservations/my", h.ListMine)
	rg.GET("/reservations/owner", h.ListOwned)
	rg.GET("/reservations/:id", h.GetReservation)
	rg.POST("/reservations/:id/accept", h.Accept)
	rg.POST("/reservations/:id/reject", h.Reject)
	rg.POST("/reservations/:id/cancel", h.Cancel)
	rg.POST("/reservations/:id/complete", h.Complete)
	rg.PATCH("/reservations/:id/dates", h.UpdateDates)
}

func (h *Handler) CreateReservation(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.CreateReservation(c.Request.Context(), c.GetInt64(middleware.CtxUserID), req)
	if err != nil {
		response.Domain(c, err)
		return
	}

	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) GetReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, err := h.service.GetReservation(c.Request.Context(), id, c.GetInt64(middleware.CtxUserID))
	if err != nil {
		response.Domain(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) ListMine(c *gin.Context) {
	page, limit := pagination(c)
	rows, err := h.service.ListByTenant(c.Request.Context(), c.GetInt64(middleware.CtxUserID), page, limit)
	if err != nil {
		response.Domain(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

func (h *Handler) ListOwned(c *gin.Context) {
	page, limit := pagination(c)
	rows, err := h.service.ListByOwner(c.Request.Context(), c.GetInt64(middleware.CtxUserID), page, limit)
	if err != nil {
		response.Domain(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

func (h *Handler) Accept(c *gin.Context) {
	h.doTransition(c, h.service.Accept)
}

func (h *Handler) Reject(c *gin.Context) {
	h.doTransition(c, h.service.Reject)
}

func (h *Handler) Cancel(c *gin.Context) {
	h.doTransition(c, h.service.Cancel)
}

func (h *Handler) Complete(c *gin.Context) {
	h.doTransition(c, h.service.Complete)
}

func (h *Handler) UpdateDates(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.UpdateDates(c.Request.Context(), id, c.GetInt64(middleware.CtxUserID), req)
	if err != nil {
		response.Domain(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) doTransition(c *gin.Context, fn func(ctx context.Context, id, actorID int64) (*domain.Reservation, error)) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, err := fn(c.Request.Context(), id, c.GetInt64(middleware.CtxUserID))
	if err != nil {
		response.Domain(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}

func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return page, limit
}
