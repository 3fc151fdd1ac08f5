package payment

import (
	"net/http"
	"strconv"

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
	rg.POST("/payments", h.CreatePayment)
	rg.GET("/reservations/:id/payments", h.ListByReservation)
	rg.POST("/payments/:id/validate", h.ValidatePayment)
	rg.POST("/payments/:id/fail", h.FailPayment)
	rg.POST("/payments/:id/refund", h.RefundPayment)
	rg.POST("/reservations/:id/deposit-refund", h.RefundDeposit)
}

func (h *Handler) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.CreatePayment(c.Request.Context(), c.GetInt64(middleware.CtxUserID), req)
	if err != nil {
		response.Domain(c, err)
		return
	}

	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) ListByReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	rows, err := h.service.ListByReservation(c.Request.Context(), id, c.GetInt64(middleware.CtxUserID))
	if err != nil {
		response.Domain(c, err)
		return
	}

	response.Success(c, http.StatusOK, rows)
}

func (h *Handler) ValidatePayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	p, err := h.service.ValidatePayment(c.Request.Context(), id,
		c.GetInt64(middleware.CtxUserID), c.GetString(middleware.CtxRole))
	if err != nil {
		response.Domain(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

func (h *Handler) FailPayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req FailPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.FailPayment(c.Request.Context(), id,
		c.GetInt64(middleware.CtxUserID), c.GetString(middleware.CtxRole), req.Reason)
	if err != nil {
		response.Domain(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

func (h *Handler) RefundPayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	p, err := h.service.RefundPayment(c.Request.Context(), id,
		c.GetInt64(middleware.CtxUserID), c.GetString(middleware.CtxRole))
	if err != nil {
		response.Domain(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

func (h *Handler) RefundDeposit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	p, err := h.service.RefundDeposit(c.Request.Context(), id, c.GetInt64(middleware.CtxUserID))
	if err != nil {
		response.Domain(c, err)
		return
	}

	response.Success(c, http.StatusCreated, p)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}
