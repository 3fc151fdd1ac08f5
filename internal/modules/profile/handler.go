package profile

import (
	"net/http"

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
	rg.GET("/profile", h.GetProfile)
	rg.PATCH("/profile/student", h.UpdateStudentProfile)
}

func (h *Handler) GetProfile(c *gin.Context) {
	p, err := h.service.GetProfile(c.Request.Context(), c.GetInt64(middleware.CtxUserID))
	if err != nil {
		response.Domain(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) UpdateStudentProfile(c *gin.Context) {
	var req UpdateStudentProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.UpdateStudentProfile(c.Request.Context(), c.GetInt64(middleware.CtxUserID), req)
	if err != nil {
		response.Domain(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}
