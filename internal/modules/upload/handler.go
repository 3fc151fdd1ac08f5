package upload

import (
	"errors"
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
	rg.POST("/uploads", h.Upload)
	rg.GET("/uploads", h.ListMine)
	rg.GET("/uploads/:id", h.GetByID)
	rg.DELETE("/uploads/:id", h.Delete)
}

func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "No file provided")
		return
	}

	u, err := h.service.Upload(c.Request.Context(), c.GetInt64(middleware.CtxUserID), c.PostForm("folder"), fileHeader)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyFile), errors.Is(err, ErrInvalidMimeType):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrFileTooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
		default:
			c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Upload failed")
		}
		return
	}

	response.Success(c, http.StatusCreated, u)
}

func (h *Handler) GetByID(c *gin.Context) {
	u, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrUploadNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load upload")
		return
	}
	response.Success(c, http.StatusOK, u)
}

func (h *Handler) ListMine(c *gin.Context) {
	rows, err := h.service.ListByUser(c.Request.Context(), c.GetInt64(middleware.CtxUserID))
	if err != nil {
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list uploads")
		return
	}
	response.Success(c, http.StatusOK, rows)
}

func (h *Handler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.Param("id"), c.GetInt64(middleware.CtxUserID))
	if err != nil {
		switch {
		case errors.Is(err, ErrUploadNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
		case errors.Is(err, ErrNotOwner):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
		default:
			c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete upload")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
