package market

import (
	"errors"
	"net/http"
	"strconv"

	"fitlink/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/market")
	{
		g.GET("/listings", h.Browse)
		g.POST("/listings", h.CreateListing)
		g.GET("/listings/:id", h.GetListing)
		g.PATCH("/listings/:id", h.UpdateListing)
		g.DELETE("/listings/:id", h.DeleteListing)
	}
}

func (h *Handler) Browse(c *gin.Context) {
	var req BrowseRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_QUERY", "Invalid query parameters")
		return
	}

	listings, err := h.service.Browse(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "BROWSE_FAILED", "Failed to browse listings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"listings": listings})
}

func (h *Handler) CreateListing(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	l, err := h.service.CreateListing(c.Request.Context(), userID, req)
	if err != nil {
		h.writeError(c, err, "CREATE_FAILED", "Failed to create listing")
		return
	}

	response.Success(c, http.StatusCreated, l)
}

func (h *Handler) GetListing(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	l, err := h.service.GetListing(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "GET_FAILED", "Failed to load listing")
		return
	}

	response.Success(c, http.StatusOK, l)
}

func (h *Handler) UpdateListing(c *gin.Context) {
	userID := c.GetInt64("user_id")
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	var req UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	l, err := h.service.UpdateListing(c.Request.Context(), id, userID, req)
	if err != nil {
		h.writeError(c, err, "UPDATE_FAILED", "Failed to update listing")
		return
	}

	response.Success(c, http.StatusOK, l)
}

func (h *Handler) DeleteListing(c *gin.Context) {
	userID := c.GetInt64("user_id")
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteListing(c.Request.Context(), id, userID); err != nil {
		h.writeError(c, err, "DELETE_FAILED", "Failed to delete listing")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) listingID(c *gin.Context) (int64, bool) {
	if c.GetInt64("user_id") == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return 0, false
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid listing ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error, fallbackCode, fallbackMsg string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Listing not found")
	case errors.Is(err, ErrNotSeller):
		response.Error(c, http.StatusForbidden, "NOT_SELLER", "Only the seller may modify a listing")
	default:
		response.Error(c, http.StatusInternalServerError, fallbackCode, fallbackMsg)
	}
}
