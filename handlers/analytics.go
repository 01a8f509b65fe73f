package handlers

import (
	"net/http"

	"hostel-shop-api/models"
	"hostel-shop-api/response"

	"github.com/gin-gonic/gin"
)

type TrackEventRequest struct {
	ProductID string           `json:"product_id" binding:"required"`
	EventType models.EventType `json:"event_type" binding:"required"`
}

// TrackEvent records a guest interaction. Product and event type are stored as sent.
func (h *Handler) TrackEvent(c *gin.Context) {
	var req TrackEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.Analytics.TrackEvent(c.Request.Context(), req.ProductID, req.EventType); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Event tracked"})
}

func (h *Handler) ProductAnalytics(c *gin.Context) {
	metrics, err := h.Analytics.ProductAnalytics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(metrics), "products": metrics})
}

func (h *Handler) AnalyticsSummary(c *gin.Context) {
	summary, err := h.Analytics.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
