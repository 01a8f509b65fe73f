package handlers

import (
	"net/http"

	"hostel-shop-api/response"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.Settings.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

type UpdateSettingsRequest struct {
	WhatsAppNumber string `json:"whatsapp_number" binding:"required"`
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	settings, err := h.Settings.UpdateWhatsAppNumber(c.Request.Context(), req.WhatsAppNumber)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Settings updated", "settings": settings})
}
