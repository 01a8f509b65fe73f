package handlers

import (
	"net/http"

	"hostel-shop-api/response"
	"hostel-shop-api/services"

	"github.com/gin-gonic/gin"
)

// ListCategories returns the managed categories (public)
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.Catalog.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(categories), "categories": categories})
}

func (h *Handler) GetCategory(c *gin.Context) {
	category, err := h.Catalog.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req services.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	category, err := h.Catalog.CreateCategory(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "category": category})
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	var req services.CategoryPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	category, err := h.Catalog.UpdateCategory(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category updated", "category": category})
}

// DeleteCategory refuses while products still reference the category
func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.Catalog.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
