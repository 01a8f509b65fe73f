package handlers

import (
	"encoding/base64"
	"io"
	"net/http"
	"strconv"
	"strings"

	"hostel-shop-api/response"
	"hostel-shop-api/services"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

const maxImageSize = 5 << 20

// ListProducts returns catalog products (public). Only active products are
// listed unless active_only=false.
func (h *Handler) ListProducts(c *gin.Context) {
	q := services.DefaultProductQuery()
	if v := c.Query("active_only"); v != "" {
		activeOnly, err := strconv.ParseBool(v)
		if err != nil {
			response.BadRequest(c, "active_only must be true or false")
			return
		}
		q.ActiveOnly = activeOnly
	}
	if v := c.Query("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			response.BadRequest(c, "featured must be true or false")
			return
		}
		q.Featured = &featured
	}
	q.Category = c.Query("category")
	q.Type = c.Query("type")

	products, err := h.Catalog.ListProducts(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(products), "products": products})
}

func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.Catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req services.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	product, err := h.Catalog.CreateProduct(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product created", "product": product})
}

// UpdateProduct applies a sparse patch: omitted fields are left as they are
func (h *Handler) UpdateProduct(c *gin.Context) {
	var req services.ProductPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	product, err := h.Catalog.UpdateProduct(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated", "product": product})
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.Catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// ProductCategories lists the distinct category strings used by products,
// which may differ from the managed categories.
func (h *Handler) ProductCategories(c *gin.Context) {
	categories, err := h.Catalog.DistinctCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// UploadImage returns the uploaded image inlined as a data URL. The type is
// sniffed from the content, not taken from the client.
func (h *Handler) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	if fh.Size > maxImageSize {
		response.BadRequest(c, "File is too large (max 5MB)")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxImageSize+1))
	if err != nil {
		response.Error(c, err)
		return
	}
	mtype := mimetype.Detect(content)
	if !strings.HasPrefix(mtype.String(), "image/") {
		response.Error(c, &services.ValidationError{Field: "file", Message: "must be an image"})
		return
	}

	imageURL := "data:" + mtype.String() + ";base64," + base64.StdEncoding.EncodeToString(content)
	c.JSON(http.StatusOK, gin.H{"image_url": imageURL})
}
