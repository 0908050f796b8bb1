package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/realtime"
	"storefront/internal/repository"
	"storefront/internal/service"
)

// CatalogHandler wires the Mongo-backed catalog routes, including the
// realtime subscription endpoint.
type CatalogHandler struct {
	catalog service.CatalogService
	hub     *realtime.Hub
}

func NewCatalogHandler(catalog service.CatalogService, hub *realtime.Hub) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		hub:     hub,
	}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(), requestIDMiddleware())

	router.GET("/products", h.listProducts)
	router.POST("/products", h.createProduct)
	router.DELETE("/products/:id", h.deleteProduct)
	router.POST("/categories", h.createCategory)
	router.GET("/categories", h.listCategories)

	if h.hub != nil {
		router.GET("/ws", func(c *gin.Context) {
			h.hub.HandleUpgrade(c.Writer, c.Request)
		})
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

type catalogProductRequest struct {
	Name  string  `json:"name" binding:"required"`
	About string  `json:"about" binding:"required"`
	Price float64 `json:"price" binding:"required,gt=0"`
	// Pointer so a present-but-empty array passes while a missing field
	// is still rejected.
	CategoryIDs *[]string `json:"categoryIds" binding:"required"`
}

func (h *CatalogHandler) listProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products", "details": err.Error()})
		return
	}
	if products == nil {
		products = []domain.CatalogProduct{}
	}
	c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) createProduct(c *gin.Context) {
	var req catalogProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), service.CatalogProductInput{
		Name:        req.Name,
		About:       req.About,
		Price:       req.Price,
		CategoryIDs: *req.CategoryIDs,
	})
	if err != nil {
		h.renderCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *CatalogHandler) deleteProduct(c *gin.Context) {
	product, err := h.catalog.DeleteProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *CatalogHandler) createCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.catalog.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		h.renderCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CatalogHandler) listCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list categories", "details": err.Error()})
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) renderCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidProduct),
		errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrInvalidObjectID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog storage failure", "details": err.Error()})
	}
}
