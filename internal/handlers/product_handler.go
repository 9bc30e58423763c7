package handlers

import (
	"net/http"

	"golang-storefront/internal/middleware"
	"golang-storefront/internal/models"
	"golang-storefront/internal/services"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	catalogService CatalogServiceInterface
}

func NewProductHandler(catalogService CatalogServiceInterface) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// RegisterRoutes registers the routes for catalog browsing
func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	catalog := router.Group("/catalog", authMiddleware.AuthRequired())
	{
		catalog.GET("/products", h.ListProducts)
		catalog.GET("/products/:id", h.GetProduct)
		catalog.GET("/categories", h.ListCategories)
	}
}

// ListProducts godoc
// @Summary List products
// @Description Products filtered by a case-insensitive name search and a category ("all" for every category)
// @Tags catalog
// @Produce json
// @Param search query string false "Name contains"
// @Param category query string false "Category"
// @Success 200 {array} models.Product
// @Failure 401 {object} ErrorResponse
// @Router /catalog/products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var filter services.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err)
		return
	}

	products, err := h.catalogService.List(c.Request.Context(), middleware.GetToken(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.Categories(c.Request.Context(), middleware.GetToken(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.catalogService.Get(c.Request.Context(), middleware.GetToken(c), models.ProductID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
