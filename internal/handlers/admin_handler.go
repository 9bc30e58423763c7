package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"golang-storefront/internal/middleware"
	"golang-storefront/internal/models"
	"golang-storefront/pkg/storeapi"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const maxImageSize = 10 << 20

type AdminHandler struct {
	adminService AdminServiceInterface
}

func NewAdminHandler(adminService AdminServiceInterface) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// RegisterRoutes registers the routes for product maintenance and role management
func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	admin := router.Group("/admin", authMiddleware.AuthRequired())
	{
		products := admin.Group("/products", authMiddleware.AdminRequired())
		{
			products.POST("/fetch", h.FetchProduct)
			products.PUT("/:id", h.UpdateProduct)
		}

		roles := admin.Group("/roles", authMiddleware.SuperAdminRequired())
		{
			roles.GET("", h.ListUsers)
			roles.PUT("", h.UpdateRole)
		}
	}
}

type FetchProductRequest struct {
	SearchQuery string `json:"searchQuery" binding:"required"`
}

type UpdateRoleRequest struct {
	Email string `json:"email" binding:"required"`
	Role  string `json:"role" binding:"required"`
}

// FetchProduct asks the backend to import products matching the query.
func (h *AdminHandler) FetchProduct(c *gin.Context) {
	var req FetchProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.adminService.FetchProduct(c.Request.Context(), middleware.GetSession(c), req.SearchQuery); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Product fetched and saved successfully"})
}

// UpdateProduct godoc
// @Summary Update a product
// @Description Multipart form with a JSON "product" part and an optional "imageFile"
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Product id"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/products/{id} [put]
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	product, err := readProductPart(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	product.ID = models.ProductID(c.Param("id"))
	if err := binding.Validator.ValidateStruct(product); err != nil {
		badRequest(c, err)
		return
	}

	var image *storeapi.ImageUpload
	if header, err := c.FormFile("imageFile"); err == nil {
		if header.Size > maxImageSize {
			badRequest(c, fmt.Errorf("image exceeds %d bytes", maxImageSize))
			return
		}
		file, err := header.Open()
		if err != nil {
			badRequest(c, err)
			return
		}
		defer file.Close()
		image = &storeapi.ImageUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        file,
		}
	} else if !errors.Is(err, http.ErrMissingFile) {
		badRequest(c, err)
		return
	}

	if err := h.adminService.UpdateProduct(c.Request.Context(), middleware.GetSession(c), *product, image); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Product updated successfully"})
}

// readProductPart accepts the product JSON either as a form value or as a
// file part, the way browsers send a Blob.
func readProductPart(c *gin.Context) (*models.ProductUpdate, error) {
	var raw []byte
	if value := c.PostForm("product"); value != "" {
		raw = []byte(value)
	} else {
		header, err := c.FormFile("product")
		if err != nil {
			return nil, errors.New("missing product part")
		}
		raw, err = readPart(header)
		if err != nil {
			return nil, err
		}
	}

	var product models.ProductUpdate
	if err := json.Unmarshal(raw, &product); err != nil {
		return nil, fmt.Errorf("invalid product part: %w", err)
	}
	return &product, nil
}

func readPart(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(io.LimitReader(file, 1<<20))
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers(c.Request.Context(), middleware.GetSession(c), strings.TrimSpace(c.Query("search")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) UpdateRole(c *gin.Context) {
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.adminService.UpdateRole(c.Request.Context(), middleware.GetSession(c), req.Email, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
