package handler

import (
	"net/http"
	"strings"

	"vyaha-be/internal/middleware"
	"vyaha-be/internal/product"
	"vyaha-be/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type createProductRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    string           `json:"category"`
	Images      []string         `json:"images"`
	Quantity    int              `json:"quantity"`
}

type updateProductRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
	Images      []string         `json:"images"`
	Quantity    *int             `json:"quantity"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) ListProducts(c *gin.Context) {
	limit, offset := utils.Paginate(c.Query("page"), c.Query("limit"), defaultPageSize, maxPageSize)

	res, err := h.products.ListApproved(c.Request.Context(), product.ListOptions{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetProduct(c *gin.Context) {
	p, err := h.products.GetApproved(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) ListCategories(c *gin.Context) {
	limit, offset := utils.Paginate(c.Query("page"), c.Query("limit"), 0, 200)

	cats, err := h.categories.List(c.Request.Context(), c.Query("filter"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": cats})
}

func (h *Handler) ListSellerProducts(c *gin.Context) {
	limit, offset := utils.Paginate(c.Query("page"), c.Query("limit"), defaultPageSize, maxPageSize)

	res, err := h.products.ListBySeller(c.Request.Context(), middleware.Identity(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.products.Create(c.Request.Context(), middleware.Identity(c), product.CreateProductParams{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Images:      req.Images,
		Quantity:    req.Quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	var req updateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.products.Update(c.Request.Context(), middleware.Identity(c), c.Param("id"), product.UpdateProductParams{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Images:      req.Images,
		Quantity:    req.Quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProduct serves both the seller and admin routes; ownership is
// checked by the service.
func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), middleware.Identity(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

func (h *Handler) ListPendingProducts(c *gin.Context) {
	limit, offset := utils.Paginate(c.Query("page"), c.Query("limit"), defaultPageSize, maxPageSize)

	res, err := h.products.ListPending(c.Request.Context(), middleware.Identity(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) SetProductStatus(c *gin.Context) {
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}

	status := product.Status(strings.ToLower(strings.TrimSpace(req.Status)))
	p, err := h.products.SetStatus(c.Request.Context(), middleware.Identity(c), c.Param("id"), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
