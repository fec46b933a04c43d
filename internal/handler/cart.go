package handler

import (
	"net/http"

	"vyaha-be/internal/middleware"

	"github.com/gin-gonic/gin"
)

type addToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) GetCart(c *gin.Context) {
	summary, err := h.carts.Get(c.Request.Context(), middleware.Identity(c), c.Query("coupon"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req addToCartRequest
	if !bindJSON(c, &req) {
		return
	}

	summary, err := h.carts.Add(c.Request.Context(), middleware.Identity(c), req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req quantityRequest
	if !bindJSON(c, &req) {
		return
	}

	summary, err := h.carts.UpdateQuantity(c.Request.Context(), middleware.Identity(c), c.Param("productId"), req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	summary, err := h.carts.Remove(c.Request.Context(), middleware.Identity(c), c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.carts.Clear(c.Request.Context(), middleware.Identity(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}
