package handler

import (
	"net/http"
	"strings"

	"vyaha-be/internal/middleware"
	"vyaha-be/internal/order"
	"vyaha-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type createOrderRequest struct {
	ShippingAddress order.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                `json:"payment_method"`
	Coupon          string                `json:"coupon"`
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.orders.Create(c.Request.Context(), middleware.Identity(c), order.CreateOrderParams{
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Coupon:          req.Coupon,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) ListOrders(c *gin.Context) {
	limit, offset := utils.Paginate(c.Query("page"), c.Query("limit"), defaultPageSize, maxPageSize)

	res, err := h.orders.ListOwn(c.Request.Context(), middleware.Identity(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetOrder(c *gin.Context) {
	o, err := h.orders.GetByID(c.Request.Context(), middleware.Identity(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *Handler) ListSellerOrders(c *gin.Context) {
	limit, offset := utils.Paginate(c.Query("page"), c.Query("limit"), defaultPageSize, maxPageSize)

	res, err := h.orders.ListForSeller(c.Request.Context(), middleware.Identity(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListAllOrders(c *gin.Context) {
	limit, offset := utils.Paginate(c.Query("page"), c.Query("limit"), defaultPageSize, maxPageSize)

	opts := order.ListOptions{Limit: limit, Offset: offset}
	if s := orderStatusQuery(c); s != nil {
		opts.Status = s
	}

	res, err := h.orders.ListAll(c.Request.Context(), middleware.Identity(c), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}

	status := order.Status(strings.ToLower(strings.TrimSpace(req.Status)))
	o, err := h.orders.UpdateStatus(c.Request.Context(), middleware.Identity(c), c.Param("id"), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func orderStatusQuery(c *gin.Context) *order.Status {
	raw := strings.ToLower(strings.TrimSpace(c.Query("status")))
	if raw == "" {
		return nil
	}
	s := order.Status(raw)
	return &s
}
