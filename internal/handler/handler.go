package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"vyaha-be/internal/apperror"
	"vyaha-be/internal/auth"
	"vyaha-be/internal/cart"
	"vyaha-be/internal/category"
	"vyaha-be/internal/logger"
	"vyaha-be/internal/order"
	"vyaha-be/internal/product"
	"vyaha-be/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Exporter streams admin spreadsheets.
type Exporter interface {
	ExportProducts(ctx context.Context, actor auth.Identity, status *product.Status, w io.Writer) error
	ExportOrders(ctx context.Context, actor auth.Identity, status *order.Status, w io.Writer) error
}

type Handler struct {
	users      user.Service
	products   product.Service
	categories category.Service
	carts      cart.Service
	orders     order.Service
	reports    Exporter

	tokenTTL     time.Duration
	secureCookie bool
}

type Deps struct {
	Users      user.Service
	Products   product.Service
	Categories category.Service
	Carts      cart.Service
	Orders     order.Service
	Reports    Exporter

	TokenTTL     time.Duration
	SecureCookie bool
}

func New(d Deps) *Handler {
	return &Handler{
		users:        d.Users,
		products:     d.Products,
		categories:   d.Categories,
		carts:        d.Carts,
		orders:       d.Orders,
		reports:      d.Reports,
		tokenTTL:     d.TokenTTL,
		secureCookie: d.SecureCookie,
	}
}

func statusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindForbidden:
		return http.StatusForbidden
	case apperror.KindUnauthorized:
		return http.StatusUnauthorized
	case apperror.KindUnavailable, apperror.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as JSON. Unclassified errors are logged and hidden.
func respondError(c *gin.Context, err error) {
	appErr, ok := apperror.As(err)
	if !ok {
		logger.FromCtx(c.Request.Context()).Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	body := gin.H{"error": appErr.Message, "kind": appErr.Kind}
	if len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}
	c.JSON(statusFor(appErr.Kind), body)
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		msg := err.Error()
		if errors.Is(err, io.EOF) {
			msg = "request body is required"
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "detail": msg})
		return false
	}
	return true
}
