package handler

import (
	"net/http"
	"time"

	"vyaha-be/internal/auth"
	"vyaha-be/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Router builds the gin engine. Identity is expected on the request context,
// placed there by middleware.AuthMiddleware.
func (h *Handler) Router(origins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", "X-Device-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", h.SignUp)
		authGroup.POST("/verify-otp", h.VerifyOTP)
		authGroup.POST("/resend-otp", h.ResendOTP)
		authGroup.POST("/signin", h.SignIn)
		authGroup.POST("/signout", h.SignOut)
		authGroup.POST("/forgot-password", h.ForgotPassword)
		authGroup.POST("/reset-password/:token", h.ResetPassword)
	}

	api.GET("/products", h.ListProducts)
	api.GET("/products/:id", h.GetProduct)
	api.GET("/categories", h.ListCategories)

	seller := api.Group("/seller", middleware.RequireRole(auth.RoleSeller))
	{
		seller.GET("/products", h.ListSellerProducts)
		seller.POST("/products", h.CreateProduct)
		seller.PUT("/products/:id", h.UpdateProduct)
		seller.DELETE("/products/:id", h.DeleteProduct)
		seller.GET("/profile", h.GetSellerProfile)
		seller.PUT("/profile", h.UpdateSellerProfile)
		seller.GET("/orders", h.ListSellerOrders)
	}

	admin := api.Group("/admin", middleware.RequireRole(auth.RoleAdmin))
	{
		admin.GET("/products/pending", h.ListPendingProducts)
		admin.PUT("/products/:id/status", h.SetProductStatus)
		admin.DELETE("/products/:id", h.DeleteProduct)
		admin.GET("/orders", h.ListAllOrders)
		admin.GET("/metrics", h.Metrics)
		admin.GET("/export/products", h.ExportProducts)
		admin.GET("/export/orders", h.ExportOrders)
	}

	customer := api.Group("", middleware.RequireRole(auth.RoleCustomer))
	{
		customer.GET("/cart", h.GetCart)
		customer.POST("/cart", h.AddToCart)
		customer.PUT("/cart/:productId", h.UpdateCartItem)
		customer.DELETE("/cart/:productId", h.RemoveCartItem)
		customer.DELETE("/cart", h.ClearCart)
		customer.POST("/orders", h.CreateOrder)
		customer.GET("/orders", h.ListOrders)
	}

	api.GET("/orders/:id", middleware.RequireRole(auth.RoleCustomer, auth.RoleSeller, auth.RoleAdmin), h.GetOrder)
	api.PUT("/orders/:id/status", middleware.RequireRole(auth.RoleSeller, auth.RoleAdmin), h.UpdateOrderStatus)

	return r
}
