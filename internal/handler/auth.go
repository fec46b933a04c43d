package handler

import (
	"net/http"

	"vyaha-be/internal/auth"
	"vyaha-be/internal/middleware"
	"vyaha-be/internal/user"

	"github.com/gin-gonic/gin"
)

type signUpRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	StoreName string `json:"store_name"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type otpRequest struct {
	Email string `json:"email" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

type emailRequest struct {
	Email string `json:"email" binding:"required"`
}

type passwordRequest struct {
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	StoreName    *string `json:"store_name"`
	StoreAddress *string `json:"store_address"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Pincode      *string `json:"pincode"`
	Phone        *string `json:"phone"`
	Website      *string `json:"website"`
}

func (h *Handler) SignUp(c *gin.Context) {
	var req signUpRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.users.SignUp(c.Request.Context(), user.SignUpParams{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Role:      auth.Role(req.Role),
		StoreName: req.StoreName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "account created, check your email for the verification code",
		"user":    u,
	})
}

func (h *Handler) VerifyOTP(c *gin.Context) {
	var req otpRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.users.VerifyOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email verified"})
}

func (h *Handler) ResendOTP(c *gin.Context) {
	var req emailRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.users.ResendOTP(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "verification code sent"})
}

func (h *Handler) SignIn(c *gin.Context) {
	var req signInRequest
	if !bindJSON(c, &req) {
		return
	}

	token, u, err := h.users.SignIn(c.Request.Context(), req.Email, req.Password, auth.Role(req.Role))
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.AccessTokenCookie, token, int(h.tokenTTL.Seconds()), "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}

func (h *Handler) SignOut(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.AccessTokenCookie, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

// ForgotPassword answers the same way whether or not the email exists.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req emailRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.users.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "if the account exists, a reset link has been sent"})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req passwordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.users.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func (h *Handler) GetSellerProfile(c *gin.Context) {
	p, err := h.users.GetSellerProfile(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdateSellerProfile(c *gin.Context) {
	var req updateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.users.UpdateSellerProfile(c.Request.Context(), middleware.Identity(c), user.UpdateProfileParams{
		StoreName:    req.StoreName,
		StoreAddress: req.StoreAddress,
		City:         req.City,
		State:        req.State,
		Pincode:      req.Pincode,
		Phone:        req.Phone,
		Website:      req.Website,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
