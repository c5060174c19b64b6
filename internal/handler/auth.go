package handler

import (
	"net/http"

	"github.com/damirpristav/dogs-app-backend/internal/config"
	"github.com/damirpristav/dogs-app-backend/internal/middleware"
	"github.com/damirpristav/dogs-app-backend/internal/service"
	"github.com/damirpristav/dogs-app-backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes registration, credential and session endpoints.
type AuthHandler struct {
	Auth *service.AuthService
	JWT  config.JWTConfig
}

func NewAuthHandler(auth *service.AuthService, jwtCfg config.JWTConfig) *AuthHandler {
	return &AuthHandler{Auth: auth, JWT: jwtCfg}
}

type registerReq struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.Auth.Register(service.RegisterInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		util.Error(c, service.HTTPStatus(err), service.Message(err))
		return
	}

	util.Success(c, "User successfully created! Please check your email to activate your account!", gin.H{
		"id":        user.ID,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"email":     user.Email,
		"createdAt": user.CreatedAt,
	})
}

func (h *AuthHandler) ActivateAccount(c *gin.Context) {
	if err := h.Auth.Activate(c.Param("token")); err != nil {
		util.Error(c, service.HTTPStatus(err), service.Message(err))
		return
	}
	util.Success(c, "User activated! Please login to your account.", nil)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, token, err := h.Auth.Authenticate(req.Email, req.Password)
	if err != nil {
		util.Error(c, service.HTTPStatus(err), service.Message(err))
		return
	}

	bearer := "Bearer " + token
	c.Header("X-Access-Token", bearer)
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("token", bearer, h.JWT.ExpireSeconds, "/", h.JWT.CookieDomain, h.JWT.CookieSecure, true)

	util.Success(c, "Login successfull!", gin.H{
		"id":        user.ID,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"email":     user.Email,
		"role":      user.Role,
		"createdAt": user.CreatedAt,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("token", "none", 1, "/", h.JWT.CookieDomain, h.JWT.CookieSecure, true)
	util.Success(c, "You are now logged out", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	util.Success(c, "Logged in user data", middleware.CurrentUser(c))
}

func (h *AuthHandler) CheckToken(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, "Not authorized to access this page!")
		return
	}
	util.Success(c, "", user)
}

type forgotPasswordReq struct {
	Email string `json:"email"`
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if _, err := h.Auth.RequestPasswordReset(req.Email); err != nil {
		util.Error(c, service.HTTPStatus(err), service.Message(err))
		return
	}
	util.Success(c, "Please check your email to reset your password. Your token is valid only for 10 minutes.", nil)
}

type resetPasswordReq struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if err := h.Auth.ResetPassword(c.Param("token"), req.Password, req.ConfirmPassword); err != nil {
		util.Error(c, service.HTTPStatus(err), service.Message(err))
		return
	}
	util.Success(c, "You password was changed! You can now login with your new password!", nil)
}

type resendActivationReq struct {
	Email string `json:"email"`
}

func (h *AuthHandler) ResendActivationToken(c *gin.Context) {
	var req resendActivationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if _, err := h.Auth.ResendActivation(req.Email); err != nil {
		util.Error(c, service.HTTPStatus(err), service.Message(err))
		return
	}
	util.Success(c, "Email sent with new activation token!", nil)
}

func (h *AuthHandler) DeleteMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, "Not authorized to access this page!")
		return
	}

	if err := h.Auth.DeleteAccount(user.ID); err != nil {
		util.Error(c, service.HTTPStatus(err), service.Message(err))
		return
	}
	util.Success(c, "Your account was successfully deleted!", nil)
}
