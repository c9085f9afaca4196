package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/http/middleware"
	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/services"
	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/utils"
)

const refreshCookieName = "refreshtoken"

type AuthHandler struct {
	auth          *services.AuthService
	secureCookies bool
}

type LoginRequest struct {
	Usercode string `json:"usercode" binding:"required"`
	Pass     string `json:"pass" binding:"required"`
}

type VerifyIdentityRequest struct {
	Usercode string `json:"usercode" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	UserID      int64  `json:"userid" binding:"required"`
	NewPass     string `json:"newPass" binding:"required"`
	ConfirmPass string `json:"confirmPass" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPass     string `json:"oldPass" binding:"required"`
	NewPass     string `json:"newPass" binding:"required"`
	ConfirmPass string `json:"confirmPass" binding:"required"`
}

func NewAuthHandler(auth *services.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{auth: auth, secureCookies: secureCookies}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Usercode, req.Pass)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.setRefreshCookie(c, result.RefreshToken, time.Until(result.RefreshExpiresAt))
	c.JSON(http.StatusOK, result.TokenResponse)
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	refreshToken, _ := c.Cookie(refreshCookieName)

	if err := h.auth.SignOut(c.Request.Context(), refreshToken); err != nil {
		utils.RespondError(c, err)
		return
	}

	h.setRefreshCookie(c, "", -time.Hour)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) VerifyIdentity(c *gin.Context) {
	var req VerifyIdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	resp, err := h.auth.VerifyIdentity(c.Request.Context(), req.Usercode, req.Email)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), req.UserID, req.NewPass, req.ConfirmPass); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondMessage(c, "password reset, please log in again")
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.RespondError(c, utils.NewAppError(http.StatusUnauthorized, "UNAUTHENTICATED", "missing identity", nil))
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	if err := h.auth.ChangePassword(c.Request.Context(), userID, req.OldPass, req.NewPass, req.ConfirmPass); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondMessage(c, "password changed, please log in again")
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, value string, maxAge time.Duration) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(refreshCookieName, value, int(maxAge.Seconds()), "/", "", h.secureCookies, true)
}
