package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/services"
	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/utils"
)

// AccountHandler exposes the admin account-management endpoints.
type AccountHandler struct {
	accounts *services.AccountService
}

type CreateAccountRequest struct {
	EmployeeID int64 `json:"employeeid" binding:"required"`
	JobtitleID int64 `json:"jobtitleid" binding:"required"`
	Role       int64 `json:"role" binding:"required"`
}

type UpdateAccountRequest struct {
	Status *bool `json:"status" binding:"required"`
	Role   int64 `json:"role" binding:"required"`
}

type AdminResetPasswordRequest struct {
	UserID int64 `json:"userid" binding:"required"`
}

func NewAccountHandler(accounts *services.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

func (h *AccountHandler) Create(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	result, err := h.accounts.Create(c.Request.Context(), req.EmployeeID, req.JobtitleID, req.Role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondCreated(c, result)
}

func (h *AccountHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	result, err := h.accounts.List(c.Request.Context(), page, perPage)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, result)
}

func (h *AccountHandler) FormData(c *gin.Context) {
	result, err := h.accounts.FormData(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, result)
}

func (h *AccountHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondValidationError(c, "id must be an integer")
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	if err := h.accounts.Update(c.Request.Context(), id, *req.Status, req.Role); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondMessage(c, "account updated")
}

func (h *AccountHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondValidationError(c, "id must be an integer")
		return
	}

	if err := h.accounts.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondMessage(c, "account deleted")
}

func (h *AccountHandler) AdminResetPassword(c *gin.Context) {
	var req AdminResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	result, err := h.accounts.AdminResetPassword(c.Request.Context(), req.UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, result)
}
