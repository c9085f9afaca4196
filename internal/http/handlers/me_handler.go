package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/http/middleware"
	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/services"
	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/utils"
)

type MeHandler struct {
	users services.UserStore
}

func NewMeHandler(users services.UserStore) *MeHandler {
	return &MeHandler{users: users}
}

// AuthMe returns the profile of the identity attached by the gate. The
// user is re-read so a deleted account stops resolving even while its
// token is still inside the expiry window.
func (h *MeHandler) AuthMe(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.RespondError(c, utils.NewAppError(http.StatusUnauthorized, "UNAUTHENTICATED", "missing identity", nil))
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, utils.NewAppError(http.StatusNotFound, "NOT_FOUND", "account does not exist", nil))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "ok",
		"user": gin.H{
			"userid":     user.UserID,
			"usercode":   user.Usercode,
			"name":       user.Name,
			"employeeid": user.EmployeeID,
			"role":       user.Role,
			"status":     user.Status,
		},
	})
}
