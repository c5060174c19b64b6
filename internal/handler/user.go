package handler

import (
	"errors"
	"net/http"

	"github.com/damirpristav/dogs-app-backend/internal/models"
	"github.com/damirpristav/dogs-app-backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserHandler is the admin-only user administration surface.
type UserHandler struct {
	DB *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

func (h *UserHandler) List(c *gin.Context) {
	var users []models.User
	if err := h.DB.Where("role = ?", models.RoleUser).Order("created_at, id").Find(&users).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to list users.")
		return
	}
	util.SuccessList(c, len(users), users)
}

func (h *UserHandler) Get(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "User with this id cannot be found!")
		} else {
			util.Error(c, http.StatusInternalServerError, "Failed to load user.")
		}
		return
	}
	util.Success(c, "", user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	res := h.DB.Delete(&models.User{}, userID)
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to delete user.")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, "User with this id cannot be found!")
		return
	}
	util.Success(c, "User deleted!", nil)
}
