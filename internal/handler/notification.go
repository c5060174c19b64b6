package handler

import (
	"github.com/damirpristav/dogs-app-backend/internal/middleware"
	"github.com/damirpristav/dogs-app-backend/internal/service"
	"github.com/damirpristav/dogs-app-backend/internal/util"

	"github.com/gin-gonic/gin"
)

// NotificationHandler exposes the logged in user's notifications.
type NotificationHandler struct {
	Notifications *service.NotificationService
}

func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{Notifications: notifications}
}

func (h *NotificationHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	notifications, err := h.Notifications.ListForUser(user.ID)
	if err != nil {
		util.Error(c, service.HTTPStatus(err), service.Message(err))
		return
	}
	util.SuccessList(c, len(notifications), notifications)
}

func (h *NotificationHandler) Get(c *gin.Context) {
	notificationID, ok := parseID(c, "notificationId")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	notification, err := h.Notifications.Get(notificationID, user.ID)
	if err != nil {
		util.Error(c, service.HTTPStatus(err), service.Message(err))
		return
	}
	util.Success(c, "", notification)
}

func (h *NotificationHandler) Seen(c *gin.Context) {
	notificationID, ok := parseID(c, "notificationId")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	notification, err := h.Notifications.MarkSeen(notificationID, user.ID)
	if err != nil {
		util.Error(c, service.HTTPStatus(err), service.Message(err))
		return
	}
	util.Success(c, "Notification marked as seen!", notification)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	notificationID, ok := parseID(c, "notificationId")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.Notifications.Delete(notificationID, user.ID); err != nil {
		util.Error(c, service.HTTPStatus(err), service.Message(err))
		return
	}
	util.Success(c, "Notification deleted!", nil)
}

func (h *NotificationHandler) DeleteAll(c *gin.Context) {
	user := middleware.CurrentUser(c)
	deleted, err := h.Notifications.DeleteAllForUser(user.ID)
	if err != nil {
		util.Error(c, service.HTTPStatus(err), service.Message(err))
		return
	}
	if deleted == 0 {
		util.Success(c, "No notifications to delete!", nil)
		return
	}
	util.Success(c, "All notifications deleted!", nil)
}
