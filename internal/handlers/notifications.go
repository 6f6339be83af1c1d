package handlers

import (
	"context"

	"github.com/charliecatxph/eventra-backend/internal/auth"
	"github.com/charliecatxph/eventra-backend/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

type NotificationHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewNotificationHandler(db *gorm.DB, authHandler *auth.AuthHandler) *NotificationHandler {
	return &NotificationHandler{db: db, authHandler: authHandler}
}

type FetchNotificationsRequest struct {
	auth.AuthInput
}

type FetchNotificationsResponse struct {
	Body struct {
		Success bool                  `json:"success"`
		Data    []models.Notification `json:"data"`
		Err     string                `json:"err"`
	}
}

func (h *NotificationHandler) HandleFetchNotifications(ctx context.Context, input *FetchNotificationsRequest) (*FetchNotificationsResponse, error) {
	orgID, err := h.authHandler.Authorize(input.AuthInput)
	if err != nil {
		return nil, err
	}

	notifs := []models.Notification{}
	if err := h.db.WithContext(ctx).
		Where("org_id = ?", orgID).Order("stamp desc").
		Find(&notifs).Error; err != nil {
		return nil, huma.Error400BadRequest("Server error.")
	}

	res := &FetchNotificationsResponse{}
	res.Body.Success = true
	res.Body.Data = notifs
	return res, nil
}
