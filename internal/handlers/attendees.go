package handlers

import (
	"context"
	"errors"

	"github.com/charliecatxph/eventra-backend/internal/auth"
	"github.com/charliecatxph/eventra-backend/internal/mailer"
	"github.com/charliecatxph/eventra-backend/internal/models"
	"github.com/charliecatxph/eventra-backend/internal/storage"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

type AttendeeHandler struct {
	db          *gorm.DB
	store       storage.ObjectStorage
	mail        mailer.Mailer
	authHandler *auth.AuthHandler
	fromAddr    string
	origin      string
}

func NewAttendeeHandler(db *gorm.DB, store storage.ObjectStorage, mail mailer.Mailer, authHandler *auth.AuthHandler, fromAddr, origin string) *AttendeeHandler {
	return &AttendeeHandler{
		db:          db,
		store:       store,
		mail:        mail,
		authHandler: authHandler,
		fromAddr:    fromAddr,
		origin:      origin,
	}
}

type GetAttendeesRequest struct {
	auth.AuthInput
	Mode string `query:"mode" required:"true" doc:"count or list"`
	Body struct {
		EvID string `json:"evId" required:"true"`
	}
}

type GetAttendeesResponse struct {
	Body struct {
		Success bool   `json:"success"`
		Data    any    `json:"data" doc:"Attendee list, or the count in count mode"`
		Err     string `json:"err"`
	}
}

func (h *AttendeeHandler) HandleGetAttendees(ctx context.Context, input *GetAttendeesRequest) (*GetAttendeesResponse, error) {
	if _, err := h.authHandler.Authorize(input.AuthInput); err != nil {
		return nil, err
	}

	res := &GetAttendeesResponse{}
	res.Body.Success = true

	if input.Mode == "count" {
		var count int64
		if err := h.db.WithContext(ctx).Model(&models.Attendee{}).
			Where("ev_id = ?", input.Body.EvID).Count(&count).Error; err != nil {
			return nil, huma.Error400BadRequest("Server error.")
		}
		res.Body.Data = count
		return res, nil
	}

	attendees := []models.Attendee{}
	if err := h.db.WithContext(ctx).
		Where("ev_id = ?", input.Body.EvID).Order("name asc").
		Find(&attendees).Error; err != nil {
		return nil, huma.Error400BadRequest("Server error.")
	}
	res.Body.Data = attendees
	return res, nil
}

// attendeeColumns whitelists the externally updatable fields, keyed by their
// wire names.
var attendeeColumns = map[string]string{
	"name":        "name",
	"email":       "email",
	"orgN":        "org_n",
	"orgP":        "org_p",
	"phoneNumber": "phone_number",
	"salutations": "salutations",
	"addr":        "addr",
	"attended":    "attended",
}

type UpdateAttendeeRequest struct {
	auth.AuthInput
	Body struct {
		ID   string         `json:"id" required:"true"`
		Data map[string]any `json:"data" required:"true" doc:"Partial attendee fields to merge"`
	}
}

type UpdatedAttendee struct {
	Msg string `json:"msg"`
	models.Attendee
}

type UpdateAttendeeResponse struct {
	Body struct {
		Success bool            `json:"success"`
		Data    UpdatedAttendee `json:"data"`
		Err     string          `json:"err"`
	}
}

// HandleUpdateAttendee shallow-merges the supplied fields over the stored
// record. The response always reports attended as true, whatever was
// persisted; this mirrors the check-in flow that is its only caller.
func (h *AttendeeHandler) HandleUpdateAttendee(ctx context.Context, input *UpdateAttendeeRequest) (*UpdateAttendeeResponse, error) {
	if _, err := h.authHandler.Authorize(input.AuthInput); err != nil {
		return nil, err
	}

	var atn models.Attendee
	if err := h.db.WithContext(ctx).First(&atn, "id = ?", input.Body.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Atendee doesn't exist.")
		}
		return nil, huma.Error400BadRequest("Fetch 1 fail.")
	}

	updates := map[string]any{}
	for field, value := range input.Body.Data {
		if column, ok := attendeeColumns[field]; ok {
			updates[column] = value
		}
	}
	if len(updates) > 0 {
		if err := h.db.WithContext(ctx).Model(&models.Attendee{}).
			Where("id = ?", atn.ID).Updates(updates).Error; err != nil {
			return nil, huma.Error400BadRequest("Update fail.")
		}
	}

	var merged models.Attendee
	if err := h.db.WithContext(ctx).First(&merged, "id = ?", atn.ID).Error; err != nil {
		return nil, huma.Error400BadRequest("Update fail.")
	}
	merged.Attended = true

	res := &UpdateAttendeeResponse{}
	res.Body.Success = true
	res.Body.Data = UpdatedAttendee{Msg: "Atendee updated.", Attendee: merged}
	return res, nil
}

type DeleteAttendeeRequest struct {
	auth.AuthInput
	Body struct {
		ID   string `json:"id" required:"true"`
		QRID string `json:"qrId" required:"true" doc:"Public id of the credential image"`
	}
}

type DeleteAttendeeResponse struct {
	Body struct {
		Success bool   `json:"success"`
		Msg     string `json:"msg"`
		Err     string `json:"err"`
	}
}

func (h *AttendeeHandler) HandleDeleteAttendee(ctx context.Context, input *DeleteAttendeeRequest) (*DeleteAttendeeResponse, error) {
	if _, err := h.authHandler.Authorize(input.AuthInput); err != nil {
		return nil, err
	}

	if err := h.db.WithContext(ctx).Delete(&models.Attendee{}, "id = ?", input.Body.ID).Error; err != nil {
		return nil, huma.Error403Forbidden("Error in deleting atendee.")
	}
	if err := h.store.Destroy(ctx, input.Body.QRID); err != nil {
		return nil, huma.Error403Forbidden("Error in deleting atendee.")
	}

	res := &DeleteAttendeeResponse{}
	res.Body.Success = true
	res.Body.Msg = "Atendee has been deleted."
	return res, nil
}

type ResendEmailRequest struct {
	auth.AuthInput
	Body struct {
		ID string `json:"id" required:"true"`
	}
}

type ResendEmailResponse struct {
	Body struct {
		Success bool   `json:"success"`
		Msg     string `json:"msg"`
		Err     string `json:"err"`
	}
}

// HandleResendEmail re-sends the confirmation email for an existing
// registration. Nothing is written; there is no compensation here.
func (h *AttendeeHandler) HandleResendEmail(ctx context.Context, input *ResendEmailRequest) (*ResendEmailResponse, error) {
	if _, err := h.authHandler.Authorize(input.AuthInput); err != nil {
		return nil, err
	}

	var atn models.Attendee
	if err := h.db.WithContext(ctx).First(&atn, "id = ?", input.Body.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error400BadRequest("Atendee doesn't exist.")
		}
		return nil, huma.Error400BadRequest("Fail to fetch atendee.")
	}

	var ev models.Event
	if err := h.db.WithContext(ctx).First(&ev, "id = ?", atn.EvID).Error; err != nil {
		return nil, huma.Error400BadRequest("Fail to get associated event.")
	}

	if err := h.mail.Send(mailer.Confirmation(&ev, &atn, h.fromAddr, h.origin)); err != nil {
		return nil, huma.Error400BadRequest("Fail to send mail.")
	}

	res := &ResendEmailResponse{}
	res.Body.Success = true
	res.Body.Msg = "Atendee has been sent a confirmation e-mail."
	return res, nil
}
