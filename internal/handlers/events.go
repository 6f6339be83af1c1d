package handlers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/charliecatxph/eventra-backend/internal/auth"
	"github.com/charliecatxph/eventra-backend/internal/models"
	"github.com/charliecatxph/eventra-backend/internal/storage"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type EventHandler struct {
	db          *gorm.DB
	store       storage.ObjectStorage
	authHandler *auth.AuthHandler
	uploadDir   string
}

func NewEventHandler(db *gorm.DB, store storage.ObjectStorage, authHandler *auth.AuthHandler, uploadDir string) *EventHandler {
	return &EventHandler{db: db, store: store, authHandler: authHandler, uploadDir: uploadDir}
}

type UploadEventFormData struct {
	CoverFile   huma.FormFile `form:"coverFile" contentType:"image/png,image/jpeg" required:"true"`
	Name        string        `form:"name"`
	Location    string        `form:"location"`
	OrganizedBy string        `form:"organizedBy"`
	Description string        `form:"description"`
	Offset      int           `form:"offset"`
	Date        int64         `form:"date"`
	StartT      int64         `form:"startT"`
	EndT        int64         `form:"endT"`
	AllowWalkIn string        `form:"allowWalkIn"`
	AtendeeLim  int           `form:"atendeeLim"`
}

type UploadEventRequest struct {
	auth.AuthInput
	RawBody huma.MultipartFormFiles[UploadEventFormData]
}

type UploadEventResponse struct {
	Body struct {
		Success bool   `json:"success"`
		Data    string `json:"data" doc:"Created event id"`
		Err     string `json:"err"`
	}
}

func (h *EventHandler) HandleUploadEvent(ctx context.Context, input *UploadEventRequest) (*UploadEventResponse, error) {
	orgID, err := h.authHandler.Authorize(input.AuthInput)
	if err != nil {
		return nil, err
	}

	data := input.RawBody.Data()
	if data.Name == "" || data.Location == "" || data.OrganizedBy == "" ||
		data.Description == "" || data.AllowWalkIn == "" || !data.CoverFile.IsSet {
		return nil, huma.Error400BadRequest("Missing required fields")
	}

	conflict, err := h.scheduleConflict(ctx, orgID, data.StartT, data.EndT)
	if err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}
	if conflict {
		return nil, huma.Error409Conflict("Event not uploaded. Conflicts with another event in the same date.")
	}

	coverPath, err := storage.SaveTemp(h.uploadDir, data.CoverFile, filepath.Ext(data.CoverFile.Filename))
	if err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}
	defer os.Remove(coverPath)

	upl, err := h.store.Upload(ctx, coverPath)
	if err != nil {
		log.Error().Err(err).Msg("cover upload failed")
		return nil, huma.Error500InternalServerError("Server error")
	}

	ev := models.Event{
		ID:             uuid.NewString(),
		Name:           data.Name,
		Location:       data.Location,
		OrganizedBy:    data.OrganizedBy,
		Description:    data.Description,
		Offset:         data.Offset,
		Date:           data.Date,
		StartT:         data.StartT,
		EndT:           data.EndT,
		AllowWalkIn:    data.AllowWalkIn == "true",
		AtendeeLim:     data.AtendeeLim,
		OrganizationID: orgID,
		CoverFile:      upl.SecureURL,
		CoverFilePubID: upl.PublicID,
	}
	if err := h.db.WithContext(ctx).Create(&ev).Error; err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}

	res := &UploadEventResponse{}
	res.Body.Success = true
	res.Body.Data = ev.ID
	return res, nil
}

// scheduleConflict reports whether an existing event of the org envelops the
// [startT, endT) range.
func (h *EventHandler) scheduleConflict(ctx context.Context, orgID string, startT, endT int64) (bool, error) {
	var conflicts int64
	err := h.db.WithContext(ctx).Model(&models.Event{}).
		Where("organization_id = ? AND start_t < ? AND end_t > ?", orgID, startT, endT).
		Count(&conflicts).Error
	return conflicts > 0, err
}

type EventWithCount struct {
	models.Event
	AtnSz int64 `json:"atnSz"`
}

type FetchEventsRequest struct {
	auth.AuthInput
	Mode string `query:"mode" doc:"partial-ord, partial-biz or full"`
}

type FetchEventsResponse struct {
	Body struct {
		Success bool              `json:"success"`
		Data    []EventWithCount  `json:"data"`
		Bz      []models.BizMatch `json:"bz"`
		Err     string            `json:"err"`
	}
}

func (h *EventHandler) HandleFetchEvents(ctx context.Context, input *FetchEventsRequest) (*FetchEventsResponse, error) {
	orgID, err := h.authHandler.Authorize(input.AuthInput)
	if err != nil {
		return nil, err
	}

	res := &FetchEventsResponse{}
	res.Body.Data = []EventWithCount{}
	res.Body.Bz = []models.BizMatch{}

	wantOrd := input.Mode == "partial-ord" || input.Mode == "full"
	wantBiz := input.Mode == "partial-biz" || input.Mode == "full"
	if !wantOrd && !wantBiz {
		return nil, huma.Error403Forbidden("Invalid mode.")
	}

	if wantOrd {
		var events []models.Event
		if err := h.db.WithContext(ctx).
			Where("organization_id = ?", orgID).Order("end_t desc").
			Find(&events).Error; err != nil {
			return nil, huma.Error500InternalServerError("Server error")
		}
		for _, ev := range events {
			var count int64
			if err := h.db.WithContext(ctx).Model(&models.Attendee{}).
				Where("ev_id = ?", ev.ID).Count(&count).Error; err != nil {
				return nil, huma.Error500InternalServerError("Server error")
			}
			res.Body.Data = append(res.Body.Data, EventWithCount{Event: ev, AtnSz: count})
		}
	}

	if wantBiz {
		if err := h.db.WithContext(ctx).
			Where("organization_id = ?", orgID).Order("end_t desc").
			Find(&res.Body.Bz).Error; err != nil {
			return nil, huma.Error500InternalServerError("Server error")
		}
	}

	res.Body.Success = true
	return res, nil
}

type AvailableEvent struct {
	models.Event
	EvID              string `json:"evId"`
	RegistrationEnded bool   `json:"registrationEnded"`
	AtendeeCount      int64  `json:"atendeeCount"`
}

type AvailableEventsRequest struct {
	OrgID string `query:"orgId" required:"true"`
}

type AvailableEventsResponse struct {
	Body struct {
		Data []AvailableEvent `json:"data"`
	}
}

// HandleAvailableEvents is the public listing backing the registration form.
func (h *EventHandler) HandleAvailableEvents(ctx context.Context, input *AvailableEventsRequest) (*AvailableEventsResponse, error) {
	var org models.Organization
	if err := h.db.WithContext(ctx).First(&org, "id = ?", input.OrgID).Error; err != nil {
		return nil, huma.Error400BadRequest("Organization doesn't exist.")
	}

	var events []models.Event
	if err := h.db.WithContext(ctx).
		Where("organization_id = ?", input.OrgID).Order("start_t asc").
		Find(&events).Error; err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}

	now := time.Now().Unix()
	res := &AvailableEventsResponse{}
	res.Body.Data = []AvailableEvent{}
	for _, ev := range events {
		var count int64
		if err := h.db.WithContext(ctx).Model(&models.Attendee{}).
			Where("ev_id = ?", ev.ID).Count(&count).Error; err != nil {
			return nil, huma.Error500InternalServerError("Server error")
		}
		res.Body.Data = append(res.Body.Data, AvailableEvent{
			Event:             ev,
			EvID:              ev.ID,
			RegistrationEnded: now > ev.StartT,
			AtendeeCount:      count,
		})
	}
	return res, nil
}

type FetchEventRequest struct {
	Body struct {
		EvID string `json:"evId" required:"true"`
	}
}

type FetchEventResponse struct {
	Body struct {
		Success bool         `json:"success"`
		Data    models.Event `json:"data"`
		Err     string       `json:"err"`
	}
}

func (h *EventHandler) HandleFetchEvent(ctx context.Context, input *FetchEventRequest) (*FetchEventResponse, error) {
	var ev models.Event
	if err := h.db.WithContext(ctx).First(&ev, "id = ?", input.Body.EvID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Event not found.")
		}
		return nil, huma.Error500InternalServerError("Server error.")
	}

	res := &FetchEventResponse{}
	res.Body.Success = true
	res.Body.Data = ev
	return res, nil
}

type AnalyticsRequest struct {
	Body struct {
		EvID   string `json:"evId" required:"true"`
		Offset int    `json:"offset" required:"true" doc:"UTC offset in minutes"`
		Type   string `json:"type" required:"true" doc:"Analytics type, rpd = registrations per day"`
	}
}

type AnalyticsResponse struct {
	Body struct {
		Success bool           `json:"success"`
		Data    map[string]int `json:"data"`
		Err     string         `json:"err"`
	}
}

func (h *EventHandler) HandleAnalytics(ctx context.Context, input *AnalyticsRequest) (*AnalyticsResponse, error) {
	if input.Body.Type != "rpd" {
		return nil, huma.Error400BadRequest("Incomplete parameters.")
	}

	var attendees []models.Attendee
	if err := h.db.WithContext(ctx).
		Where("ev_id = ?", input.Body.EvID).Order("registered_on asc").
		Find(&attendees).Error; err != nil {
		return nil, huma.Error400BadRequest("Fetch error.")
	}

	loc := time.FixedZone("", input.Body.Offset*60)
	perDay := map[string]int{}
	for _, atn := range attendees {
		day := atn.RegisteredOn.In(loc).Format("January 02, 2006")
		perDay[day]++
	}

	res := &AnalyticsResponse{}
	res.Body.Success = true
	res.Body.Data = perDay
	return res, nil
}

type DeleteEventRequest struct {
	auth.AuthInput
	Body struct {
		EvID string `json:"evId" required:"true"`
	}
}

type DeleteEventResponse struct {
	Body struct {
		Success bool   `json:"success"`
		Msg     string `json:"msg"`
		Err     string `json:"err"`
	}
}

// HandleDeleteEvent deletes an event, its cover image and, one record at a
// time, every attendee registered to it. The cascade fails fast; prior
// deletions stay committed.
func (h *EventHandler) HandleDeleteEvent(ctx context.Context, input *DeleteEventRequest) (*DeleteEventResponse, error) {
	if _, err := h.authHandler.Authorize(input.AuthInput); err != nil {
		return nil, err
	}

	var ev models.Event
	if err := h.db.WithContext(ctx).First(&ev, "id = ?", input.Body.EvID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Event doesn't exist.")
		}
		return nil, huma.Error500InternalServerError("Server error.")
	}

	if err := h.store.Destroy(ctx, ev.CoverFilePubID); err != nil {
		return nil, huma.Error400BadRequest("Fail to delete cover file.")
	}

	if err := h.db.WithContext(ctx).Delete(&models.Event{}, "id = ?", ev.ID).Error; err != nil {
		return nil, huma.Error400BadRequest("Fail to delete event.")
	}

	var attendees []models.Attendee
	if err := h.db.WithContext(ctx).Where("ev_id = ?", ev.ID).Find(&attendees).Error; err != nil {
		return nil, huma.Error400BadRequest("Failed to delete one or more attendees.")
	}
	for _, atn := range attendees {
		if err := h.db.WithContext(ctx).Delete(&models.Attendee{}, "id = ?", atn.ID).Error; err != nil {
			return nil, huma.Error400BadRequest("Failed to delete one or more attendees.")
		}
	}

	res := &DeleteEventResponse{}
	res.Body.Success = true
	res.Body.Msg = "Event has been deleted."
	return res, nil
}
