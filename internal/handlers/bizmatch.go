package handlers

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charliecatxph/eventra-backend/internal/auth"
	"github.com/charliecatxph/eventra-backend/internal/models"
	"github.com/charliecatxph/eventra-backend/internal/storage"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type BizMatchHandler struct {
	db          *gorm.DB
	store       storage.ObjectStorage
	authHandler *auth.AuthHandler
	uploadDir   string
}

func NewBizMatchHandler(db *gorm.DB, store storage.ObjectStorage, authHandler *auth.AuthHandler, uploadDir string) *BizMatchHandler {
	return &BizMatchHandler{db: db, store: store, authHandler: authHandler, uploadDir: uploadDir}
}

// SupplierInput is one showcased supplier in a biz-match upload. The logo for
// index i is the i-th uploaded file.
type SupplierInput struct {
	Name        string `json:"name"`
	Country     string `json:"country"`
	Description string `json:"description"`
	Website     string `json:"website"`
}

type BizMatchFormData struct {
	Logos     []huma.FormFile `form:"logo" contentType:"image/png,image/jpeg"`
	Name      string          `form:"name"`
	Date      int64           `form:"date"`
	StartT    int64           `form:"startT"`
	EndT      int64           `form:"endT"`
	Lim       int             `form:"lim"`
	Offset    int             `form:"offset"`
	Inc       int             `form:"inc" doc:"Timeslot width in minutes"`
	TsStartT  int64           `form:"tsStartT"`
	TsEndT    int64           `form:"tsEndT"`
	Suppliers string          `form:"suppliers" doc:"JSON array of suppliers"`
}

type UploadBizMatchRequest struct {
	auth.AuthInput
	RawBody huma.MultipartFormFiles[BizMatchFormData]
}

type UploadBizMatchResponse struct {
	Body struct {
		Success bool   `json:"success"`
		Data    string `json:"data" doc:"Created biz-match id"`
		Err     string `json:"err"`
	}
}

func (h *BizMatchHandler) HandleUploadBizMatch(ctx context.Context, input *UploadBizMatchRequest) (*UploadBizMatchResponse, error) {
	orgID, err := h.authHandler.Authorize(input.AuthInput)
	if err != nil {
		return nil, err
	}

	data := input.RawBody.Data()

	var suppliers []SupplierInput
	if err := json.Unmarshal([]byte(data.Suppliers), &suppliers); err != nil {
		return nil, huma.Error400BadRequest("Incomplete parameters.")
	}
	if len(suppliers) == 0 || len(suppliers) != len(data.Logos) {
		return nil, huma.Error400BadRequest("Incomplete parameters.")
	}
	if data.Name == "" || data.Lim <= 0 || data.Inc <= 0 ||
		data.StartT >= data.EndT || data.TsStartT >= data.TsEndT {
		return nil, huma.Error400BadRequest("Incomplete parameters.")
	}

	conflict, err := h.scheduleConflict(ctx, orgID, data.StartT, data.EndT)
	if err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}
	if conflict {
		return nil, huma.Error409Conflict("BizMatch not uploaded. Conflicts with another event in the same date.")
	}

	// Supplier logos upload in parallel; a single failure aborts the batch.
	uploads := make([]*storage.UploadResult, len(data.Logos))
	g, gctx := errgroup.WithContext(ctx)
	for i := range data.Logos {
		i := i
		g.Go(func() error {
			logo := data.Logos[i]
			path, err := storage.SaveTemp(h.uploadDir, logo, filepath.Ext(logo.Filename))
			if err != nil {
				return err
			}
			defer os.Remove(path)

			upl, err := h.store.Upload(gctx, path)
			if err != nil {
				return err
			}
			uploads[i] = upl
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("supplier logo upload failed")
		return nil, huma.Error403Forbidden("Fail to upload supplier logos.")
	}

	slots := GenerateTimeslots(data.TsStartT, data.TsEndT, data.Inc, data.Lim)

	biz := models.BizMatch{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(data.Name),
		Date:           data.Date,
		StartT:         data.StartT,
		EndT:           data.EndT,
		OrganizationID: orgID,
		Lim:            data.Lim,
		Offset:         data.Offset,
		TimeslotsCount: len(slots),
		SuppliersCount: len(suppliers),
		UplOn:          time.Now(),
	}
	if err := h.db.WithContext(ctx).Create(&biz).Error; err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}

	slotsJSON, err := json.Marshal(slots)
	if err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}

	for i, supplier := range suppliers {
		sheetID := uuid.NewString()
		if err := h.db.WithContext(ctx).Create(&models.TimeslotSheet{
			ID:    sheetID,
			Slots: string(slotsJSON),
		}).Error; err != nil {
			return nil, huma.Error403Forbidden("Error in uploading suppliers.")
		}
		if err := h.db.WithContext(ctx).Create(&models.Supplier{
			ID:          uuid.NewString(),
			Name:        strings.TrimSpace(supplier.Name),
			Country:     supplier.Country,
			Description: strings.TrimSpace(supplier.Description),
			Website:     strings.TrimSpace(supplier.Website),
			URL:         uploads[i].SecureURL,
			BizMatchID:  biz.ID,
			Timeslots:   sheetID,
		}).Error; err != nil {
			return nil, huma.Error403Forbidden("Error in uploading suppliers.")
		}
	}

	res := &UploadBizMatchResponse{}
	res.Body.Success = true
	res.Body.Data = biz.ID
	return res, nil
}

// scheduleConflict reports whether an existing biz-match of the org overlaps
// the [startT, endT] range. Unlike ordinary events the bounds are inclusive.
func (h *BizMatchHandler) scheduleConflict(ctx context.Context, orgID string, startT, endT int64) (bool, error) {
	var conflicts int64
	err := h.db.WithContext(ctx).Model(&models.BizMatch{}).
		Where("organization_id = ? AND start_t <= ? AND end_t >= ?", orgID, startT, endT).
		Count(&conflicts).Error
	return conflicts > 0, err
}

// GenerateTimeslots produces fixed-width meeting intervals covering
// [start, end), incMinutes wide, each with lim open slots. The final interval
// may extend past end, matching a width that does not divide the range.
func GenerateTimeslots(start, end int64, incMinutes, lim int) []models.Timeslot {
	if incMinutes <= 0 {
		return nil
	}
	inc := int64(incMinutes) * 60

	var slots []models.Timeslot
	for cur := start; cur < end; cur += inc {
		slots = append(slots, models.Timeslot{
			Start:          cur,
			End:            cur + inc,
			SlotsAvailable: lim,
			SlotsSet:       lim,
			Atendee:        []string{},
		})
	}
	return slots
}
