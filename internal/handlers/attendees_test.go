package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/charliecatxph/eventra-backend/internal/models"
	"github.com/danielgtaylor/huma/v2"
)

func TestHandleGetAttendees(t *testing.T) {
	db := newTestDB(t)
	authHandler, authIn, _ := newTestAuth(t, db)
	h := NewAttendeeHandler(db, &fakeStorage{}, &recordingMailer{}, authHandler, "events@vinceoleo.com", "")

	now := time.Now()
	createAttendee(t, db, "atn-1", "ev-1", "Zara", "zara@example.com", now)
	createAttendee(t, db, "atn-2", "ev-1", "Andres", "andres@example.com", now)
	createAttendee(t, db, "atn-3", "ev-other", "Pedro", "pedro@example.com", now)

	t.Run("Count", func(t *testing.T) {
		req := &GetAttendeesRequest{AuthInput: authIn, Mode: "count"}
		req.Body.EvID = "ev-1"
		res, err := h.HandleGetAttendees(context.Background(), req)
		if err != nil {
			t.Fatalf("HandleGetAttendees returned error: %v", err)
		}
		if count, ok := res.Body.Data.(int64); !ok || count != 2 {
			t.Errorf("expected count 2, got %v", res.Body.Data)
		}
	})

	t.Run("List", func(t *testing.T) {
		req := &GetAttendeesRequest{AuthInput: authIn, Mode: "list"}
		req.Body.EvID = "ev-1"
		res, err := h.HandleGetAttendees(context.Background(), req)
		if err != nil {
			t.Fatalf("HandleGetAttendees returned error: %v", err)
		}
		attendees, ok := res.Body.Data.([]models.Attendee)
		if !ok {
			t.Fatalf("expected attendee list, got %T", res.Body.Data)
		}
		if len(attendees) != 2 {
			t.Fatalf("expected 2 attendees, got %d", len(attendees))
		}
		if attendees[0].Name != "Andres" || attendees[1].Name != "Zara" {
			t.Errorf("expected name asc order, got %s, %s", attendees[0].Name, attendees[1].Name)
		}
	})
}

func TestHandleUpdateAttendee(t *testing.T) {
	db := newTestDB(t)
	authHandler, authIn, _ := newTestAuth(t, db)
	h := NewAttendeeHandler(db, &fakeStorage{}, &recordingMailer{}, authHandler, "events@vinceoleo.com", "")

	createAttendee(t, db, "atn-1", "ev-1", "Juan", "juan@example.com", time.Now())

	req := &UpdateAttendeeRequest{AuthInput: authIn}
	req.Body.ID = "atn-1"
	req.Body.Data = map[string]any{
		"orgN":    "New Corp",
		"id":      "atn-hijack",
		"evId":    "ev-hijack",
		"unknown": "ignored",
	}
	res, err := h.HandleUpdateAttendee(context.Background(), req)
	if err != nil {
		t.Fatalf("HandleUpdateAttendee returned error: %v", err)
	}
	if res.Body.Data.Msg != "Atendee updated." {
		t.Errorf("unexpected msg %q", res.Body.Data.Msg)
	}
	if res.Body.Data.OrgN != "New Corp" {
		t.Errorf("expected merged orgN, got %q", res.Body.Data.OrgN)
	}
	// The response flags attended regardless of what was stored.
	if !res.Body.Data.Attended {
		t.Error("response must report attended true")
	}

	var stored models.Attendee
	if err := db.First(&stored, "id = ?", "atn-1").Error; err != nil {
		t.Fatalf("attendee gone after update: %v", err)
	}
	if stored.OrgN != "New Corp" {
		t.Errorf("orgN not persisted, got %q", stored.OrgN)
	}
	if stored.Attended {
		t.Error("attended must not be persisted when not supplied")
	}
	if stored.EvID != "ev-1" {
		t.Errorf("non-whitelisted field leaked into storage: evId=%q", stored.EvID)
	}

	// Merging the same data again must not change the stored record.
	if _, err := h.HandleUpdateAttendee(context.Background(), req); err != nil {
		t.Fatalf("second update returned error: %v", err)
	}
	var again models.Attendee
	db.First(&again, "id = ?", "atn-1")
	if again.OrgN != stored.OrgN || again.Attended != stored.Attended {
		t.Error("update is not idempotent")
	}
}

func TestHandleUpdateAttendee_PersistsAttendedWhenSupplied(t *testing.T) {
	db := newTestDB(t)
	authHandler, authIn, _ := newTestAuth(t, db)
	h := NewAttendeeHandler(db, &fakeStorage{}, &recordingMailer{}, authHandler, "events@vinceoleo.com", "")

	createAttendee(t, db, "atn-1", "ev-1", "Juan", "juan@example.com", time.Now())

	req := &UpdateAttendeeRequest{AuthInput: authIn}
	req.Body.ID = "atn-1"
	req.Body.Data = map[string]any{"attended": true}
	if _, err := h.HandleUpdateAttendee(context.Background(), req); err != nil {
		t.Fatalf("HandleUpdateAttendee returned error: %v", err)
	}

	var stored models.Attendee
	db.First(&stored, "id = ?", "atn-1")
	if !stored.Attended {
		t.Error("attended must be persisted when supplied")
	}
}

func TestHandleUpdateAttendee_NotFound(t *testing.T) {
	db := newTestDB(t)
	authHandler, authIn, _ := newTestAuth(t, db)
	h := NewAttendeeHandler(db, &fakeStorage{}, &recordingMailer{}, authHandler, "events@vinceoleo.com", "")

	req := &UpdateAttendeeRequest{AuthInput: authIn}
	req.Body.ID = "missing"
	req.Body.Data = map[string]any{"name": "X"}
	_, err := h.HandleUpdateAttendee(context.Background(), req)

	var se huma.StatusError
	if !errors.As(err, &se) || se.GetStatus() != 404 {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestHandleDeleteAttendee(t *testing.T) {
	db := newTestDB(t)
	authHandler, authIn, _ := newTestAuth(t, db)
	store := &fakeStorage{}
	h := NewAttendeeHandler(db, store, &recordingMailer{}, authHandler, "events@vinceoleo.com", "")

	createAttendee(t, db, "atn-1", "ev-1", "Juan", "juan@example.com", time.Now())

	req := &DeleteAttendeeRequest{AuthInput: authIn}
	req.Body.ID = "atn-1"
	req.Body.QRID = "qr-atn-1"
	res, err := h.HandleDeleteAttendee(context.Background(), req)
	if err != nil {
		t.Fatalf("HandleDeleteAttendee returned error: %v", err)
	}
	if res.Body.Msg != "Atendee has been deleted." {
		t.Errorf("unexpected msg %q", res.Body.Msg)
	}

	var count int64
	db.Model(&models.Attendee{}).Count(&count)
	if count != 0 {
		t.Errorf("expected attendee removed, got %d records", count)
	}
	if len(store.destroyed) != 1 || store.destroyed[0] != "qr-atn-1" {
		t.Errorf("expected QR image destroyed, destroyed=%v", store.destroyed)
	}
}

func TestHandleDeleteAttendee_StorageFailure(t *testing.T) {
	db := newTestDB(t)
	authHandler, authIn, _ := newTestAuth(t, db)
	h := NewAttendeeHandler(db, &fakeStorage{destroyErr: errors.New("cloud down")}, &recordingMailer{}, authHandler, "events@vinceoleo.com", "")

	createAttendee(t, db, "atn-1", "ev-1", "Juan", "juan@example.com", time.Now())

	req := &DeleteAttendeeRequest{AuthInput: authIn}
	req.Body.ID = "atn-1"
	req.Body.QRID = "qr-atn-1"
	_, err := h.HandleDeleteAttendee(context.Background(), req)

	var se huma.StatusError
	if !errors.As(err, &se) || se.GetStatus() != 403 {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestHandleResendEmail(t *testing.T) {
	db := newTestDB(t)
	authHandler, authIn, org := newTestAuth(t, db)
	mail := &recordingMailer{}
	h := NewAttendeeHandler(db, &fakeStorage{}, mail, authHandler, "events@vinceoleo.com", "")

	now := time.Now()
	createEvent(t, db, "ev-1", org.ID, now.Unix(), now.Add(time.Hour).Unix())
	createAttendee(t, db, "atn-1", "ev-1", "Juan", "juan@example.com", now)

	req := &ResendEmailRequest{AuthInput: authIn}
	req.Body.ID = "atn-1"
	res, err := h.HandleResendEmail(context.Background(), req)
	if err != nil {
		t.Fatalf("HandleResendEmail returned error: %v", err)
	}
	if res.Body.Msg != "Atendee has been sent a confirmation e-mail." {
		t.Errorf("unexpected msg %q", res.Body.Msg)
	}

	if len(mail.sent) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(mail.sent))
	}
	if mail.sent[0].To != "juan@example.com" {
		t.Errorf("mail addressed to %s", mail.sent[0].To)
	}

	var count int64
	db.Model(&models.Attendee{}).Count(&count)
	if count != 1 {
		t.Error("resend must not modify the attendee collection")
	}
}

func TestHandleResendEmail_UnknownAttendee(t *testing.T) {
	db := newTestDB(t)
	authHandler, authIn, _ := newTestAuth(t, db)
	h := NewAttendeeHandler(db, &fakeStorage{}, &recordingMailer{}, authHandler, "events@vinceoleo.com", "")

	req := &ResendEmailRequest{AuthInput: authIn}
	req.Body.ID = "missing"
	if _, err := h.HandleResendEmail(context.Background(), req); err == nil {
		t.Fatal("expected an error for an unknown attendee")
	}
}
