package mailer

import (
	"strings"
	"testing"
	"time"

	"github.com/charliecatxph/eventra-backend/internal/models"
)

func confirmationFixtures() (*models.Event, *models.Attendee) {
	// 06:00 UTC is 14:00 at UTC+8 (browser offset -480).
	start := time.Date(2025, 3, 15, 6, 0, 0, 0, time.UTC).Unix()
	ev := &models.Event{
		ID:       "ev-1",
		Name:     "Tech Summit",
		Location: "Manila",
		Offset:   -480,
		Date:     start,
		StartT:   start,
		EndT:     start + 2*3600,
	}
	atn := &models.Attendee{
		ID:          "atn-1",
		Name:        "Juan Dela Cruz",
		Email:       "juan@example.com",
		QRSecureURL: "https://cdn.example.com/qr.png",
	}
	return ev, atn
}

func TestConfirmation(t *testing.T) {
	ev, atn := confirmationFixtures()

	msg := Confirmation(ev, atn, "events@vinceoleo.com", "")

	if msg.From != "Tech Summit <events@vinceoleo.com>" {
		t.Errorf("unexpected From: %q", msg.From)
	}
	if msg.To != "juan@example.com" {
		t.Errorf("unexpected To: %q", msg.To)
	}
	if msg.Subject != "Tech Summit Event Confirmation" {
		t.Errorf("unexpected Subject: %q", msg.Subject)
	}

	if len(msg.Attachments) != 1 {
		t.Fatalf("expected 1 attachment, got %d", len(msg.Attachments))
	}
	if msg.Attachments[0].Filename != "eventra-qrId.png" || msg.Attachments[0].URL != atn.QRSecureURL {
		t.Errorf("unexpected attachment: %+v", msg.Attachments[0])
	}

	// Times must render in the event's own zone, not UTC.
	if !strings.Contains(msg.Text, "Mar 15, 2025") {
		t.Errorf("text missing local date:\n%s", msg.Text)
	}
	if !strings.Contains(msg.Text, "02:00 PM - 04:00 PM") {
		t.Errorf("text missing local time range:\n%s", msg.Text)
	}
	if !strings.Contains(msg.HTML, "Saturday, Mar 15, 2025") {
		t.Error("html missing long-form local date")
	}
	if !strings.Contains(msg.HTML, "Juan Dela Cruz") {
		t.Error("html missing attendee name")
	}
	if strings.Contains(msg.HTML, "Download Brochure") {
		t.Error("brochure link must be absent without an origin")
	}
}

func TestConfirmation_BrochureLink(t *testing.T) {
	ev, atn := confirmationFixtures()

	msg := Confirmation(ev, atn, "events@vinceoleo.com", "https://eventra.example.com")

	if !strings.Contains(msg.HTML, "https://eventra.example.com/assets/MPOF25-Philippines_USD.pdf") {
		t.Error("expected brochure link for the configured origin")
	}
}

func TestConfirmation_TrimsAddressing(t *testing.T) {
	ev, atn := confirmationFixtures()
	ev.Name = " Tech Summit "
	atn.Email = " juan@example.com "

	msg := Confirmation(ev, atn, "events@vinceoleo.com", "")

	if msg.From != "Tech Summit <events@vinceoleo.com>" {
		t.Errorf("event name not trimmed in From: %q", msg.From)
	}
	if msg.To != "juan@example.com" {
		t.Errorf("email not trimmed in To: %q", msg.To)
	}
}
