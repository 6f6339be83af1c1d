package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/charliecatxph/eventra-backend/internal/models"
	"github.com/charliecatxph/eventra-backend/internal/util"
)

const qrAttachmentName = "eventra-qrId.png"

var confirmationHTML = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <title>Event Confirmation</title>
  </head>
  <body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; color: #333333; background-color: #f9f9f9;">
    <table align="center" width="100%" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-collapse: collapse;">
      <tr>
        <td style="padding: 0; background-color: #4cbaa1; height: 8px"></td>
      </tr>
      <tr>
        <td style="padding: 30px 30px 20px 30px; text-align: center">
          <h1 style="margin: 0; font-size: 28px; color: #4cbaa1">Event Confirmation</h1>
        </td>
      </tr>
      <tr>
        <td style="padding: 0 30px">
          <p style="margin: 0; font-size: 16px">Hello, <strong>{{.AttendeeName}}</strong>,</p>
          <p style="margin: 15px 0 0 0; font-size: 16px">
            Thank you for registering for our event. We're excited to have you
            join us! Below are the details of the event:
          </p>
        </td>
      </tr>
      <tr>
        <td style="padding: 20px 30px">
          <table width="100%" style="background-color: #f5f7ff; border-radius: 8px; border-collapse: collapse">
            <tr><td style="padding: 25px 25px 0 25px"><h2 style="margin: 0; font-size: 22px; color: #4cbaa1">{{.EventName}}</h2></td></tr>
            <tr><td style="padding: 10px 25px 0 25px"><p style="margin: 0; font-size: 16px"><strong>Date:</strong> {{.Date}}</p></td></tr>
            <tr><td style="padding: 10px 25px 0 25px"><p style="margin: 0; font-size: 16px"><strong>Time:</strong> {{.StartTime}} - {{.EndTime}}</p></td></tr>
            <tr><td style="padding: 10px 25px 25px 25px"><p style="margin: 0; font-size: 16px"><strong>Location:</strong> {{.Location}}</p></td></tr>
          </table>
        </td>
      </tr>
      <tr>
        <td style="padding: 10px 30px">
          <h3 style="margin: 0; font-size: 18px; color: #4cbaa1">Before the Event</h3>
          <p style="margin: 10px 0 0 0; font-size: 16px">
            Please find an attached QR code in this email, which serves as your
            entry pass to the event. Ensure you have it readily available and
            present it upon arrival at the venue.
          </p>
        </td>
      </tr>
      <tr>
        <td style="padding: 10px 30px">
          <h3 style="margin: 0; font-size: 18px; color: #4cbaa1">During the Event</h3>
          <p style="margin: 10px 0 0 0; font-size: 16px">
            Upon arrival, please approach the registration table where our team
            will scan your QR code. After scanning, you will be issued an
            Eventra Passport, which you can use throughout the duration of the
            event. With your Eventra Passport, you will be able to scan other
            attendees' passports to access their information.
          </p>
        </td>
      </tr>
      <tr>
        <td style="padding: 10px 30px 30px 30px">
          <h3 style="margin: 0; font-size: 18px; color: #4cbaa1">After the Event</h3>
          <p style="margin: 10px 0 0 0; font-size: 16px">
            Once the event concludes, your Eventra Passport will become
            inactive. Be sure to utilize it while the event is ongoing to take
            full advantage of its features.
          </p>
        </td>
      </tr>
      {{if .BrochureURL}}
      <tr>
        <td style="padding: 0 30px 20px 30px">
          <p style="margin: 0; font-size: 16px">
            For more information, download the event brochure:
            <a href="{{.BrochureURL}}">Download Brochure</a>
          </p>
        </td>
      </tr>
      {{end}}
      <tr>
        <td style="padding: 20px 30px; text-align: center; background-color: #f5f7ff">
          <p style="margin: 0; font-size: 14px; color: #4cbaa1">Powered by Eventra Events</p>
          <p style="margin: 5px 0 0 0; font-size: 12px; color: #666666">Made by <b>CTX Technologies (CTX Softwares Philippines)</b></p>
        </td>
      </tr>
    </table>
  </body>
</html>
`))

type confirmationData struct {
	AttendeeName string
	EventName    string
	Date         string
	StartTime    string
	EndTime      string
	Location     string
	BrochureURL  string
}

// Confirmation builds the registration confirmation email for an attendee,
// with the credential QR attached by its remote URL. Event times are rendered
// in the event's own UTC offset.
func Confirmation(ev *models.Event, atn *models.Attendee, from, origin string) *Message {
	data := confirmationData{
		AttendeeName: atn.Name,
		EventName:    ev.Name,
		Date:         util.FormatUnix(ev.Date, ev.Offset, "Monday, Jan 02, 2006"),
		StartTime:    util.FormatUnix(ev.StartT, ev.Offset, "03:04 PM"),
		EndTime:      util.FormatUnix(ev.EndT, ev.Offset, "03:04 PM"),
		Location:     ev.Location,
	}
	if origin != "" {
		data.BrochureURL = origin + "/assets/MPOF25-Philippines_USD.pdf"
	}

	var html bytes.Buffer
	if err := confirmationHTML.Execute(&html, data); err != nil {
		// The template is static; execution only fails on a programming error.
		panic(err)
	}

	text := fmt.Sprintf("Hello, %s,\n \nThank you for registering for our event. We're excited to have you join us! Below are the details of the event: \n \nDate: %s \nTime: %s - %s\nLocation: %s\n\n"+
		"Before the Event:\nPlease find an attached QR code in this email, which serves as your entry pass to the event. Ensure you have it readily available and present it upon arrival at the venue.\n"+
		"During the event:\nUpon arrival, please approach the registration table where our team will scan your QR code. After scanning, you will be issued an Eventra Passport, which you can use throughout the duration of the event. With your Eventra Passport, you will be able to scan other attendees' passports to access their information.\n"+
		"After the event:\nOnce the event concludes, your Eventra Passport will become inactive. Be sure to utilize it while the event is ongoing to take full advantage of its features.\n\n"+
		"Powered by Eventra Events\nMade by CTX Technologies (CTX Softwares Philippines)",
		atn.Name,
		util.FormatUnix(ev.Date, ev.Offset, "Jan 02, 2006"),
		util.FormatUnix(ev.StartT, ev.Offset, "03:04 PM"),
		util.FormatUnix(ev.EndT, ev.Offset, "03:04 PM"),
		ev.Location,
	)

	return &Message{
		From:    fmt.Sprintf("%s <%s>", strings.TrimSpace(ev.Name), from),
		To:      strings.TrimSpace(atn.Email),
		Subject: fmt.Sprintf("%s Event Confirmation", ev.Name),
		Text:    text,
		HTML:    html.String(),
		Attachments: []Attachment{
			{Filename: qrAttachmentName, URL: atn.QRSecureURL},
		},
	}
}
