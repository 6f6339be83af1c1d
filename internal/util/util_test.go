package util

import (
	"testing"
	"time"
)

func TestFormatUnix(t *testing.T) {
	// 06:00 UTC on March 15.
	sec := time.Date(2025, 3, 15, 6, 0, 0, 0, time.UTC).Unix()

	cases := []struct {
		name      string
		offsetMin int
		layout    string
		want      string
	}{
		{"UTC", 0, "Jan 02, 2006 03:04 PM", "Mar 15, 2025 06:00 AM"},
		{"EastOfUTC", -480, "Jan 02, 2006 03:04 PM", "Mar 15, 2025 02:00 PM"},
		{"WestOfUTC", 300, "Jan 02, 2006 03:04 PM", "Mar 15, 2025 01:00 AM"},
		{"DayRollover", -1080, "Jan 02, 2006", "Mar 16, 2025"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatUnix(sec, tc.offsetMin, tc.layout); got != tc.want {
				t.Errorf("FormatUnix(%d, %d) = %q, want %q", sec, tc.offsetMin, got, tc.want)
			}
		})
	}
}

func TestEmailRx(t *testing.T) {
	valid := []string{
		"juan@example.com",
		"juan.dela-cruz+tag@sub.example.co",
	}
	for _, email := range valid {
		if !EmailRx.MatchString(email) {
			t.Errorf("EmailRx rejected %q", email)
		}
	}

	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
	}
	for _, email := range invalid {
		if EmailRx.MatchString(email) {
			t.Errorf("EmailRx accepted %q", email)
		}
	}
}

func TestWebsiteRx(t *testing.T) {
	valid := []string{
		"https://ctx.example.com",
		"http://www.example.co",
		"example.com",
	}
	for _, site := range valid {
		if !WebsiteRx.MatchString(site) {
			t.Errorf("WebsiteRx rejected %q", site)
		}
	}

	invalid := []string{
		"",
		"not a website",
		"ftp://example.com",
	}
	for _, site := range invalid {
		if WebsiteRx.MatchString(site) {
			t.Errorf("WebsiteRx accepted %q", site)
		}
	}
}
