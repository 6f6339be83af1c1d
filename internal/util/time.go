package util

import (
	"time"
)

// FormatUnix renders a unix-seconds timestamp in the zone described by a
// browser-style UTC offset (minutes, positive west of UTC).
func FormatUnix(sec int64, offsetMin int, layout string) string {
	loc := time.FixedZone("", -offsetMin*60)
	return time.Unix(sec, 0).In(loc).Format(layout)
}
