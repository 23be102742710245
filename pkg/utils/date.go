package utils

import (
	"sync"
	"time"

	"market-risk-radar/pkg/common"
)

var (
	locationMu sync.RWMutex
	location   = time.Local
)

// SetTimeZone switches the location used by TimeNow. An empty name keeps the
// process local time zone.
func SetTimeZone(name string) error {
	if name == "" {
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return err
	}
	locationMu.Lock()
	location = loc
	locationMu.Unlock()
	return nil
}

// GetLocation returns the configured report location.
func GetLocation() *time.Location {
	locationMu.RLock()
	defer locationMu.RUnlock()
	return location
}

// TimeNow returns the current time in the configured location.
func TimeNow() time.Time {
	return time.Now().In(GetLocation())
}

// FormatDateTime renders t as "2006-01-02 15:04:05", the layout used for
// publish times and update timestamps.
func FormatDateTime(t time.Time) string {
	return t.Format(common.DateTimeLayout)
}

// PrettyDate renders t for chat messages.
func PrettyDate(t time.Time) string {
	return t.In(GetLocation()).Format("Mon, 02 Jan 2006 15:04")
}
