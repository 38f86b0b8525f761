package source

import "time"

// Window is the inclusive date range requested from a provider.
type Window struct {
	From time.Time
	Till time.Time
}

// TwoDayWindow returns yesterday through today in now's location. The
// history APIs are asked for "the most recent point in a short window"; no
// market calendar is consulted, weekends and holidays simply yield an empty
// history.
func TwoDayWindow(now time.Time) Window {
	return Window{
		From: now.AddDate(0, 0, -1),
		Till: now,
	}
}

// SingleDay degenerates the window to one day. The Vienna export is queried
// for the current day only.
func SingleDay(now time.Time) Window {
	return Window{From: now, Till: now}
}
