// Package schedule decides whether a branch or delivery zone is open at a
// given wall-clock instant, using a weekly table of daily windows.
package schedule

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Window is one day's opening window. Open and Close are "HH:MM" strings.
type Window struct {
	IsOpen bool   `json:"isOpen"`
	Open   string `json:"open"`
	Close  string `json:"close"`
}

// Weekly maps a weekday to its window. A missing day is closed.
type Weekly map[time.Weekday]Window

var dayKeys = [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// DayKey returns the lowercase English key for d ("monday", ...).
func DayKey(d time.Weekday) string {
	return dayKeys[d%7]
}

// ParseDay is the inverse of DayKey.
func ParseDay(key string) (time.Weekday, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for i, k := range dayKeys {
		if k == key {
			return time.Weekday(i), true
		}
	}
	return 0, false
}

// Days lists the weekdays Monday first, the order forms present them in.
func Days() []time.Weekday {
	return []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday}
}

// Every returns a schedule using the same window for all seven days.
func Every(from, to string) Weekly {
	w := make(Weekly, 7)
	for _, d := range Days() {
		w[d] = Window{IsOpen: true, Open: from, Close: to}
	}
	return w
}

func (w Weekly) MarshalJSON() ([]byte, error) {
	out := make(map[string]Window, len(w))
	for d, win := range w {
		out[DayKey(d)] = win
	}
	return json.Marshal(out)
}

func (w *Weekly) UnmarshalJSON(data []byte) error {
	var in map[string]Window
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	out := make(Weekly, len(in))
	for k, win := range in {
		d, ok := ParseDay(k)
		if !ok {
			return fmt.Errorf("unknown weekday %q", k)
		}
		out[d] = win
	}
	*w = out
	return nil
}

// ParseClock converts "HH:MM" to minutes after midnight.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, fmt.Errorf("malformed clock %q", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("malformed clock %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("malformed clock %q", s)
	}
	return h*60 + m, nil
}

// Clock formats t's time of day as "HH:MM".
func Clock(t time.Time) string {
	return t.Format("15:04")
}

// Evaluator carries the policy for windows whose close is earlier than their open.
// With Overnight unset such a window is never open, which is how the storefront
// has always behaved. With Overnight set the window runs past midnight into the
// next day.
type Evaluator struct {
	Overnight bool
}

// IsOpenAt reports whether at falls inside the window of its weekday, inclusive
// at both ends. Seconds are ignored.
func (e Evaluator) IsOpenAt(w Weekly, at time.Time) bool {
	now := at.Hour()*60 + at.Minute()
	day := at.Weekday()

	if win, ok := w[day]; ok && win.IsOpen {
		start, errO := ParseClock(win.Open)
		end, errC := ParseClock(win.Close)
		if errO == nil && errC == nil {
			if start <= end {
				if start <= now && now <= end {
					return true
				}
			} else if e.Overnight && now >= start {
				return true
			}
		}
	}

	if !e.Overnight {
		return false
	}

	// Spill-over from yesterday's overnight window.
	prev, ok := w[(day+6)%7]
	if !ok || !prev.IsOpen {
		return false
	}
	start, errO := ParseClock(prev.Open)
	end, errC := ParseClock(prev.Close)
	if errO != nil || errC != nil || start <= end {
		return false
	}
	return now <= end
}

// DayStatus is the evaluated state for one instant, with that day's window.
type DayStatus struct {
	Open   bool      `json:"open"`
	Day    string    `json:"day"`
	Window Window    `json:"window"`
	At     time.Time `json:"at"`
}

// Status evaluates at and returns the day's window alongside the verdict.
func (e Evaluator) Status(w Weekly, at time.Time) DayStatus {
	return DayStatus{
		Open:   e.IsOpenAt(w, at),
		Day:    DayKey(at.Weekday()),
		Window: w[at.Weekday()],
		At:     at,
	}
}

// IsOpenAt evaluates with the default same-day policy.
func IsOpenAt(w Weekly, at time.Time) bool {
	return Evaluator{}.IsOpenAt(w, at)
}
