// Package clock provides wall-clock access, the month calendar and the
// time-of-day arithmetic behind "schedule".
package clock

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	taierrors "thoreinstein.com/tai/pkg/errors"
)

// DateTimeLayout formats the "show date and time" output.
const DateTimeLayout = "2006-01-02 15:04:05"

// System is the local wall clock.
type System struct{}

// New creates a System clock.
func New() *System {
	return &System{}
}

// Now returns the current local time.
func (System) Now() time.Time {
	return time.Now()
}

// Sleep blocks for d or until ctx is done.
func (System) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ParseTimeOfDay parses an "HH:MM" 24-hour time.
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, taierrors.NewInvalidArgumentError("schedule",
			fmt.Sprintf("invalid time %q, expected HH:MM", s), nil)
	}
	return t.Hour(), t.Minute(), nil
}

// UntilNext returns the whole-second delay from now until the next
// occurrence of hour:minute, in [0, 24h). The seconds already elapsed in the
// current minute count, so a target equal to now's minute waits almost a
// full day unless now is exactly on the minute.
func UntilNext(now time.Time, hour, minute int) time.Duration {
	const day = 24 * 3600

	nowSecs := now.Hour()*3600 + now.Minute()*60 + now.Second()
	target := hour*3600 + minute*60
	secs := ((target-nowSecs)%day + day) % day
	return time.Duration(secs) * time.Second
}

// Calendar renders the month containing now as a grid: the centred
// "Month YYYY" title, a weekday header starting on Sunday, and one line per
// week with right-aligned day numbers. Every line ends with a newline.
func Calendar(now time.Time) string {
	var sb strings.Builder

	sb.WriteString(center(now.Format("January 2006"), 20))
	sb.WriteString("\nSu Mo Tu We Th Fr Sa\n")

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	days := first.AddDate(0, 1, -1).Day()

	cells := make([]string, 0, 42)
	for range int(first.Weekday()) {
		cells = append(cells, "  ")
	}
	for d := 1; d <= days; d++ {
		cells = append(cells, fmt.Sprintf("%2d", d))
	}
	for len(cells)%7 != 0 {
		cells = append(cells, "  ")
	}

	for i := 0; i < len(cells); i += 7 {
		sb.WriteString(strings.Join(cells[i:i+7], " "))
		sb.WriteByte('\n')
	}

	return sb.String()
}

// center pads s to width, putting the odd extra space on the right.
func center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}
