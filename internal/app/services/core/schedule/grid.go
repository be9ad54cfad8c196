package schedule

import (
	"errors"
	"fmt"
	"iter"
	"roombook-service/internal/pkg/constvars"
	"time"
)

const (
	SlotMinutes      = constvars.BookingSlotMinutes
	SlotCount        = constvars.BookingSlotCount
	FirstSlotMinutes = constvars.BookingFirstSlotMinutes
	LastSlotMinutes  = FirstSlotMinutes + (SlotCount-1)*SlotMinutes
)

var (
	ErrInvalidInterval  = errors.New("end time must be after start time")
	ErrInvalidTimeOfDay = errors.New("time of day must be HH:mm")
)

// Day is one entry of the week strip.
type Day struct {
	Date      string `json:"date"`
	Label     string `json:"label"`
	DayNumber int    `json:"dayNumber"`
}

// DailySlots yields the 19 half-hour slot labels from 09:00 to 18:00.
// Each range over the sequence starts again from 09:00.
func DailySlots() iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := 0; i < SlotCount; i++ {
			if !yield(FormatTimeOfDay(FirstSlotMinutes + i*SlotMinutes)) {
				return
			}
		}
	}
}

// SlotLabels collects DailySlots into a slice.
func SlotLabels() []string {
	labels := make([]string, 0, SlotCount)
	for label := range DailySlots() {
		labels = append(labels, label)
	}
	return labels
}

// IsSlotLabel reports whether value is one of the DailySlots labels.
func IsSlotLabel(value string) bool {
	minutes, err := ParseTimeOfDay(value)
	if err != nil || FormatTimeOfDay(minutes) != value {
		return false
	}
	if minutes < FirstSlotMinutes || minutes > LastSlotMinutes {
		return false
	}
	return (minutes-FirstSlotMinutes)%SlotMinutes == 0
}

// WeekStrip returns today and the six following calendar days.
func WeekStrip(today time.Time) []Day {
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	days := make([]Day, 0, 7)
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		label := d.Format("Mon")
		if i == 0 {
			label = constvars.WeekStripToday
		}
		days = append(days, Day{
			Date:      d.Format(constvars.DateLayout),
			Label:     label,
			DayNumber: d.Day(),
		})
	}
	return days
}

// ParseTimeOfDay converts "HH:mm" into minutes after midnight.
func ParseTimeOfDay(value string) (int, error) {
	t, err := time.Parse(constvars.TimeOfDayLayout, value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, value)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatTimeOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Today formats the calendar date of now in its own location.
func Today(now time.Time) string {
	return now.Format(constvars.DateLayout)
}
