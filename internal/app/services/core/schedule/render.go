package schedule

import (
	"fmt"
	"roombook-service/internal/app/models"
	"roombook-service/internal/pkg/constvars"
	"sort"
	"time"
)

type Row struct {
	Slot         string          `json:"slot"`
	Booking      *models.Booking `json:"booking,omitempty"`
	Span         int             `json:"span,omitempty"`
	Owned        bool            `json:"owned"`
	Inconsistent bool            `json:"inconsistent,omitempty"`
}

type Schedule struct {
	Date     string           `json:"date"`
	Header   string           `json:"header"`
	Rows     []Row            `json:"rows"`
	Unplaced []models.Booking `json:"unplaced,omitempty"`
}

// Render lays the bookings of selectedDate onto the daily slot grid.
// A booking lands on the slot whose 30 minute window holds its start time.
// Durations that are not a whole number of slots are rounded up and flagged.
func Render(selectedDate string, bookings []models.Booking, currentUserID string) Schedule {
	result := Schedule{
		Date:   selectedDate,
		Header: Header(selectedDate),
		Rows:   make([]Row, 0, SlotCount),
	}

	dayBookings := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Date == selectedDate {
			dayBookings = append(dayBookings, b)
		}
	}
	sort.SliceStable(dayBookings, func(i, j int) bool {
		return dayBookings[i].StartTime < dayBookings[j].StartTime
	})

	placed := make(map[int]bool, len(dayBookings))
	for slot := range DailySlots() {
		row := Row{Slot: slot}
		slotStart, _ := ParseTimeOfDay(slot)

		for i, b := range dayBookings {
			if placed[i] {
				continue
			}
			start, err := ParseTimeOfDay(b.StartTime)
			if err != nil || start < slotStart || start >= slotStart+SlotMinutes {
				continue
			}

			booking := dayBookings[i]
			row.Booking = &booking
			row.Span, row.Inconsistent = span(b)
			row.Owned = b.IsOwnedBy(currentUserID)
			placed[i] = true
			break
		}
		result.Rows = append(result.Rows, row)
	}

	for i, b := range dayBookings {
		if !placed[i] {
			result.Unplaced = append(result.Unplaced, b)
		}
	}
	return result
}

// span returns the rendered height in slots and whether the duration is off the grid.
func span(b models.Booking) (int, bool) {
	start, errStart := ParseTimeOfDay(b.StartTime)
	end, errEnd := ParseTimeOfDay(b.EndTime)
	if errStart != nil || errEnd != nil || end <= start {
		return 1, true
	}

	duration := end - start
	slots := (duration + SlotMinutes - 1) / SlotMinutes
	return slots, duration%SlotMinutes != 0
}

// Header formats "Schedule for Jan 2"; an unparseable date is shown as given.
func Header(date string) string {
	d, err := time.Parse(constvars.DateLayout, date)
	if err != nil {
		return fmt.Sprintf(constvars.ScheduleHeaderFmt, date)
	}
	return fmt.Sprintf(constvars.ScheduleHeaderFmt, d.Format(constvars.ScheduleDayLayout))
}
