package schedule

import (
	"roombook-service/internal/app/models"
	"roombook-service/internal/pkg/constvars"
	"time"
)

// CurrentBooking returns the booking on now's date whose [start, end) contains now's time of day.
func CurrentBooking(existing []models.Booking, now time.Time) (models.Booking, bool) {
	today := Today(now)
	nowTime := now.Format(constvars.TimeOfDayLayout)

	for _, b := range existing {
		if b.Date != today {
			continue
		}
		if b.StartTime <= nowTime && nowTime < b.EndTime {
			return b, true
		}
	}
	return models.Booking{}, false
}

func IsOccupied(existing []models.Booking, now time.Time) bool {
	_, occupied := CurrentBooking(existing, now)
	return occupied
}

// LiveStatus evaluates occupancy at now. Calling it again with the same inputs gives the same result.
func LiveStatus(existing []models.Booking, now time.Time) models.LiveStatus {
	status := models.LiveStatus{
		EvaluatedAt: now.Format(time.RFC3339),
	}
	if current, ok := CurrentBooking(existing, now); ok {
		status.Occupied = true
		status.CurrentBooking = &current
	}
	return status
}
