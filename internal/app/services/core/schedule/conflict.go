package schedule

import "roombook-service/internal/app/models"

// HasConflict reports whether [start, end) on date overlaps any booking in existing.
// Times are zero-padded HH:mm, so string order is chronological order.
// Touching intervals do not conflict.
func HasConflict(existing []models.Booking, date, start, end string) (bool, error) {
	if end <= start {
		return false, ErrInvalidInterval
	}

	for _, b := range existing {
		if b.Date != date {
			continue
		}
		if start < b.EndTime && end > b.StartTime {
			return true, nil
		}
	}
	return false, nil
}
