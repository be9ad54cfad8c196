package queries

const (
	CreateBookingsTable = `
		CREATE TABLE IF NOT EXISTS bookings (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			organizer   TEXT NOT NULL,
			date        TEXT NOT NULL,
			start_time  TEXT NOT NULL,
			end_time    TEXT NOT NULL,
			type        TEXT NOT NULL,
			booked_by   TEXT NOT NULL,
			user_id     TEXT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`

	GetAllBookings = `
		SELECT id, title, organizer, date, start_time, end_time, type, booked_by, user_id, created_at
		FROM bookings
		ORDER BY date ASC, start_time ASC
	`

	InsertBooking = `
		INSERT INTO bookings (id, title, organizer, date, start_time, end_time, type, booked_by, user_id, created_at)
		VALUES (:id, :title, :organizer, :date, :start_time, :end_time, :type, :booked_by, :user_id, :created_at)
	`

	DeleteBookingByID = "DELETE FROM bookings WHERE id = $1"
)
