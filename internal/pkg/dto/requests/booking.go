package requests

type CreateBooking struct {
	Title     string `json:"title" validate:"required,max=120"`
	Organizer string `json:"organizer" validate:"required,max=120"`
	Date      string `json:"date" validate:"required,calendar_date"`
	StartTime string `json:"startTime" validate:"required,slot_time"`
	EndTime   string `json:"endTime" validate:"required,slot_time"`
	Type      string `json:"type" validate:"required,booking_type"`
}

type ConfirmDeletion struct {
	Confirm bool `json:"confirm"`
}

type SelectDate struct {
	Date string `json:"date" validate:"required,calendar_date"`
}

type DateQuery struct {
	Date string `validate:"omitempty,calendar_date"`
}
