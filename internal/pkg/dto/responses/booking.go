package responses

import "roombook-service/internal/app/models"

type CreateBooking struct {
	ID      string         `json:"id"`
	Booking models.Booking `json:"booking"`
	Flow    SubmissionFlow `json:"flow"`
}

type BookingType struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Style string `json:"style"`
}

type BookingTypes struct {
	Types      []BookingType `json:"types"`
	Guidelines []string      `json:"guidelines"`
}

// BookingDraft is the form state kept between submissions.
type BookingDraft struct {
	Title     string `json:"title"`
	Organizer string `json:"organizer"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Type      string `json:"type"`
}

type SubmissionFlow struct {
	State     string       `json:"state"`
	BookingID string       `json:"bookingId,omitempty"`
	Error     string       `json:"error,omitempty"`
	Draft     BookingDraft `json:"draft"`
}

type DeletionFlow struct {
	State     string `json:"state"`
	BookingID string `json:"bookingId,omitempty"`
}

type BookingFlows struct {
	Submission SubmissionFlow `json:"submission"`
	Deletion   DeletionFlow   `json:"deletion"`
}

type ConfirmDeletion struct {
	Deleted bool         `json:"deleted"`
	Flow    DeletionFlow `json:"flow"`
}
