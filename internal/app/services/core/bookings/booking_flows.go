package bookings

import (
	"roombook-service/internal/pkg/constvars"
	"roombook-service/internal/pkg/dto/requests"
	"roombook-service/internal/pkg/dto/responses"
)

// sessionFlows is the per-session state of the create and delete forms.
// epoch moves forward whenever the session switches date or signs out, and a
// write that started under an older epoch must not touch the flows.
type sessionFlows struct {
	epoch      uint64
	submission responses.SubmissionFlow
	deletion   responses.DeletionFlow
}

func newSessionFlows(date string) *sessionFlows {
	return &sessionFlows{
		submission: responses.SubmissionFlow{
			State: constvars.FlowStateIdle,
			Draft: defaultDraft(date),
		},
		deletion: responses.DeletionFlow{
			State: constvars.FlowStateIdle,
		},
	}
}

func defaultDraft(date string) responses.BookingDraft {
	return responses.BookingDraft{
		Date:      date,
		StartTime: constvars.DefaultStartTime,
		EndTime:   constvars.DefaultEndTime,
		Type:      constvars.DefaultBookingType,
	}
}

func draftFromRequest(request *requests.CreateBooking) responses.BookingDraft {
	return responses.BookingDraft{
		Title:     request.Title,
		Organizer: request.Organizer,
		Date:      request.Date,
		StartTime: request.StartTime,
		EndTime:   request.EndTime,
		Type:      request.Type,
	}
}

// succeed keeps the date, times and type so the next booking starts from them.
func (f *sessionFlows) succeed(bookingID string) {
	f.submission.State = constvars.FlowStateSucceeded
	f.submission.BookingID = bookingID
	f.submission.Error = ""
	f.submission.Draft.Title = ""
	f.submission.Draft.Organizer = ""
}

func (f *sessionFlows) fail(message string) {
	f.submission.State = constvars.FlowStateFailed
	f.submission.BookingID = ""
	f.submission.Error = message
}

func (f *sessionFlows) reset() {
	f.epoch++
	if f.submission.State == constvars.FlowStateSubmitting {
		f.submission.State = constvars.FlowStateIdle
	}
	f.submission.Error = ""
	f.deletion = responses.DeletionFlow{State: constvars.FlowStateIdle}
}

func (f *sessionFlows) view() responses.BookingFlows {
	return responses.BookingFlows{
		Submission: f.submission,
		Deletion:   f.deletion,
	}
}
