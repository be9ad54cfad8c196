package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"

	// Auth
	RegisterSuccessMessage    = "account created successfully"
	SignInSuccessMessage      = "Signed in successfully"
	SignOutSuccessMessage     = "Signed out"
	CurrentUserSuccessMessage = "Welcome back!"

	// Bookings
	BookingCreatedSuccessMessage    = "Space reserved successfully!"
	BookingListSuccessMessage       = "bookings fetched successfully"
	BookingTypesSuccessMessage      = "booking types fetched successfully"
	BookingFlowsSuccessMessage      = "booking flows fetched successfully"
	BookingDeletionRequestedMessage = "Are you sure you want to cancel this booking?"
	BookingDeletionDeclinedMessage  = "booking kept"
	BookingCancelledSuccessMessage  = "Booking cancelled"
	BookingSubmissionPendingMessage = "Saving booking..."

	// Schedule
	ScheduleSlotsSuccessMessage      = "slots fetched successfully"
	ScheduleWeekSuccessMessage       = "week fetched successfully"
	ScheduleGetSuccessMessage        = "schedule fetched successfully"
	ScheduleSelectDateSuccessMessage = "selected date updated"
	ScheduleLiveStatusSuccessMessage = "live status fetched successfully"
	ScheduleExportSuccessMessage     = "schedule exported successfully"
)

var BookingGuidelines = []string{
	"Only owners can delete",
	"Minimum booking time is 30 minutes",
}
