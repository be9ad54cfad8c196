package models

type LiveStatus struct {
	Occupied       bool     `json:"occupied"`
	CurrentBooking *Booking `json:"currentBooking,omitempty"`
	EvaluatedAt    string   `json:"evaluatedAt"`
}
