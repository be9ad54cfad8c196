package models

// Booking is immutable once stored; there is no update path.
type Booking struct {
	ID        string `json:"id" bson:"_id,omitempty" db:"id"`
	Title     string `json:"title" bson:"title" db:"title"`
	Organizer string `json:"organizer" bson:"organizer" db:"organizer"`
	Date      string `json:"date" bson:"date" db:"date"`
	StartTime string `json:"startTime" bson:"startTime" db:"start_time"`
	EndTime   string `json:"endTime" bson:"endTime" db:"end_time"`
	Type      string `json:"type" bson:"type" db:"type"`
	BookedBy  string `json:"bookedBy" bson:"bookedBy" db:"booked_by"`
	UserID    string `json:"userId" bson:"userId" db:"user_id"`
	TimeModel `bson:",inline"`
}

func (b Booking) IsOwnedBy(userID string) bool {
	return userID != "" && b.UserID == userID
}

// BookingEvent is the payload published for every store write.
type BookingEvent struct {
	Event      string  `json:"event"`
	Booking    Booking `json:"booking"`
	ActorID    string  `json:"actorId"`
	OccurredAt string  `json:"occurredAt"`
}
