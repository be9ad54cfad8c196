package models

type User struct {
	ID           string `json:"id" bson:"_id,omitempty"`
	Email        string `json:"email" bson:"email"`
	DisplayName  string `json:"displayName" bson:"displayName"`
	PasswordHash string `json:"-" bson:"passwordHash"`
	TimeModel    `bson:",inline"`
}

// BookedByName is the label stored on bookings the user creates.
func (u User) BookedByName(fallback string) string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	if u.Email != "" {
		return u.Email
	}
	return fallback
}
