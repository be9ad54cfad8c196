package models

import "time"

type Session struct {
	SessionID    string    `json:"session_id"`
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	SelectedDate string    `json:"selected_date,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (s *Session) User() User {
	return User{
		ID:          s.UserID,
		Email:       s.Email,
		DisplayName: s.DisplayName,
	}
}
