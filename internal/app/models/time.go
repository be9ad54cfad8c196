package models

import "time"

type TimeModel struct {
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" db:"created_at"`
}

func (m *TimeModel) SetCreatedAt(now time.Time) {
	m.CreatedAt = now
}
