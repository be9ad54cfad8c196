package utils

import (
	"roombook-service/internal/pkg/dto/requests"
	"strings"
)

func SanitizeRegisterUserRequest(input *requests.RegisterUser) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.DisplayName = strings.TrimSpace(input.DisplayName)
}

func SanitizeSignInRequest(input *requests.SignIn) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
}

func SanitizeCreateBookingRequest(input *requests.CreateBooking) {
	input.Title = strings.TrimSpace(input.Title)
	input.Organizer = strings.TrimSpace(input.Organizer)
	input.Date = strings.TrimSpace(input.Date)
	input.StartTime = strings.TrimSpace(input.StartTime)
	input.EndTime = strings.TrimSpace(input.EndTime)
	input.Type = strings.ToLower(strings.TrimSpace(input.Type))
}
