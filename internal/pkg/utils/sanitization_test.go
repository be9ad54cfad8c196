package utils

import (
	"roombook-service/internal/pkg/dto/requests"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeCreateBookingRequest(t *testing.T) {
	t.Run("Trims Every Field", func(t *testing.T) {
		request := &requests.CreateBooking{
			Title:     "  Quarterly review  ",
			Organizer: "\tFinance ",
			Date:      " 2024-01-01 ",
			StartTime: " 10:00",
			EndTime:   "11:00 ",
			Type:      "  Client ",
		}

		SanitizeCreateBookingRequest(request)

		assert.Equal(t, "Quarterly review", request.Title, "title should be trimmed")
		assert.Equal(t, "Finance", request.Organizer, "organizer should be trimmed")
		assert.Equal(t, "2024-01-01", request.Date)
		assert.Equal(t, "10:00", request.StartTime)
		assert.Equal(t, "11:00", request.EndTime)
		assert.Equal(t, "client", request.Type, "type should be lowercase and trimmed")
	})

	t.Run("Whitespace Only Title Becomes Empty", func(t *testing.T) {
		request := &requests.CreateBooking{Title: "   "}

		SanitizeCreateBookingRequest(request)

		assert.Empty(t, request.Title, "blank title should fail required validation afterwards")
	})
}

func TestSanitizeSignInRequest(t *testing.T) {
	request := &requests.SignIn{Email: "  ANA@Example.COM ", Password: " keep spaces "}

	SanitizeSignInRequest(request)

	assert.Equal(t, "ana@example.com", request.Email, "email should be lowercase and trimmed")
	assert.Equal(t, " keep spaces ", request.Password, "password should not be touched")
}
