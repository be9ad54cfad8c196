package utils

import (
	"regexp"
	"roombook-service/internal/pkg/constvars"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("password", validatePassword)
	validate.RegisterValidation("slot_time", validateSlotTime)
	validate.RegisterValidation("booking_type", validateBookingType)
	validate.RegisterValidation("calendar_date", validateCalendarDate)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	hasMinLen := len(password) >= 8
	hasSpecialChar := regexp.MustCompile(constvars.RegexContainAtLeastOneSpecialChar).MatchString(password)
	hasUppercase := regexp.MustCompile(constvars.RegexContainAtLeastOneUppercase).MatchString(password)
	return hasMinLen && hasSpecialChar && hasUppercase
}

// validateSlotTime accepts only start labels of the daily half-hour grid.
func validateSlotTime(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if !regexp.MustCompile(constvars.RegexTimeHHMM).MatchString(value) {
		return false
	}
	t, err := time.Parse(constvars.TimeOfDayLayout, value)
	if err != nil {
		return false
	}
	offset := t.Hour()*60 + t.Minute() - constvars.BookingFirstSlotMinutes
	last := (constvars.BookingSlotCount - 1) * constvars.BookingSlotMinutes
	return offset >= 0 && offset <= last && offset%constvars.BookingSlotMinutes == 0
}

func validateBookingType(fl validator.FieldLevel) bool {
	return IsBookingType(fl.Field().String())
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if !regexp.MustCompile(constvars.RegexDateYYYYMMDD).MatchString(value) {
		return false
	}
	_, err := time.Parse(constvars.DateLayout, value)
	return err == nil
}

func IsBookingType(value string) bool {
	switch value {
	case constvars.BookingTypeInternal, constvars.BookingTypeClient, constvars.BookingTypeFocus, constvars.BookingTypeSocial:
		return true
	}
	return false
}
