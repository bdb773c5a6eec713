package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidPhone reports whether the value contains at least 10 digits,
// ignoring spaces, dashes and a leading plus
func ValidPhone(phone string) bool {
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 10
}

// NormalizePhone strips everything except digits, keeping the value in
// the form wa.me links expect
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WhatsAppLink builds a wa.me deep link with a pre-filled message
func WhatsAppLink(phone, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", NormalizePhone(phone), url.QueryEscape(message))
}

// BookingHandoffMessage is the pre-filled text a customer sends the
// operator after submitting a booking
func BookingHandoffMessage(carName, shortRef string, total float64, currency, contactPhone string) string {
	return fmt.Sprintf(
		"Hello! I just booked the %s (ref %s). Total: %s%.2f. You can reach me at %s.",
		carName, shortRef, currency, total, contactPhone,
	)
}
