package utils

import (
	"strings"
	"testing"
)

func TestValidPhone(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"+256 700 123 456", true},
		{"0700123456", true},
		{"070-012-3456", true},
		{"12345", false},
		{"", false},
		{"call me maybe", false},
	}

	for _, tc := range cases {
		if got := ValidPhone(tc.phone); got != tc.want {
			t.Errorf("ValidPhone(%q) = %v, want %v", tc.phone, got, tc.want)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	if got := NormalizePhone("+256 700-123 456"); got != "256700123456" {
		t.Errorf("NormalizePhone = %q, want 256700123456", got)
	}
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("+256 700 123 456", "Hello there")
	if !strings.HasPrefix(link, "https://wa.me/256700123456?text=") {
		t.Errorf("unexpected link prefix: %q", link)
	}
	if !strings.Contains(link, "Hello+there") {
		t.Errorf("message not URL-encoded in link: %q", link)
	}
}

func TestBookingHandoffMessage(t *testing.T) {
	msg := BookingHandoffMessage("Toyota Land Cruiser", "a1b2c3d4", 150, "$", "0700123456")
	for _, want := range []string{"Toyota Land Cruiser", "a1b2c3d4", "$150.00", "0700123456"} {
		if !strings.Contains(msg, want) {
			t.Errorf("handoff message missing %q: %q", want, msg)
		}
	}
}
