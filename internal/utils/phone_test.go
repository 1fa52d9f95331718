package utils

import "testing"

func TestNormalizePhone(t *testing.T) {
	const cc = "+994"

	t.Run("formatting variants collapse to one key", func(t *testing.T) {
		variants := []string{
			"0501234567",
			"050 123 45 67",
			"050-123-45-67",
			"(050) 123 45 67",
			"00994501234567",
			"+994501234567",
			"+994 50 123 45 67",
			"501234567",
		}
		const want = "+994501234567"
		for _, raw := range variants {
			if got := NormalizePhone(raw, cc); got != want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", raw, got, want)
			}
		}
	})

	t.Run("double zero prefix becomes plus", func(t *testing.T) {
		if got := NormalizePhone("004915112345678", cc); got != "+4915112345678" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("foreign international numbers pass through", func(t *testing.T) {
		if got := NormalizePhone("+90 532 123 45 67", cc); got != "+905321234567" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("non-digit noise is stripped", func(t *testing.T) {
		if got := NormalizePhone("  050.123.45.67 abc ", cc); got != "+994501234567" {
			t.Errorf("got %q", got)
		}
	})
}

func TestValidatePhone(t *testing.T) {
	valid := []string{
		"+994501234567",
		"994501234567",
		"12345678",
		"+123456789012345",
	}
	for _, p := range valid {
		if !ValidatePhone(p) {
			t.Errorf("ValidatePhone(%q) = false, want true", p)
		}
	}

	invalid := []string{
		"",
		"+",
		"1234567",           // too short
		"+1234567890123456", // too long
		"05o1234567",        // letter
		"050 1234567",       // space survives only before normalization
	}
	for _, p := range invalid {
		if ValidatePhone(p) {
			t.Errorf("ValidatePhone(%q) = true, want false", p)
		}
	}
}
