package util

import (
	"testing"
	"time"
)

func TestParseAmount_Valid(t *testing.T) {
	testCases := []string{"0.01", "1", "100.5", "9999999.99"}

	for _, s := range testCases {
		if _, err := ParseAmount(s); err != nil {
			t.Errorf("ParseAmount(%q) error = %v, want nil", s, err)
		}
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	testCases := []string{"", "abc", "12,50", "0", "-0.01", "-100"}

	for _, s := range testCases {
		if _, err := ParseAmount(s); err == nil {
			t.Errorf("ParseAmount(%q) error = nil, want error", s)
		}
	}
}

func TestParseAmount_TooLarge(t *testing.T) {
	if _, err := ParseAmount("100000000"); err == nil {
		t.Error("ParseAmount(100000000) error = nil, want error")
	}
}

func TestParseDate_Valid(t *testing.T) {
	testCases := []string{
		"2024-01-01",
		"2024-12-31",
		"2025-06-15",
	}

	for _, date := range testCases {
		got, err := ParseDate(date)
		if err != nil {
			t.Errorf("ParseDate(%q) error = %v, want nil", date, err)
			continue
		}
		if got.Format("2006-01-02") != date {
			t.Errorf("ParseDate(%q) = %s", date, got)
		}
	}
}

func TestParseDate_EmptyDefaultsToToday(t *testing.T) {
	got, err := ParseDate("")
	if err != nil {
		t.Fatalf("ParseDate(\"\") error = %v", err)
	}
	want := time.Now().Format("2006-01-02")
	if got.Format("2006-01-02") != want {
		t.Errorf("ParseDate(\"\") = %s, want %s", got.Format("2006-01-02"), want)
	}
}

func TestParseDate_InvalidFormat(t *testing.T) {
	testCases := []string{
		"2024/01/01",
		"01-01-2024",
		"2024-1-1",
		"not-a-date",
		"2024-13-01",
		"2024-01-32",
	}

	for _, date := range testCases {
		if _, err := ParseDate(date); err == nil {
			t.Errorf("ParseDate(%q) error = nil, want error", date)
		}
	}
}

func TestValidateCategory(t *testing.T) {
	for _, category := range []string{"Cibo", "Trasporti", "Stipendio"} {
		if err := ValidateCategory(category); err != nil {
			t.Errorf("ValidateCategory(%q) error = %v, want nil", category, err)
		}
	}

	if err := ValidateCategory(""); err == nil {
		t.Error("ValidateCategory(\"\") error = nil, want error")
	}

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	if err := ValidateCategory(string(long)); err == nil {
		t.Error("ValidateCategory() with long string error = nil, want error")
	}
}
