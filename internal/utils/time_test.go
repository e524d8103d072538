package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty is local", timezone: "", wantErr: false},
		{name: "Local", timezone: "Local", wantErr: false},
		{name: "UTC", timezone: "UTC", wantErr: false},
		{name: "IANA name", timezone: "Europe/Berlin", wantErr: false},
		{name: "invalid", timezone: "Mars/Olympus", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation(%q) error = %v, wantErr %v", tt.timezone, err, tt.wantErr)
			}
		})
	}
}

func TestParseDateInLocation(t *testing.T) {
	est, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	got, err := ParseDateInLocation("2024-02-29", est)
	if err != nil {
		t.Fatalf("ParseDateInLocation() error: %v", err)
	}
	if got.Year() != 2024 || got.Month() != time.February || got.Day() != 29 {
		t.Errorf("ParseDateInLocation() = %v, want 2024-02-29", got)
	}
	if got.Hour() != 0 || got.Location() != est {
		t.Errorf("ParseDateInLocation() = %v, want midnight in %v", got, est)
	}

	if _, err := ParseDateInLocation("02/29/2024", est); err == nil {
		t.Error("ParseDateInLocation() should reject non ISO dates")
	}
}

func TestParseOptionalDate(t *testing.T) {
	got, err := ParseOptionalDate("", time.UTC)
	if err != nil || got != nil {
		t.Errorf("ParseOptionalDate(\"\") = %v, %v; want nil, nil", got, err)
	}

	got, err = ParseOptionalDate("2024-01-05", time.UTC)
	if err != nil {
		t.Fatalf("ParseOptionalDate() error: %v", err)
	}
	if want := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("ParseOptionalDate() = %v, want %v", got, want)
	}

	if _, err := ParseOptionalDate("yesterday", time.UTC); err == nil {
		t.Error("ParseOptionalDate() should fail for invalid input")
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("Local") || !ValidateTimezone("") {
		t.Error("Local and empty timezones should be valid")
	}
	if ValidateTimezone("Not/AZone") {
		t.Error("invalid timezone should not validate")
	}
}
