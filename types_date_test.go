package fintrack

import (
	"errors"
	"testing"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    Date
		wantErr bool
	}{
		{"canonical", "2025-06-01", NewDate(2025, 6, 1), false},
		{"single-digit month and day", "2025-6-1", NewDate(2025, 6, 1), false},
		{"surrounding whitespace", " 2025-06-01 ", NewDate(2025, 6, 1), false},
		{"datetime form rejected for user input", "2025-06-01 00:00:00", Date{}, true},
		{"garbage", "june first", Date{}, true},
		{"empty", "", Date{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDate(tc.in)
			if tc.wantErr {
				var verr *ValidationError
				if !errors.As(err, &verr) || verr.Field != "date" {
					t.Fatalf("ParseDate(%q) error = %v, want *ValidationError on date", tc.in, err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Errorf("ParseDate(%q) = %v, %v, want %v", tc.in, got, err, tc.want)
			}
		})
	}
}

func TestParseStoredDate(t *testing.T) {
	want := NewDate(2025, 6, 1)
	for _, in := range []string{"2025-06-01 00:00:00", "2025-06-01", "2025-06-01 13:45:09"} {
		got, err := parseStoredDate(in)
		if err != nil || got != want {
			t.Errorf("parseStoredDate(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := parseStoredDate("01/06/2025"); err == nil {
		t.Error("parseStoredDate(01/06/2025) succeeded, want error")
	}
}

func TestDate_Stored(t *testing.T) {
	got := NewDate(2025, 6, 1).Stored()
	if got != "2025-06-01 00:00:00" {
		t.Errorf("Stored() = %q, want zero-filled time component", got)
	}
}

func TestDate_InRange(t *testing.T) {
	d := NewDate(2025, 6, 15)
	testCases := []struct {
		name     string
		from, to Date
		want     bool
	}{
		{"both bounds open", Date{}, Date{}, true},
		{"inside", NewDate(2025, 6, 1), NewDate(2025, 6, 30), true},
		{"on the from bound", NewDate(2025, 6, 15), Date{}, true},
		{"on the to bound", Date{}, NewDate(2025, 6, 15), true},
		{"before from", NewDate(2025, 6, 16), Date{}, false},
		{"after to", Date{}, NewDate(2025, 6, 14), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := d.inRange(tc.from, tc.to); got != tc.want {
				t.Errorf("inRange(%v, %v) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestDate_MonthKey(t *testing.T) {
	if got := NewDate(2025, 6, 15).MonthKey(); got != "2025-06" {
		t.Errorf("MonthKey() = %q, want 2025-06", got)
	}
}
