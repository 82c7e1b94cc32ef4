package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Run("absolute", func(t *testing.T) {
		got, err := ParseDate("2025-09-01")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if DayKey(got) != "2025-09-01" {
			t.Errorf("unexpected date %v", got)
		}
	})

	t.Run("empty means today", func(t *testing.T) {
		got, err := ParseDate("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if DayKey(got) != DayKey(time.Now()) {
			t.Errorf("expected today, got %v", got)
		}
		if got.Hour() != 0 || got.Minute() != 0 {
			t.Errorf("expected midnight, got %v", got)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, s := range []string{"01/09/2025", "2025-13-01", "yesterday"} {
			if _, err := ParseDate(s); !errors.Is(err, ErrInvalidDateFormat) {
				t.Errorf("%q: expected ErrInvalidDateFormat, got %v", s, err)
			}
		}
	})
}

func TestParseRelativeDate(t *testing.T) {
	base := time.Date(2025, 9, 1, 14, 30, 0, 0, time.UTC)

	cases := []struct {
		input string
		want  string
	}{
		{"", "2025-09-01"},
		{"today", "2025-09-01"},
		{"Today", "2025-09-01"},
		{"tomorrow", "2025-09-02"},
		{" tomorrow ", "2025-09-02"},
		{"2025-12-25", "2025-12-25"},
	}
	for _, tc := range cases {
		got, err := ParseRelativeDate(tc.input, base)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tc.input, err)
			continue
		}
		if DayKey(got) != tc.want {
			t.Errorf("%q: expected %s, got %s", tc.input, tc.want, DayKey(got))
		}
	}

	if _, err := ParseRelativeDate("next week", base); !errors.Is(err, ErrInvalidDateFormat) {
		t.Errorf("expected ErrInvalidDateFormat, got %v", err)
	}
}

func TestTruncateToDay(t *testing.T) {
	in := time.Date(2025, 9, 1, 23, 45, 12, 999, time.UTC)
	got := TruncateToDay(in)
	want := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestValidateTime(t *testing.T) {
	for _, s := range []string{"00:00", "09:30", "23:59"} {
		if err := ValidateTime(s); err != nil {
			t.Errorf("%q: unexpected error: %v", s, err)
		}
	}
	for _, s := range []string{"9:30", "24:00", "12:60", "noon", "12h30", ""} {
		if err := ValidateTime(s); !errors.Is(err, ErrInvalidTimeFormat) {
			t.Errorf("%q: expected ErrInvalidTimeFormat, got %v", s, err)
		}
	}
}
