package core

import "testing"

func TestParseDay(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2024-03-01", true},
		{"2024-12-31", true},
		{"2024-02-29", true}, // leap day
		{"2023-02-29", false},
		{"2024-3-1", false}, // not canonical
		{"2024-13-01", false},
		{"01-03-2024", false},
		{"", false},
	}
	for i, tc := range cases {
		d, err := ParseDay(tc.in)
		if tc.ok && (err != nil || string(d) != tc.in) {
			t.Fatalf("case %d: expected ok, got %q err=%v", i, d, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d: expected error for %q", i, tc.in)
		}
	}
}

func TestDayOrderingIsLexical(t *testing.T) {
	if !(Day("2024-02-29") < Day("2024-03-01")) {
		t.Fatal("expected 2024-02-29 < 2024-03-01")
	}
	if !(Day("2023-12-31") < Day("2024-01-01")) {
		t.Fatal("expected year boundary ordering")
	}
}

func TestAddDays(t *testing.T) {
	cases := []struct {
		d    Day
		n    int
		want Day
	}{
		{"2024-03-01", -1, "2024-02-29"},
		{"2024-03-03", -2, "2024-03-01"},
		{"2023-12-31", 1, "2024-01-01"},
		{"2024-01-15", 0, "2024-01-15"},
	}
	for i, tc := range cases {
		if got := tc.d.AddDays(tc.n); got != tc.want {
			t.Fatalf("case %d: %s%+d = %s, want %s", i, tc.d, tc.n, got, tc.want)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year, month, want int
	}{
		{2024, 2, 29},
		{2023, 2, 28},
		{2024, 4, 30},
		{2024, 12, 31},
	}
	for i, tc := range cases {
		if got := DaysInMonth(tc.year, tc.month); got != tc.want {
			t.Fatalf("case %d: DaysInMonth(%d,%d) = %d, want %d", i, tc.year, tc.month, got, tc.want)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	if got := DaysBetween("2024-03-01", "2024-03-07"); got != 7 {
		t.Fatalf("expected 7 days inclusive, got %d", got)
	}
	if got := DaysBetween("2024-03-01", "2024-03-01"); got != 1 {
		t.Fatalf("expected 1 for same day, got %d", got)
	}
	if got := DaysBetween("2024-03-07", "2024-03-01"); got != 0 {
		t.Fatalf("expected 0 for inverted range, got %d", got)
	}
}

func TestMonthRange(t *testing.T) {
	first, last := MonthRange(2024, 2)
	if first != "2024-02-01" || last != "2024-02-29" {
		t.Fatalf("unexpected range %s..%s", first, last)
	}
}
