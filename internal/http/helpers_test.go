package http

import "testing"

func TestSanitizeInput(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"trims whitespace", "  plan  ", "plan"},
		{"keeps newlines and tabs", "line one\n\tline two", "line one\n\tline two"},
		{"normalizes crlf", "entered early\r\nsized down\r\nheld target", "entered early\nsized down\nheld target"},
		{"strips lone carriage return", "odd\rtext", "oddtext"},
		{"strips control characters", "a\x00b\x1bc", "abc"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sanitizeInput(tc.in); got != tc.want {
				t.Fatalf("sanitizeInput(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
